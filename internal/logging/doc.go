// Package logging provides logging utilities for edge-launcher.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("fetching document", "kind", kind, "id", id)
//	logging.Warn("docker not running", "exit", code)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Downloading Edge CLI from %s", url)
//	logging.UserSuccess("Found stake %s", stake)
//	logging.UserWarning("Docker installed but not running")
//	logging.UserError("Could not derive wallet: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend colored status indicators (fatih/color, disabled
// automatically when the output is not a terminal):
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
