// Package errors provides typed errors with exit codes for edge-launcher.
//
// # Error Types
//
// LauncherError is the base error type that wraps an error with an exit code:
//
//	type LauncherError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess          = 0  // Success
//	ExitGeneralError     = 1  // General/unknown errors
//	ExitLookupFailed     = 2  // Key path could not be resolved
//	ExitIndexAPI         = 3  // Index API request failed
//	ExitConfigError      = 4  // Configuration error
//	ExitDockerError      = 5  // Docker missing, stopped or failing
//	ExitEdgeCLIError     = 6  // Edge CLI download or invocation failed
//	ExitChecksumMismatch = 7  // Downloaded Edge CLI failed verification
//	ExitRequirements     = 8  // System checks did not pass
//
// # Error Constructors
//
//	errors.LookupFailed("node:stake", err)
//	errors.IndexAPI("session", err)
//	errors.DockerError("info", err)
//	errors.EdgeCLIError("device start", err)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
