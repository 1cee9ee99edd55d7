// Package integration provides a test harness for integration tests
// that require a real Docker engine and network access.
//
// Integration tests are skipped unless the EDGE_LAUNCHER_INTEGRATION_TESTS
// environment variable is set. These tests require:
//   - Docker (or podman) installed and running
//   - the alpine image available or pullable
//   - access to files.edge.network for the Edge CLI download test
//
// # Test Harness
//
// Harness manages test environments:
//
//	func TestMyIntegration(t *testing.T) {
//	    h := integration.NewHarness(t) // Skips if env var not set
//
//	    volume := h.Volume()
//	    // Copy files, provision a device, ...
//
//	    // Volumes are removed via t.Cleanup
//	}
//
// # Running Integration Tests
//
//	EDGE_LAUNCHER_INTEGRATION_TESTS=1 go test -v ./internal/integration/...
package integration
