// Package health checks that the host can run an Edge node.
//
// Three requirements are checked:
//
//	platform  - an Edge CLI build exists for this OS and architecture
//	docker    - "docker info" succeeds
//	edge CLI  - the binary exists and matches the published checksum
//
// # Health Status
//
//	StatusReady       - every check passed
//	StatusDegraded    - some checks passed
//	StatusUnavailable - nothing passed, or the platform is unsupported
//
// # Usage
//
//	result := health.Check(ctx, health.Options{
//	    Docker:  docker.New(exec),
//	    EdgeCLI: installer,
//	})
//	if err := health.RequireReady(result); err != nil {
//	    return err
//	}
//
// Edge CLI commands are only run once RequireReady passes.
package health
