// Package edgecli downloads, verifies and runs the Edge CLI.
//
// Builds are published at
//
//	https://files.edge.network/cli/<network>/<os>/<arch>/<version>/<file>
//
// with a "checksum" file holding the SHA-256 of the binary. Installer
// downloads into a temporary file next to the destination and only renames
// it into place once the hash matches.
//
// CLI runs commands through system.CommandExecutor. Exit code 0 returns
// stdout; exit code 1 is the CLI's own failure and becomes a *CommandError
// carrying stderr. Any other code is reported as unrecognized.
package edgecli
