// Package config provides the persisted launcher configuration and the
// data directory layout for edge-launcher.
//
// # Configuration File
//
// LauncherConfig is stored as TOML in <data dir>/config.toml:
//
//	initialized = false
//	is_auto_start_enabled = false
//	launch_minimized = false
//	last_node_payment = 0
//	wallet_address = "Unset"
//	network = "Unset"
//	address = "Unset"
//	private_key = "Unset"
//	public_key = "Unset"
//
// String fields that were never configured hold the Unset sentinel.
//
// # Data Directory
//
// The data directory defaults to edge-launcher under os.UserConfigDir and
// can be overridden with $EDGE_LAUNCHER_DATA_DIR or --data-dir. Paths.File
// joins names into it with filepath-securejoin, so a name can never point
// outside the directory.
//
// # Recovery
//
// Load creates the file when it is missing. A file that fails to parse or
// validate is removed and rewritten with defaults, and Load reports
// ErrCorrupted so the caller can tell the user.
package config
