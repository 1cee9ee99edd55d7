package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/edge-node/edge-launcher/internal/logging"
)

const (
	AppName        = "edge-launcher"
	ConfigFileName = "config.toml"
	CacheDirName   = "cache"
	EnvDataDir     = "EDGE_LAUNCHER_DATA_DIR"

	// Unset marks a string field that has not been configured yet.
	Unset = "Unset"

	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// ErrCorrupted is returned by Load when the config file could not be parsed
// and was replaced with defaults.
var ErrCorrupted = errors.New("config file was corrupted and has been reset to defaults")

// LauncherConfig is the persisted launcher state.
type LauncherConfig struct {
	Initialized     bool   `toml:"initialized"`           // set once the node launched successfully
	AutoStart       bool   `toml:"is_auto_start_enabled"` // start the node with the launcher
	LaunchMinimized bool   `toml:"launch_minimized"`
	LastNodePayment int64  `toml:"last_node_payment"` // unix milliseconds of the newest seen earnings payment
	WalletAddress   string `toml:"wallet_address"`    // wallet the device was assigned from
	Network         string `toml:"network"`           // mainnet or testnet
	Address         string `toml:"address"`           // device XE address
	PrivateKey      string `toml:"private_key"`
	PublicKey       string `toml:"public_key"`
}

// Default returns the config written on first start.
func Default() *LauncherConfig {
	return &LauncherConfig{
		WalletAddress: Unset,
		Network:       Unset,
		Address:       Unset,
		PrivateKey:    Unset,
		PublicKey:     Unset,
	}
}

// Validate checks that the LauncherConfig is valid.
func (c *LauncherConfig) Validate() error {
	validNetworks := map[string]bool{NetworkMainnet: true, NetworkTestnet: true, Unset: true}
	if !validNetworks[c.Network] {
		return fmt.Errorf("invalid network: %s (must be %s or %s)", c.Network, NetworkMainnet, NetworkTestnet)
	}
	if c.LastNodePayment < 0 {
		return fmt.Errorf("last_node_payment must not be negative (got %d)", c.LastNodePayment)
	}
	return nil
}

// HasNode reports whether a device address has been configured.
func (c *LauncherConfig) HasNode() bool {
	return isSet(c.Address)
}

// HasWallet reports whether a wallet address has been configured.
func (c *LauncherConfig) HasWallet() bool {
	return isSet(c.WalletAddress)
}

// NetworkOr returns the configured network, or fallback when unset.
func (c *LauncherConfig) NetworkOr(fallback string) string {
	if isSet(c.Network) {
		return c.Network
	}
	return fallback
}

func isSet(s string) bool {
	return s != "" && s != Unset
}

// Keys lists the settable keys in file order.
func Keys() []string {
	return []string{
		"initialized",
		"is_auto_start_enabled",
		"launch_minimized",
		"last_node_payment",
		"wallet_address",
		"network",
		"address",
		"private_key",
		"public_key",
	}
}

// Set assigns value to the field stored under key, then validates.
func (c *LauncherConfig) Set(key, value string) error {
	next := *c
	var err error
	switch key {
	case "initialized":
		next.Initialized, err = strconv.ParseBool(value)
	case "is_auto_start_enabled":
		next.AutoStart, err = strconv.ParseBool(value)
	case "launch_minimized":
		next.LaunchMinimized, err = strconv.ParseBool(value)
	case "last_node_payment":
		next.LastNodePayment, err = strconv.ParseInt(value, 10, 64)
	case "wallet_address":
		next.WalletAddress = value
	case "network":
		next.Network = strings.ToLower(value)
	case "address":
		next.Address = value
	case "private_key":
		next.PrivateKey = value
	case "public_key":
		next.PublicKey = value
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Paths holds the configured paths
type Paths struct {
	DataDir    string
	ConfigFile string
	CacheDir   string
}

// NewPaths returns the path layout rooted at dataDir.
func NewPaths(dataDir string) *Paths {
	return &Paths{
		DataDir:    dataDir,
		ConfigFile: filepath.Join(dataDir, ConfigFileName),
		CacheDir:   filepath.Join(dataDir, CacheDirName),
	}
}

// DefaultPaths returns the default path configuration. The data directory
// is $EDGE_LAUNCHER_DATA_DIR, or edge-launcher under the user config dir.
func DefaultPaths() *Paths {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return NewPaths(dir)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		logging.Debug("no user config dir, using working directory", "error", err)
		base = "."
	}
	return NewPaths(filepath.Join(base, AppName))
}

// File returns name resolved inside the data directory. Names that would
// escape it (for example "../x") are clamped to the data directory.
func (p *Paths) File(name string) (string, error) {
	path, err := securejoin.SecureJoin(p.DataDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid file name %q: %w", name, err)
	}
	return path, nil
}

// Load reads the config file, creating it with defaults when missing.
// A file that cannot be parsed is replaced with defaults and ErrCorrupted
// is returned alongside the fresh config.
func Load(paths *Paths) (*LauncherConfig, error) {
	data, err := os.ReadFile(paths.ConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := Save(paths, cfg); err != nil {
			return nil, err
		}
		logging.Debug("created default config", "path", paths.ConfigFile)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logging.Warn("config corrupted, restoring defaults", "path", paths.ConfigFile, "error", err)
		if rmErr := os.Remove(paths.ConfigFile); rmErr != nil {
			return nil, fmt.Errorf("failed to remove corrupted config: %w", rmErr)
		}
		cfg = Default()
		if err := Save(paths, cfg); err != nil {
			return nil, err
		}
		return cfg, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logging.Debug("ignoring unknown config keys", "keys", fmt.Sprint(undecoded))
	}

	return cfg, nil
}

// Save writes cfg to the config file. The file holds the device private key,
// so it is written owner-only.
func Save(paths *Paths, cfg *LauncherConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(paths.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(paths.ConfigFile, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Update loads the config, applies fn, and saves the result.
func Update(paths *Paths, fn func(*LauncherConfig) error) (*LauncherConfig, error) {
	cfg, err := Load(paths)
	if err != nil {
		return nil, err
	}
	if err := fn(cfg); err != nil {
		return nil, err
	}
	if err := Save(paths, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
