package cmd

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/errors"
)

var configShowSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the launcher config",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the launcher config",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change a config value",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE:      runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), paths().ConfigFile)
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowSecrets, "show-secrets", false, "Print the private key")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	shown := *cfg
	if !configShowSecrets && shown.PrivateKey != config.Unset {
		shown.PrivateKey = "********"
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&shown); err != nil {
		return errors.ConfigError("failed to encode config", err)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if _, err := loadConfig(); err != nil {
		return err
	}
	_, err := config.Update(paths(), func(c *config.LauncherConfig) error {
		return c.Set(key, value)
	})
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to set %s", key), err)
	}

	logSuccess("Set %s", key)
	return nil
}
