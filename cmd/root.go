package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/app"
	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	dataDir    string
	network    string
)

var rootCmd = &cobra.Command{
	Use:   "edge-launcher",
	Short: "Edge node launcher",
	Long: `edge-launcher installs and runs an Edge node on this machine.

It takes care of:
  - Downloading and verifying the Edge CLI
  - Checking that Docker is installed and running
  - Provisioning the device identity into the device data volume
  - Looking up the node's stake and wallet on the XE index API
  - Reporting new node earnings`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if dataDir != "" {
			app.Default.Paths = config.NewPaths(dataDir)
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Launcher data directory (default: $"+config.EnvDataDir+" or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&network, "network", "", "Network to use (mainnet or testnet), overrides the config")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
