package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/health"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that this machine can run an Edge node",
	Long: `Check the requirements for running an Edge node:
  - the platform has an Edge CLI build
  - Docker is installed and running
  - the Edge CLI is installed and matches the published checksum

Exits with a non-zero code unless every check passes.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	net, err := selectedNetwork(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	result := runChecks(ctx, net)

	out := cmd.OutOrStdout()
	for _, e := range result.Entries() {
		fmt.Fprintf(out, "  %s\n", e)
	}
	fmt.Fprintf(out, "Status: %s\n", result.Summary())

	return health.RequireReady(result)
}
