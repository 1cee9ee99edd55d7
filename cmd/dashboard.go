package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/tui"
)

var dashboardRefresh time.Duration

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive node dashboard",
	Long: `Show the node dashboard: address, stake, wallet, newest earnings and
requirement checks. Press r to refresh and q to quit.

When stdout is not a terminal a single plain snapshot is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardRefresh, "refresh", 5*time.Minute, "Refresh interval (0 disables)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	net, err := selectedNetwork(cfg)
	if err != nil {
		return err
	}

	load := func(ctx context.Context) (*tui.Snapshot, error) {
		// Reload so changes from other commands show up on refresh.
		current, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return loadSnapshot(ctx, current, net)
	}

	if !isTerminal(os.Stdout) {
		ctx, cancel := commandContext()
		defer cancel()

		snap, err := load(ctx)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write([]byte(tui.Plain(snap)))
		return err
	}

	return tui.RunDashboard(load, dashboardRefresh)
}
