package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/docker"
	"github.com/edge-node/edge-launcher/internal/earnings"
	"github.com/edge-node/edge-launcher/internal/logging"
	"github.com/edge-node/edge-launcher/internal/tui"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node, its stake and wallet, and the requirement checks",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format (text, json or yaml)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	snap, err := loadSnapshot(ctx, cfg, net)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if handled, err := writeValue(out, statusOutput, snap); handled {
		return err
	}
	_, err = out.Write([]byte(tui.Plain(snap)))
	return err
}

// loadSnapshot gathers the node status. Index API failures are recorded in
// the snapshot rather than returned so the checks are still shown.
func loadSnapshot(ctx context.Context, cfg *config.LauncherConfig, net string) (*tui.Snapshot, error) {
	snap := &tui.Snapshot{
		Network: net,
		Health:  runChecks(ctx, net),
	}
	if cfg.HasNode() {
		snap.Node = cfg.Address
	}

	client, err := indexClient(net)
	if err != nil {
		return nil, err
	}

	wallet := ""
	if cfg.HasWallet() {
		wallet = cfg.WalletAddress
	}

	if snap.Node != "" {
		a, err := client.DeriveWalletFromNode(ctx, snap.Node)
		snap.Stake = a.Stake
		if err != nil {
			logging.Debug("status lookup failed", "node", snap.Node, "error", err)
			snap.LookupError = err.Error()
		} else {
			wallet = a.Wallet
		}
	}
	snap.Wallet = wallet

	if snap.Node != "" {
		online, found, err := client.NodeOnline(ctx, snap.Node)
		if err != nil {
			logging.Debug("snapshots lookup failed", "node", snap.Node, "error", err)
		} else if found {
			snap.Online = &online
		}
	}

	if snap.Health.Docker.OK {
		exists, err := dockerClient().VolumeExists(ctx, docker.DeviceDataVolume)
		if err != nil {
			logging.Debug("device data volume check failed", "error", err)
		} else {
			snap.DeviceData = &exists
		}
	}

	if wallet != "" {
		doc, err := client.Transactions(ctx, wallet)
		if err != nil {
			logging.Debug("transactions lookup failed", "wallet", wallet, "error", err)
			if snap.LookupError == "" {
				snap.LookupError = err.Error()
			}
		} else if p, ok := earnings.Latest(doc); ok {
			snap.LastPayment = &p
		}
	}

	return snap, nil
}
