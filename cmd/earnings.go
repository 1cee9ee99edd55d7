package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/audit"
	"github.com/edge-node/edge-launcher/internal/earnings"
	"github.com/edge-node/edge-launcher/internal/errors"
)

var earningsCmd = &cobra.Command{
	Use:   "earnings",
	Short: "Report new node earnings",
	Long: `Fetch the transactions of the configured wallet and report the newest
node earnings payment. A payment newer than the last one seen is recorded
in the config so it is reported only once.`,
	Args: cobra.NoArgs,
	RunE: runEarnings,
}

func init() {
	rootCmd.AddCommand(earningsCmd)
}

func runEarnings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.HasWallet() {
		return errors.ValidationError("no wallet configured (run \"edge-launcher derive wallet --save\")")
	}
	net, err := selectedNetwork(cfg)
	if err != nil {
		return err
	}
	client, err := indexClient(net)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	res, err := earnings.Check(ctx, client, cfg)
	if err != nil {
		return errors.IndexAPI("transactions", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case res.New:
		if err := saveConfig(cfg); err != nil {
			return err
		}
		node := ""
		if cfg.HasNode() {
			node = cfg.Address
		}
		recordEvent(audit.EventEarnings, node, fmt.Sprintf("%g XE", res.Payment.XE()))
		fmt.Fprintln(out, res.Message())
	case res.Found:
		fmt.Fprintf(out, "No new earnings. Last payment: %g XE on %s\n",
			res.Payment.XE(), res.Payment.Time().Local().Format("2006-01-02 15:04"))
	default:
		fmt.Fprintln(out, "No node earnings yet.")
	}
	return nil
}
