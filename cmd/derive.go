package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/errors"
	"github.com/edge-node/edge-launcher/internal/indexapi"
)

var deriveSave bool

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Look up the stake and wallet a node is assigned to",
}

var deriveStakeCmd = &cobra.Command{
	Use:   "stake [node-address]",
	Short: "Print the stake a node address is assigned to",
	Long: `Print the stake a node address is assigned to, read from the node's
session on the XE index API. Defaults to the configured device address.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeriveStake,
}

var deriveWalletCmd = &cobra.Command{
	Use:   "wallet [node-address]",
	Short: "Print the wallet that owns a node's stake",
	Long: `Print the wallet that owns a node's stake: the node's session gives the
stake, and the stake gives the wallet. Defaults to the configured device
address. With --save the wallet is stored as wallet_address.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeriveWallet,
}

func init() {
	deriveWalletCmd.Flags().BoolVar(&deriveSave, "save", false, "Store the wallet in the config")
	deriveCmd.AddCommand(deriveStakeCmd)
	deriveCmd.AddCommand(deriveWalletCmd)
	rootCmd.AddCommand(deriveCmd)
}

// deriveTarget returns the node address to derive from and an index client.
func deriveTarget(args []string) (*config.LauncherConfig, string, *indexapi.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", nil, err
	}

	address := cfg.Address
	if len(args) > 0 {
		address = args[0]
	} else if !cfg.HasNode() {
		return nil, "", nil, errors.ValidationError("no node address given and none configured")
	}

	net, err := selectedNetwork(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	client, err := indexClient(net)
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, address, client, nil
}

func runDeriveStake(cmd *cobra.Command, args []string) error {
	_, address, client, err := deriveTarget(args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	stake, err := client.DeriveStake(ctx, address)
	if err != nil {
		return lookupError("session", indexapi.StakePath, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), stake)
	return nil
}

func runDeriveWallet(cmd *cobra.Command, args []string) error {
	cfg, address, client, err := deriveTarget(args)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	a, err := client.DeriveWalletFromNode(ctx, address)
	if err != nil {
		return lookupError("derive", indexapi.WalletPath, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.Wallet)

	if deriveSave {
		cfg.WalletAddress = a.Wallet
		if err := saveConfig(cfg); err != nil {
			return err
		}
		logSuccess("Saved wallet %s", a.Wallet)
	}
	return nil
}
