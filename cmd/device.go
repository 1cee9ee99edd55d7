package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/app"
	"github.com/edge-node/edge-launcher/internal/audit"
	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/device"
	"github.com/edge-node/edge-launcher/internal/errors"
	"github.com/edge-node/edge-launcher/internal/tui"
)

var (
	deviceAddress    string
	devicePrivateKey string
	devicePublicKey  string
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage the Edge device",
}

var deviceStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Edge device",
	Args:  cobra.NoArgs,
	RunE:  edgeCommand("device start", "Device started", audit.EventStart),
}

var deviceStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the Edge device",
	Args:  cobra.NoArgs,
	RunE:  edgeCommand("device stop", "Device stopped", audit.EventStop),
}

var deviceInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show Edge device information",
	Args:  cobra.NoArgs,
	RunE:  edgeCommand("device info", "", ""),
}

var deviceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a device identity to this machine",
	Long: `Add a device identity to this machine.

The identity files are copied into the Edge device data volume and removed
from disk afterwards. The identity is stored in the launcher config and the
device token to assign at the staking wallet is printed.

Without --address, --private-key and --public-key an interactive form is
shown when running in a terminal.`,
	Args: cobra.NoArgs,
	RunE: runDeviceAdd,
}

func init() {
	deviceAddCmd.Flags().StringVar(&deviceAddress, "address", "", "Device XE address")
	deviceAddCmd.Flags().StringVar(&devicePrivateKey, "private-key", "", "Device private key")
	deviceAddCmd.Flags().StringVar(&devicePublicKey, "public-key", "", "Device public key")

	deviceCmd.AddCommand(deviceStartCmd)
	deviceCmd.AddCommand(deviceStopCmd)
	deviceCmd.AddCommand(deviceInfoCmd)
	deviceCmd.AddCommand(deviceAddCmd)
	rootCmd.AddCommand(deviceCmd)
}

// edgeCommand returns a RunE that runs an Edge CLI command once the
// requirement checks pass. A non-empty event is recorded on success.
func edgeCommand(command, success string, event audit.EventType) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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

		cli, err := readyCLI(ctx, net)
		if err != nil {
			return err
		}
		node := ""
		if cfg.HasNode() {
			node = cfg.Address
		}
		out, err := cli.Run(ctx, command)
		if err != nil {
			if event != "" {
				recordEvent(audit.EventError, node, command+": "+err.Error())
			}
			return edgeError(fmt.Sprintf("edge %s failed", command), err)
		}
		if event != "" {
			recordEvent(event, node, "")
		}

		if out = strings.TrimSpace(out); out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		if success != "" {
			logSuccess("%s", success)
		}
		return nil
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runDeviceAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	net, err := selectedNetwork(cfg)
	if err != nil {
		return err
	}

	id := device.Identity{
		Network:    net,
		Address:    deviceAddress,
		PrivateKey: devicePrivateKey,
		PublicKey:  devicePublicKey,
	}

	if id.Address == "" || id.PrivateKey == "" || id.PublicKey == "" {
		if !isTerminal(os.Stdin) {
			return errors.ValidationError("--address, --private-key and --public-key are required when not running in a terminal")
		}
		defaults := id
		if defaults.Address == "" {
			defaults.Address = cfg.Address
		}
		if defaults.PublicKey == "" {
			defaults.PublicKey = cfg.PublicKey
		}
		id, err = tui.RunDeviceForm(defaults)
		if errors.Is(err, tui.ErrCanceled) {
			logInfo("Canceled")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := id.Validate(); err != nil {
		return errors.ValidationError(err.Error())
	}

	ctx, cancel := commandContext()
	defer cancel()

	p := &device.Provisioner{
		FS:      app.Default.FS,
		Docker:  dockerClient(),
		DataDir: paths().DataDir,
	}
	result, err := p.Provision(ctx, id)
	if err != nil {
		return errors.DockerError("device provisioning", err)
	}

	_, err = config.Update(paths(), func(c *config.LauncherConfig) error {
		c.Network = id.Network
		c.Address = id.Address
		c.PrivateKey = id.PrivateKey
		c.PublicKey = id.PublicKey
		c.Initialized = true
		return nil
	})
	if err != nil {
		return errors.ConfigError("failed to save device identity", err)
	}

	recordEvent(audit.EventAdd, id.Address, "network="+id.Network)
	logSuccess("Device %s added on %s", id.Address, id.Network)
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}
