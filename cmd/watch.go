package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/edge-node/edge-launcher/internal/app"
	"github.com/edge-node/edge-launcher/internal/edgecli"
	"github.com/edge-node/edge-launcher/internal/errors"
	"github.com/edge-node/edge-launcher/internal/health"
	"github.com/edge-node/edge-launcher/internal/monitor"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the node in the foreground",
	Long: `Periodically runs the requirement checks and reports new node earnings.
With is_auto_start_enabled set in the config (or --auto-start), the device
is started whenever the checks become ready. Runs until interrupted.

Can be wrapped in a systemd service or a login item for persistent
monitoring.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchInterval  time.Duration
	watchAutoStart bool
	watchEarnings  bool
)

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Minute, "Check interval")
	watchCmd.Flags().BoolVar(&watchAutoStart, "auto-start", false, "Start the device when the checks pass (default from config)")
	watchCmd.Flags().BoolVar(&watchEarnings, "earnings", true, "Report new node earnings")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	net, err := selectedNetwork(cfg)
	if err != nil {
		return err
	}
	if watchInterval <= 0 {
		return errors.ValidationError("--interval must be positive")
	}

	notify := func(msg string) { logSuccess("%s", msg) }
	opts := []monitor.Option{
		monitor.WithAuditLogger(auditLog()),
		monitor.WithNotifier(notify),
	}

	autoStart := cfg.AutoStart
	if cmd.Flags().Changed("auto-start") {
		autoStart = watchAutoStart
	}
	if autoStart {
		inst, err := newInstaller(net)
		if err != nil {
			return err
		}
		opts = append(opts, monitor.WithAutoStart(edgecli.New(inst.BinaryPath, app.Default.Exec)))
	}

	if watchEarnings {
		client, err := indexClient(net)
		if err != nil {
			return err
		}
		opts = append(opts, monitor.WithEarnings(client))
	}

	check := func(ctx context.Context) *health.CheckResult {
		return runChecks(ctx, net)
	}
	mon := monitor.New(watchInterval, check, paths(), opts...)

	logInfo("Watching %s node (interval: %s, auto-start: %v)", net, watchInterval, autoStart)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = mon.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logInfo("Stopped watching")
		return nil
	}
	return err
}
