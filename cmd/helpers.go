package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"

	"github.com/edge-node/edge-launcher/internal/app"
	"github.com/edge-node/edge-launcher/internal/audit"
	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/docker"
	"github.com/edge-node/edge-launcher/internal/edgecli"
	"github.com/edge-node/edge-launcher/internal/errors"
	"github.com/edge-node/edge-launcher/internal/health"
	"github.com/edge-node/edge-launcher/internal/indexapi"
	"github.com/edge-node/edge-launcher/internal/keypath"
	"github.com/edge-node/edge-launcher/internal/logging"
)

// paths returns the configured paths.
func paths() *config.Paths {
	return app.Default.Paths
}

// auditLog returns the node event log in the data directory.
func auditLog() *audit.Logger {
	return audit.NewLogger(paths().DataDir)
}

// recordEvent appends to the event log. Failures are only logged.
func recordEvent(eventType audit.EventType, node, details string) {
	if err := auditLog().LogEvent(eventType, node, details); err != nil {
		logging.Debug("failed to record event", "type", eventType, "error", err)
	}
}

// commandContext returns a context canceled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// loadConfig loads the launcher config. A corrupted file has already been
// reset by config.Load, so it is reported as a warning only.
func loadConfig() (*config.LauncherConfig, error) {
	cfg, err := app.Default.LoadConfig()
	if errors.Is(err, config.ErrCorrupted) {
		logWarning("%v", err)
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigError("failed to load config", err)
	}
	return cfg, nil
}

// saveConfig writes cfg back to the data directory.
func saveConfig(cfg *config.LauncherConfig) error {
	if err := app.Default.SaveConfig(cfg); err != nil {
		return errors.ConfigError("failed to save config", err)
	}
	return nil
}

// selectedNetwork returns the --network flag, else the configured network,
// else mainnet.
func selectedNetwork(cfg *config.LauncherConfig) (string, error) {
	n := strings.ToLower(network)
	if n == "" {
		n = cfg.NetworkOr(config.NetworkMainnet)
	}
	if n != config.NetworkMainnet && n != config.NetworkTestnet {
		return "", errors.ValidationError(fmt.Sprintf("invalid network %q (must be %s or %s)", n, config.NetworkMainnet, config.NetworkTestnet))
	}
	return n, nil
}

// indexClient returns an index API client for net using the app's HTTP
// client and cache directory.
func indexClient(net string) (*indexapi.Client, error) {
	a := app.Default
	opts := []indexapi.Option{
		indexapi.WithHTTPClient(a.HTTP),
		indexapi.WithCacheDir(a.Paths.CacheDir),
	}
	if a.IndexURL != "" {
		opts = append(opts, indexapi.WithBaseURL(a.IndexURL))
	}
	c, err := indexapi.New(net, opts...)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	return c, nil
}

// newInstaller returns the Edge CLI installer for net on this platform.
func newInstaller(net string) (*edgecli.Installer, error) {
	p, err := edgecli.CurrentPlatform()
	if err != nil {
		return nil, errors.RequirementsFailed(err.Error())
	}
	bin, err := paths().File(edgecli.BinaryName(p.OS))
	if err != nil {
		return nil, errors.ConfigError("invalid data directory", err)
	}
	return &edgecli.Installer{
		HTTP:       app.Default.HTTP,
		BaseURL:    app.Default.FilesURL,
		Network:    net,
		Platform:   p,
		BinaryPath: bin,
	}, nil
}

// dockerClient returns the docker (or podman) CLI wrapper.
func dockerClient() *docker.Docker {
	return docker.Detect(app.Default.Exec)
}

// runChecks runs the requirement checks for net.
func runChecks(ctx context.Context, net string) *health.CheckResult {
	opts := health.Options{Docker: dockerClient()}
	if inst, err := newInstaller(net); err == nil {
		opts.EdgeCLI = inst
	}
	return health.Check(ctx, opts)
}

// readyCLI gates Edge CLI invocation on the requirement checks.
func readyCLI(ctx context.Context, net string) (*edgecli.CLI, error) {
	inst, err := newInstaller(net)
	if err != nil {
		return nil, err
	}
	result := health.Check(ctx, health.Options{Docker: dockerClient(), EdgeCLI: inst})
	if err := health.RequireReady(result); err != nil {
		for _, e := range result.Entries() {
			if !e.OK {
				logWarning("%s", e)
			}
		}
		return nil, err
	}
	return edgecli.New(inst.BinaryPath, app.Default.Exec), nil
}

// lookupError maps resolver and index API failures to exit codes.
func lookupError(op, path string, err error) error {
	var kerr *keypath.Error
	if errors.As(err, &kerr) {
		return errors.LookupFailed(path, err)
	}
	return errors.IndexAPI(op, err)
}

// edgeError maps Edge CLI failures to exit codes.
func edgeError(message string, err error) error {
	var mismatch *edgecli.ChecksumMismatchError
	if errors.As(err, &mismatch) {
		return errors.ChecksumMismatch(err)
	}
	var cerr *edgecli.CommandError
	if errors.As(err, &cerr) && !cerr.Recognized() {
		logWarning("The Edge CLI exited with unexpected code %d; run 'edge-launcher install' to refresh it", cerr.Code)
	}
	return errors.EdgeCLIError(message, err)
}

// writeValue renders v as json or yaml. Other formats return false.
func writeValue(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		_, err = w.Write(data)
		return true, err
	case "", "text":
		return false, nil
	default:
		return true, errors.ValidationError(fmt.Sprintf("unknown output format %q (text, json or yaml)", format))
	}
}
