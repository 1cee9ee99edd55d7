// Package monitor provides background monitoring for the Edge node.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/edge-node/edge-launcher/internal/audit"
	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/earnings"
	"github.com/edge-node/edge-launcher/internal/errors"
	"github.com/edge-node/edge-launcher/internal/health"
	"github.com/edge-node/edge-launcher/internal/logging"
)

// CheckFunc runs the requirement checks.
type CheckFunc func(ctx context.Context) *health.CheckResult

// DeviceStarter starts the Edge device.
type DeviceStarter interface {
	DeviceStart(ctx context.Context) (string, error)
}

// TickResult holds the result of a single monitoring pass.
type TickResult struct {
	Health   *health.CheckResult
	Started  bool
	Earnings *earnings.Result
}

// Monitor periodically checks the node. It can start the device once the
// requirements are met and report new earnings.
type Monitor struct {
	interval time.Duration
	check    CheckFunc
	paths    *config.Paths

	starter  DeviceStarter
	txs      earnings.TransactionSource
	auditLog *audit.Logger
	notify   func(string)

	wasReady bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithAutoStart starts the device whenever the checks become ready.
func WithAutoStart(s DeviceStarter) Option {
	return func(m *Monitor) {
		m.starter = s
	}
}

// WithEarnings reports new earnings of the configured wallet.
func WithEarnings(src earnings.TransactionSource) Option {
	return func(m *Monitor) {
		m.txs = src
	}
}

// WithAuditLogger sets the audit logger for recording node events.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(m *Monitor) {
		m.auditLog = logger
	}
}

// WithNotifier sets the function that receives user-facing messages.
func WithNotifier(fn func(string)) Option {
	return func(m *Monitor) {
		m.notify = fn
	}
}

// New creates a new Monitor.
func New(interval time.Duration, check CheckFunc, paths *config.Paths, opts ...Option) *Monitor {
	m := &Monitor{
		interval: interval,
		check:    check,
		paths:    paths,
		notify:   func(string) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the monitoring loop. It blocks until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	logging.Debug("starting node monitor", "interval", m.interval, "autoStart", m.starter != nil, "earnings", m.txs != nil)

	// Run an immediate check, then loop on interval.
	m.tick(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("node monitor stopping")
			return ctx.Err()
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *Monitor) record(eventType audit.EventType, node, details string) {
	if m.auditLog == nil {
		return
	}
	if err := m.auditLog.LogEvent(eventType, node, details); err != nil {
		logging.Warn("failed to record event", "type", eventType, "error", err)
	}
}

// tick performs one monitoring pass.
func (m *Monitor) tick(ctx context.Context) TickResult {
	var result TickResult

	cfg, err := config.Load(m.paths)
	if err != nil && !errors.Is(err, config.ErrCorrupted) {
		logging.Warn("monitor failed to load config", "error", err)
		return result
	}
	node := ""
	if cfg.HasNode() {
		node = cfg.Address
	}

	result.Health = m.check(ctx)
	status := result.Health.Summary()
	ready := status == health.StatusReady
	m.record(audit.EventCheck, node, string(status))

	// Start on the transition to ready only, so a device stopped by hand
	// stays stopped while the checks keep passing.
	if m.starter != nil && ready && !m.wasReady && node != "" {
		m.notify(fmt.Sprintf("Starting Edge device %s", node))
		if _, err := m.starter.DeviceStart(ctx); err != nil {
			logging.Warn("auto-start failed", "node", node, "error", err)
			m.record(audit.EventError, node, "auto-start failed: "+err.Error())
		} else {
			result.Started = true
			m.record(audit.EventStart, node, "auto-start")
		}
	}
	m.wasReady = ready

	if m.txs != nil && cfg.HasWallet() {
		res, err := earnings.Check(ctx, m.txs, cfg)
		if err != nil {
			logging.Warn("earnings check failed", "wallet", cfg.WalletAddress, "error", err)
			return result
		}
		result.Earnings = &res
		if res.New {
			if err := config.Save(m.paths, cfg); err != nil {
				logging.Warn("failed to record earnings", "error", err)
			}
			m.notify(res.Message())
			m.record(audit.EventEarnings, node, fmt.Sprintf("%g XE", res.Payment.XE()))
		}
	}

	return result
}
