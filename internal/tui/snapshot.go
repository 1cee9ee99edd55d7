package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/earnings"
	"github.com/edge-node/edge-launcher/internal/health"
)

// Snapshot is everything the dashboard shows.
type Snapshot struct {
	Health  *health.CheckResult `json:"health" yaml:"health"`
	Network string              `json:"network" yaml:"network"`
	Node    string              `json:"node" yaml:"node"`
	Stake   string              `json:"stake,omitempty" yaml:"stake,omitempty"`
	Wallet  string              `json:"wallet,omitempty" yaml:"wallet,omitempty"`

	// Online is the node's state in its newest index snapshot, when known.
	Online *bool `json:"online,omitempty" yaml:"online,omitempty"`

	// DeviceData reports whether the device data volume exists. Nil when
	// docker could not be asked.
	DeviceData *bool `json:"device_data,omitempty" yaml:"device_data,omitempty"`

	// LastPayment is the newest node earnings payout, when known.
	LastPayment *earnings.Payment `json:"last_payment,omitempty" yaml:"last_payment,omitempty"`

	// LookupError is set when the stake or wallet could not be derived.
	LookupError string `json:"lookup_error,omitempty" yaml:"lookup_error,omitempty"`
}

// LoadFunc gathers a Snapshot.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

func onlineText(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}

func deviceDataText(exists bool) string {
	if exists {
		return "provisioned"
	}
	return "not provisioned (run device add)"
}

func orUnset(s string) string {
	if s == "" {
		return config.Unset
	}
	return s
}

// Plain renders s without styling, one field per line.
func Plain(s *Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Network: %s\n", orUnset(s.Network))
	fmt.Fprintf(&b, "Node:    %s\n", orUnset(s.Node))
	fmt.Fprintf(&b, "Stake:   %s\n", orUnset(s.Stake))
	fmt.Fprintf(&b, "Wallet:  %s\n", orUnset(s.Wallet))
	if s.Online != nil {
		fmt.Fprintf(&b, "Index:   %s\n", onlineText(*s.Online))
	}
	if s.DeviceData != nil {
		fmt.Fprintf(&b, "Device:  %s\n", deviceDataText(*s.DeviceData))
	}
	if s.LastPayment != nil {
		fmt.Fprintf(&b, "Earned:  %g XE on %s\n", s.LastPayment.XE(), s.LastPayment.Time().Local().Format("2006-01-02 15:04"))
	}
	if s.LookupError != "" {
		fmt.Fprintf(&b, "Lookup:  %s\n", s.LookupError)
	}
	if s.Health != nil {
		fmt.Fprintf(&b, "Status:  %s\n", s.Health.Summary())
		for _, e := range s.Health.Entries() {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}

	return b.String()
}

func renderSnapshot(s *Snapshot) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Network", orUnset(s.Network))
	row("Node", orUnset(s.Node))
	row("Stake", orUnset(s.Stake))
	row("Wallet", orUnset(s.Wallet))
	if s.Online != nil {
		row("Index", onlineText(*s.Online))
	}
	if s.DeviceData != nil {
		row("Device", deviceDataText(*s.DeviceData))
	}
	if s.LastPayment != nil {
		row("Earned", fmt.Sprintf("%g XE on %s", s.LastPayment.XE(), s.LastPayment.Time().Local().Format("2006-01-02 15:04")))
	}
	if s.LookupError != "" {
		b.WriteString(warnStyle.Render("⚠ " + s.LookupError))
		b.WriteString("\n")
	}

	if s.Health != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Status"))
		b.WriteString(statusStyle(s.Health.Summary()).Render(string(s.Health.Summary())))
		b.WriteString("\n")
		for _, e := range s.Health.Entries() {
			style := okStyle
			if !e.OK {
				style = failStyle
			}
			b.WriteString("  ")
			b.WriteString(style.Render(e.String()))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func statusStyle(s health.Status) lipgloss.Style {
	switch s {
	case health.StatusReady:
		return okStyle
	case health.StatusDegraded:
		return warnStyle
	default:
		return failStyle
	}
}
