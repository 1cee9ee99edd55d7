// Package tui provides terminal user interface components for edge-launcher.
//
// This package uses the Bubble Tea framework for the node dashboard and the
// device form.
//
// # Dashboard
//
// The dashboard shows the node address, its stake and wallet, the newest
// earnings payout, and the requirement checks. Data comes from a LoadFunc so
// tests can feed snapshots directly:
//
//	err := tui.RunDashboard(loader, 5*time.Minute)
//
// Keys: r (refresh), q/Esc/Ctrl+C (quit). When stdout is not a terminal,
// callers print Plain(snapshot) instead.
//
// # Device Form
//
// RunDeviceForm walks through network, address, private key and public key,
// then asks for confirmation. Esc goes back a step and leaves the form from
// the first one.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - spinner, list and textinput
//   - github.com/charmbracelet/lipgloss - Styling
package tui
