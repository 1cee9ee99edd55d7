package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/edge-node/edge-launcher/internal/health"
)

// snapshotMsg carries the result of a load.
type snapshotMsg struct {
	snapshot *Snapshot
	err      error
	at       time.Time
}

// refreshMsg triggers a scheduled reload.
type refreshMsg struct{}

// DashboardModel is the bubbletea model for the node dashboard
type DashboardModel struct {
	spinner  spinner.Model
	load     LoadFunc
	interval time.Duration

	snapshot *Snapshot
	err      error
	loadedAt time.Time
	loading  bool
	quitting bool
	width    int
}

// NewDashboard creates a dashboard that loads through load. A positive
// interval reloads the snapshot periodically.
func NewDashboard(load LoadFunc, interval time.Duration) DashboardModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(valueStyle),
	)
	return DashboardModel{
		spinner:  s,
		load:     load,
		interval: interval,
		loading:  true,
	}
}

// fetch runs the loader off the UI goroutine.
func (m DashboardModel) fetch() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		snap, err := load(context.Background())
		return snapshotMsg{snapshot: snap, err: err, at: time.Now()}
	}
}

func (m DashboardModel) scheduleRefresh() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m.reload()
		}
		return m, nil

	case refreshMsg:
		return m.reload()

	case snapshotMsg:
		m.loading = false
		m.loadedAt = msg.at
		m.err = msg.err
		if msg.err == nil {
			m.snapshot = msg.snapshot
		}
		return m, m.scheduleRefresh()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) reload() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.fetch())
}

func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Edge Node Launcher"))
	b.WriteString("\n")

	if m.snapshot != nil {
		box := boxStyle
		if m.width > 4 {
			box = box.Width(m.width - 4)
		}
		b.WriteString(box.Render(renderSnapshot(m.snapshot)))
		b.WriteString("\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Checking node…")
	case m.err != nil:
		b.WriteString(failStyle.Render("✗ " + m.err.Error()))
	default:
		b.WriteString(dimStyle.Render("Updated " + health.FormatDuration(time.Since(m.loadedAt)) + " ago"))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("r: refresh • q: quit"))
	b.WriteString("\n")

	return b.String()
}

// Snapshot returns the last successfully loaded snapshot.
func (m DashboardModel) Snapshot() *Snapshot {
	return m.snapshot
}

// RunDashboard runs the dashboard until the user quits.
func RunDashboard(load LoadFunc, interval time.Duration) error {
	p := tea.NewProgram(NewDashboard(load, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
