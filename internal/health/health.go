package health

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/edge-node/edge-launcher/internal/docker"
	"github.com/edge-node/edge-launcher/internal/edgecli"
	"github.com/edge-node/edge-launcher/internal/errors"
)

// Status is the overall readiness of the host.
type Status string

const (
	StatusReady       Status = "ready"
	StatusDegraded    Status = "degraded"
	StatusUnavailable Status = "unavailable"
)

// DockerChecker reports the docker engine state.
type DockerChecker interface {
	Status(ctx context.Context) (docker.Status, error)
}

// EdgeVerifier checks the installed Edge CLI against its published checksum.
type EdgeVerifier interface {
	Verify(ctx context.Context) error
}

// Options holds options for requirement checking. Nil checkers are
// reported as failed.
type Options struct {
	Docker  DockerChecker
	EdgeCLI EdgeVerifier

	// GOOS and GOARCH default to the running binary's.
	GOOS   string
	GOARCH string
}

// Entry is the outcome of one requirement.
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail" yaml:"detail"`
}

func (e Entry) String() string {
	mark := "✓"
	if !e.OK {
		mark = "✗"
	}
	return fmt.Sprintf("%s %s: %s", mark, e.Name, e.Detail)
}

// CheckResult contains the results of requirement checks
type CheckResult struct {
	Platform  Entry     `json:"platform" yaml:"platform"`
	Docker    Entry     `json:"docker" yaml:"docker"`
	EdgeCLI   Entry     `json:"edge_cli" yaml:"edge_cli"`
	CheckedAt time.Time `json:"checked_at" yaml:"checked_at"`
}

// Entries returns the checks in display order.
func (r *CheckResult) Entries() []Entry {
	return []Entry{r.Platform, r.Docker, r.EdgeCLI}
}

// Summary returns ready when every check passed, unavailable when none
// did or the platform is unsupported, and degraded otherwise.
func (r *CheckResult) Summary() Status {
	passed := 0
	for _, e := range r.Entries() {
		if e.OK {
			passed++
		}
	}
	switch {
	case passed == len(r.Entries()):
		return StatusReady
	case passed == 0 || !r.Platform.OK:
		return StatusUnavailable
	default:
		return StatusDegraded
	}
}

// String renders every entry on one line, separated by "; ".
func (r *CheckResult) String() string {
	parts := make([]string, 0, 3)
	for _, e := range r.Entries() {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

// Check runs the platform, docker and Edge CLI checks.
func Check(ctx context.Context, opts Options) *CheckResult {
	result := &CheckResult{CheckedAt: time.Now()}

	goos, goarch := opts.GOOS, opts.GOARCH
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}
	result.Platform = CheckPlatform(goos, goarch)
	result.Docker = CheckDocker(ctx, opts.Docker)
	result.EdgeCLI = CheckEdgeCLI(ctx, opts.EdgeCLI)

	return result
}

// CheckPlatform checks that an Edge CLI build exists for goos/goarch.
func CheckPlatform(goos, goarch string) Entry {
	e := Entry{Name: "platform"}
	p, err := edgecli.PlatformFor(goos, goarch)
	if err != nil {
		e.Detail = err.Error()
		return e
	}
	e.OK = true
	e.Detail = p.String()
	return e
}

// CheckDocker checks that docker is installed and running.
func CheckDocker(ctx context.Context, d DockerChecker) Entry {
	e := Entry{Name: "docker"}
	if d == nil {
		e.Detail = "not checked"
		return e
	}
	status, err := d.Status(ctx)
	if err != nil {
		e.Detail = err.Error()
		return e
	}
	e.OK = status == docker.StatusRunning
	e.Detail = status.Describe()
	return e
}

// CheckEdgeCLI checks that the Edge CLI is installed and matches the
// published checksum.
func CheckEdgeCLI(ctx context.Context, v EdgeVerifier) Entry {
	e := Entry{Name: "edge CLI"}
	if v == nil {
		e.Detail = "not checked"
		return e
	}
	if err := v.Verify(ctx); err != nil {
		e.Detail = err.Error()
		return e
	}
	e.OK = true
	e.Detail = "installed & checksum verified"
	return e
}

// RequireReady returns a RequirementsFailed error unless every check passed.
func RequireReady(r *CheckResult) error {
	if r.Summary() == StatusReady {
		return nil
	}
	return errors.RequirementsFailed(r.String())
}

// FormatDuration renders d compactly, for example "2h 30m".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours)
}
