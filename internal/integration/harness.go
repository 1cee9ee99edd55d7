package integration

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/edge-node/edge-launcher/internal/config"
	"github.com/edge-node/edge-launcher/internal/docker"
	"github.com/edge-node/edge-launcher/internal/system"
)

// EnvEnable enables the integration tests when set.
const EnvEnable = "EDGE_LAUNCHER_INTEGRATION_TESTS"

// Harness provides utilities for integration testing against a real
// container engine.
type Harness struct {
	t       *testing.T
	tempDir string
	paths   *config.Paths
	exec    system.CommandExecutor
	docker  *docker.Docker
	volumes []string // Track created volumes for cleanup
}

// NewHarness creates a new test harness.
// It will skip the test if EDGE_LAUNCHER_INTEGRATION_TESTS is not set or
// docker is not running.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	if os.Getenv(EnvEnable) == "" {
		t.Skipf("integration tests disabled (set %s=1 to enable)", EnvEnable)
	}

	tempDir := t.TempDir()
	exec := system.DefaultExecutor()
	d := docker.Detect(exec)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	status, err := d.Status(ctx)
	if err != nil || status != docker.StatusRunning {
		t.Skipf("docker not available: %s %v", status.Describe(), err)
	}

	h := &Harness{
		t:       t,
		tempDir: tempDir,
		paths:   config.NewPaths(tempDir),
		exec:    exec,
		docker:  d,
	}
	t.Cleanup(h.Cleanup)
	return h
}

// Paths returns the harness data paths.
func (h *Harness) Paths() *config.Paths {
	return h.paths
}

// Exec returns the real command executor.
func (h *Harness) Exec() system.CommandExecutor {
	return h.exec
}

// Docker returns the detected container engine.
func (h *Harness) Docker() *docker.Docker {
	return h.docker
}

// Context returns a context that is canceled when the test ends.
func (h *Harness) Context() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	h.t.Cleanup(cancel)
	return ctx
}

// Volume returns a unique volume name that is removed on cleanup.
func (h *Harness) Volume() string {
	name := fmt.Sprintf("edge-launcher-test-%d", time.Now().UnixNano())
	h.volumes = append(h.volumes, name)
	return name
}

// ReadVolumeFile returns the content of name inside volume.
func (h *Harness) ReadVolumeFile(volume, name string) string {
	h.t.Helper()

	out, stderr, err := h.exec.Output(h.Context(), h.docker.Command,
		"run", "--rm",
		"-v", volume+":"+docker.VolumeMountPoint,
		docker.HelperImage,
		"cat", docker.VolumeMountPoint+"/"+name,
	)
	if err != nil {
		h.t.Fatalf("failed to read %s from %s: %v: %s", name, volume, err, strings.TrimSpace(string(stderr)))
	}
	return string(out)
}

// WriteFile writes a file under the temp dir and returns its path.
func (h *Harness) WriteFile(name, content string) string {
	h.t.Helper()

	path, err := h.paths.File(name)
	if err != nil {
		h.t.Fatalf("invalid file name %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		h.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Cleanup removes all tracked volumes.
func (h *Harness) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, v := range h.volumes {
		if _, _, err := h.exec.Output(ctx, h.docker.Command, "volume", "rm", "-f", v); err != nil {
			h.t.Logf("failed to remove volume %s: %v", v, err)
		}
	}
	h.volumes = nil
}
