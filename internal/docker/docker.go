package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edge-node/edge-launcher/internal/logging"
	"github.com/edge-node/edge-launcher/internal/system"
)

const (
	// DeviceDataVolume is the named volume the Edge device container reads
	// its identity from.
	DeviceDataVolume = "edge-device-data"

	// TempContainerName is the short-lived container used to reach the volume.
	TempContainerName = "temp_container_for_copying_edge_device_data"

	// HelperImage backs the temporary container.
	HelperImage = "alpine"

	// VolumeMountPoint is where the volume is mounted in the temporary container.
	VolumeMountPoint = "/data"

	// InstallURL is shown when docker is missing.
	InstallURL = "https://www.docker.com/products/docker-desktop/"
)

// Status is the state of the local docker engine.
type Status string

const (
	StatusRunning      Status = "running"
	StatusNotRunning   Status = "not-running"
	StatusNotInstalled Status = "not-installed"
)

// Describe returns a user-facing sentence for s.
func (s Status) Describe() string {
	switch s {
	case StatusRunning:
		return "Docker installed & ready."
	case StatusNotRunning:
		return "Docker installed but not running."
	case StatusNotInstalled:
		return "Docker is not installed. Installation link: " + InstallURL
	default:
		return "Docker status unknown."
	}
}

// Docker drives the docker CLI. A podman binary works as well since only
// docker-compatible subcommands are used.
type Docker struct {
	// Command is the container command to use (docker or podman)
	Command string

	Exec system.CommandExecutor
}

// New returns a Docker using the docker command.
func New(exec system.CommandExecutor) *Docker {
	return &Docker{Command: "docker", Exec: exec}
}

// Detect returns a Docker for the first of docker or podman found on PATH.
// When neither exists the docker command is kept so Status can report it.
func Detect(exec system.CommandExecutor) *Docker {
	for _, cmd := range []string{"docker", "podman"} {
		if _, err := exec.LookPath(cmd); err == nil {
			return &Docker{Command: cmd, Exec: exec}
		}
	}
	return New(exec)
}

// runCmd executes a docker command and returns stdout.
func (d *Docker) runCmd(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := d.Exec.Output(ctx, d.Command, args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		return "", fmt.Errorf("%s %s failed: %s: %w", d.Command, args[0], msg, err)
	}
	return string(stdout), nil
}

// Status runs "docker info". Exit code 0 means the engine is running and 1
// that the CLI is installed but cannot reach the engine.
func (d *Docker) Status(ctx context.Context) (Status, error) {
	_, _, err := d.Exec.Output(ctx, d.Command, "info")
	if err == nil {
		logging.Debug("docker running", "command", d.Command)
		return StatusRunning, nil
	}
	if system.IsNotFound(err) {
		logging.Debug("docker not installed", "command", d.Command, "error", err)
		return StatusNotInstalled, nil
	}

	code := system.ExitCode(err)
	logging.Debug("docker info failed", "command", d.Command, "code", code)
	if code == 1 {
		return StatusNotRunning, nil
	}
	return "", fmt.Errorf("%s info: exit code not recognized: %w", d.Command, err)
}

// VolumeExists reports whether the named volume exists.
func (d *Docker) VolumeExists(ctx context.Context, volume string) (bool, error) {
	_, _, err := d.Exec.Output(ctx, d.Command, "volume", "inspect", volume)
	if err == nil {
		return true, nil
	}
	if system.ExitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("%s volume inspect: %w", d.Command, err)
}

// CopyToVolume copies files into volume. A temporary container with the
// volume mounted is created, each file is copied into the mount point, and
// the container is removed again whether or not the copy succeeded.
func (d *Docker) CopyToVolume(ctx context.Context, volume string, files []string) (err error) {
	if len(files) == 0 {
		return errors.New("no files to copy")
	}

	logging.Debug("creating temporary container", "container", TempContainerName, "volume", volume)
	if _, err := d.runCmd(ctx, "container", "create",
		"--name", TempContainerName,
		"-v", volume+":"+VolumeMountPoint,
		HelperImage,
	); err != nil {
		return err
	}

	defer func() {
		// Cleanup must run even when ctx was canceled mid-copy.
		if _, rmErr := d.runCmd(context.WithoutCancel(ctx), "rm", TempContainerName); rmErr != nil {
			logging.Warn("failed to remove temporary container", "container", TempContainerName, "error", rmErr)
			if err == nil {
				err = rmErr
			}
		}
	}()

	for _, f := range files {
		logging.Debug("copying file to volume", "file", f, "volume", volume)
		if _, err := d.runCmd(ctx, "cp", f, TempContainerName+":"+VolumeMountPoint); err != nil {
			return err
		}
	}

	return nil
}
