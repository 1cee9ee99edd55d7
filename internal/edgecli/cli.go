package edgecli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/edge-node/edge-launcher/internal/logging"
	"github.com/edge-node/edge-launcher/internal/system"
)

// Exit codes of the Edge CLI.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// CommandError is a non-zero exit of the Edge CLI.
type CommandError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *CommandError) Error() string {
	if e.Code == ExitFailed {
		return "CLI installed but ran with error: " + e.Stderr
	}
	return fmt.Sprintf("edge exit code %d not recognized (command %q)", e.Code, e.Command)
}

// Recognized reports whether the exit code is one the Edge CLI documents.
func (e *CommandError) Recognized() bool {
	return e.Code == ExitFailed
}

// CLI runs Edge CLI commands.
type CLI struct {
	Binary string
	Exec   system.CommandExecutor
}

// New returns a CLI for the binary at path.
func New(path string, exec system.CommandExecutor) *CLI {
	return &CLI{Binary: path, Exec: exec}
}

// Run executes command (for example "device info") and returns stdout.
func (c *CLI) Run(ctx context.Context, command string) (string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return "", fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(args) == 0 {
		return "", errors.New("empty edge command")
	}

	logging.Debug("invoking edge CLI", "binary", c.Binary, "args", args)

	stdout, stderr, err := c.Exec.Output(ctx, c.Binary, args...)
	if err == nil {
		logging.Debug("edge CLI completed", "command", command)
		return string(stdout), nil
	}

	if system.IsNotFound(err) {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, c.Binary)
	}

	code := system.ExitCode(err)
	logging.Debug("edge CLI failed", "command", command, "code", code, "error", err)
	if code < 0 {
		return "", fmt.Errorf("run edge %s: %w", command, err)
	}
	return "", &CommandError{
		Command: command,
		Code:    code,
		Stderr:  strings.TrimSpace(string(stderr)),
	}
}

// DeviceStart runs "device start".
func (c *CLI) DeviceStart(ctx context.Context) (string, error) {
	return c.Run(ctx, "device start")
}

// DeviceStop runs "device stop".
func (c *CLI) DeviceStop(ctx context.Context) (string, error) {
	return c.Run(ctx, "device stop")
}

// DeviceInfo runs "device info".
func (c *CLI) DeviceInfo(ctx context.Context) (string, error) {
	return c.Run(ctx, "device info")
}
