//go:build windows

package system

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps docker and the Edge CLI from flashing a console window.
const createNoWindow = 0x08000000

func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
}
