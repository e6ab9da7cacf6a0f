//go:build windows

package actions

import (
	"os/exec"
	"syscall"
)

// hideConsole keeps console-subsystem children from flashing a window when
// launched from a button.
func hideConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: 0x08000000, // CREATE_NO_WINDOW
	}
}
