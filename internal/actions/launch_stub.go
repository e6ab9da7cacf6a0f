//go:build !windows

package actions

import "os/exec"

func hideConsole(cmd *exec.Cmd) {}
