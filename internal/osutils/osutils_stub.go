//go:build !windows

package osutils

import (
	"os/exec"
	"runtime"
)

// ShellOpen opens a file, folder or URL with the desktop's default handler.
func ShellOpen(target string) error {
	if runtime.GOOS == "darwin" {
		return exec.Command("open", target).Start()
	}
	return exec.Command("xdg-open", target).Start()
}
