//go:build windows

package osutils

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

// ShellOpen opens a file, folder or URL with its registered handler, the
// same way double-clicking it in Explorer would.
func ShellOpen(target string) error {
	verbPtr, err := syscall.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	targetPtr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return err
	}

	const swShowNormal = 1
	if err := windows.ShellExecute(0, verbPtr, targetPtr, nil, nil, swShowNormal); err != nil {
		return fmt.Errorf("shell open %q: %w", target, err)
	}
	return nil
}
