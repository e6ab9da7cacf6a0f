//go:build !windows

package autostart

import "errors"

func enableWindows() error  { return errors.New("not windows") }
func disableWindows() error { return errors.New("not windows") }
func isEnabledWindows() bool { return false }
