//go:build !windows

package main

import "numdeck/internal/numpad"

func run(parentPID int, name string, layout *numpad.Layout) error {
	return numpad.ErrUnsupported
}
