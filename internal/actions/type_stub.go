//go:build !windows

package actions

import "errors"

func typeString(text string) error {
	return errors.New("text typing is only supported on windows")
}
