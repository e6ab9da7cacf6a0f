//go:build !windows

package numpad

// IsNumLockOn always reports false on platforms without capture support,
// which leaves the deck visible.
func IsNumLockOn() bool {
	return false
}
