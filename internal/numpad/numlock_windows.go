//go:build windows

package numpad

// IsNumLockOn queries the OS toggle state directly, bypassing the channel.
// Used at startup to decide initial deck visibility before any event has
// been observed.
func IsNumLockOn() bool {
	return numLockOnNow()
}
