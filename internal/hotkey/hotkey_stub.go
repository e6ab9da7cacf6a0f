//go:build !windows

package hotkey

// startPlatform is a no-op off Windows; the tray menu still offers the
// same controls.
func (m *Manager) startPlatform() (func(), error) {
	m.log.Warn("global hotkeys are only supported on windows")
	return func() {}, nil
}
