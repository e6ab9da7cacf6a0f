//go:build !windows

package numpad

// stubHost keeps the rest of the application compiling and testable on
// platforms without a capture backend. Start fails with ErrUnsupported and
// the application runs mouse-only.
type stubHost struct {
	st *State
}

// NewHost returns a stub Capture Host on this platform.
func NewHost(layout *Layout) Host {
	return &stubHost{st: NewState()}
}

// NewHelperHost returns a stub Capture Host on this platform.
func NewHelperHost(exePath string, layout *Layout) Host {
	return &stubHost{st: NewState()}
}

func (h *stubHost) Start() error { return ErrUnsupported }

func (h *stubHost) Stop() {}

func (h *stubHost) State() *State { return h.st }
