//go:build windows

package numpad

import (
	"fmt"
	"sync"
	"time"
)

// stopTimeout bounds every wait on the producer during shutdown. If the hook
// thread or helper process is wedged the consumer still regains control.
const stopTimeout = 2 * time.Second

// hookHost is the in-process Capture Host: the hook and its message loop run
// on a dedicated locked OS thread inside this process.
type hookHost struct {
	mu      sync.Mutex
	st      *State
	layout  *Layout
	loop    *CaptureLoop
	running bool
}

// NewHost returns the in-process Capture Host.
func NewHost(layout *Layout) Host {
	return &hookHost{st: NewState(), layout: layout}
}

func (h *hookHost) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return nil
	}

	h.st.SetRunning(true)
	h.st.SetNumLockOff(!numLockOnNow())

	loop := NewCaptureLoop(h.st, h.layout)
	go loop.Run()

	select {
	case err := <-loop.Installed():
		if err != nil {
			h.st.SetRunning(false)
			return err
		}
	case <-time.After(stopTimeout):
		loop.Stop()
		return fmt.Errorf("%w: hook thread did not report in", ErrHookInstall)
	}

	h.loop = loop
	h.running = true
	return nil
}

func (h *hookHost) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}

	h.loop.Stop()
	select {
	case <-h.loop.Done():
	case <-time.After(stopTimeout):
		// Hook thread is wedged; the unhook will happen at process exit.
	}

	h.loop = nil
	h.running = false
}

func (h *hookHost) State() *State { return h.st }
