//go:build windows

package numpad

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"numdeck/internal/shm"
)

// helperStartupTimeout bounds the wait for the helper to create its
// shared-memory region before Start gives up.
const helperStartupTimeout = time.Second

// helperHost runs the Capture Host out of process. The helper owns the hook
// and the shared-memory region; contention in this process's event loop can
// never cost the hook its latency budget. The helper receives our pid and
// exits on its own if we die, so no orphaned global hook survives a crash.
type helperHost struct {
	mu      sync.Mutex
	exePath string
	layout  *Layout
	cmd     *exec.Cmd
	region  *shm.Region
	st      *State
	running bool
}

// NewHelperHost returns a Capture Host backed by the helper executable at
// exePath. The layout is handed to the helper on its command line, so the
// producer captures exactly the scan set the consumer will look up.
func NewHelperHost(exePath string, layout *Layout) Host {
	return &helperHost{exePath: exePath, layout: layout}
}

func (h *helperHost) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return nil
	}

	args := []string{"-parent", strconv.Itoa(os.Getpid())}
	if h.layout != nil {
		args = append(args,
			"-buttons", h.layout.EncodeButtons(),
			"-back", h.layout.EncodeBack(),
		)
	}
	cmd := exec.Command(h.exePath, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrHelperStart, err)
	}

	region, err := h.waitForRegion()
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return err
	}

	st, err := StateFromBytes(region.Bytes())
	if err != nil {
		region.Close()
		cmd.Process.Kill()
		cmd.Wait()
		return err
	}

	h.cmd = cmd
	h.region = region
	h.st = st
	h.running = true
	return nil
}

func (h *helperHost) waitForRegion() (*shm.Region, error) {
	deadline := time.Now().Add(helperStartupTimeout)
	var lastErr error
	for time.Now().Before(deadline) {
		region, err := shm.Open(ShmName, StateSize)
		if err == nil {
			return region, nil
		}
		lastErr = err
		time.Sleep(10 * time.Millisecond)
	}
	return nil, fmt.Errorf("%w: %v", ErrHelperTimeout, lastErr)
}

func (h *helperHost) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}

	// Ask the helper to exit, then enforce the bound.
	h.st.SetRunning(false)
	done := make(chan struct{})
	go func() {
		h.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		h.cmd.Process.Kill()
		<-done
	}

	h.region.Close()
	h.cmd = nil
	h.region = nil
	h.st = nil
	h.running = false
}

func (h *helperHost) State() *State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.st
}
