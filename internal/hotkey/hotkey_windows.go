//go:build windows

package hotkey

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmHotkey = 0x0312
	wmQuit   = 0x0012
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey    = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey  = user32.NewProc("UnregisterHotKey")
	procGetMessage        = user32.NewProc("GetMessageW")
	procPostThreadMessage = user32.NewProc("PostThreadMessageW")
)

type message struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// startPlatform registers the combos on a dedicated message-loop thread.
// RegisterHotKey binds to the calling thread, so registration and the
// GetMessage loop must share one locked OS thread.
func (m *Manager) startPlatform() (func(), error) {
	registered := make(chan error, 1)
	done := make(chan struct{})
	var threadID uint32

	bindings := make([]binding, len(m.bindings))
	copy(bindings, m.bindings)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		threadID = windows.GetCurrentThreadId()

		for i, b := range bindings {
			ret, _, err := procRegisterHotKey.Call(
				0,
				uintptr(i+1),
				uintptr(b.key.Modifiers|modNoRepeat),
				uintptr(b.key.VK),
			)
			if ret == 0 {
				for j := 0; j < i; j++ {
					procUnregisterHotKey.Call(0, uintptr(j+1))
				}
				registered <- fmt.Errorf("registering hotkey %q: %w", b.combo, err)
				return
			}
		}
		registered <- nil

		var msg message
		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
			if msg.Message == wmHotkey {
				id := int(msg.WParam) - 1
				if id >= 0 && id < len(bindings) {
					m.log.WithField("combo", bindings[id].combo).Debug("hotkey pressed")
					go bindings[id].callback()
				}
			}
		}

		for i := range bindings {
			procUnregisterHotKey.Call(0, uintptr(i+1))
		}
	}()

	if err := <-registered; err != nil {
		return nil, err
	}
	m.log.WithField("count", len(bindings)).Info("global hotkeys registered")

	stop := func() {
		procPostThreadMessage.Call(uintptr(threadID), wmQuit, 0, 0)
		<-done
	}
	return stop, nil
}
