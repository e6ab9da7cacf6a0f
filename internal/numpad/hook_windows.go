//go:build windows

package numpad

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	wmQuit       = 0x0012

	llkhfExtended = 0x01
	llkhfInjected = 0x10

	// The OS deregisters hooks that miss their latency budget without any
	// notification. Re-installing once a second undoes an eviction before a
	// human can notice the deck went dead.
	reinstallIntervalMS = 1000
)

type kbdllHookStruct struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type point struct {
	X, Y int32
}

type message struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procPostQuitMessage     = user32.NewProc("PostQuitMessage")
	procSetTimer            = user32.NewProc("SetTimer")
	procKillTimer           = user32.NewProc("KillTimer")
	procGetKeyState         = user32.NewProc("GetKeyState")

	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandleW   = kernel32.NewProc("GetModuleHandleW")
	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

// The Win32 hook callback carries no closure context, so the active loop is
// process-global. Registration is guarded by CompareAndSwap; the callback
// itself only does an atomic load.
var (
	activeLoop atomic.Pointer[CaptureLoop]

	callbackOnce  sync.Once
	hookCallback  uintptr
	timerCallback uintptr
)

// CaptureLoop owns a WH_KEYBOARD_LL registration and its message loop. At
// most one loop can run per process. Run does everything on its own locked
// OS thread; Stop may be called from any goroutine.
type CaptureLoop struct {
	proc      processor
	hook      uintptr
	threadID  uint32
	installed chan error
	done      chan struct{}
}

// NewCaptureLoop prepares a loop writing into st, capturing layout's scan
// set.
func NewCaptureLoop(st *State, layout *Layout) *CaptureLoop {
	return &CaptureLoop{
		proc:      processor{st: st, layout: layout},
		installed: make(chan error, 1),
		done:      make(chan struct{}),
	}
}

// Installed delivers the hook installation result exactly once.
func (cl *CaptureLoop) Installed() <-chan error { return cl.installed }

// Done is closed when the loop has exited and the hook is released.
func (cl *CaptureLoop) Done() <-chan struct{} { return cl.done }

// Stop requests loop exit. The running flag is cleared for the liveness
// timer and a WM_QUIT wakes the message loop immediately.
func (cl *CaptureLoop) Stop() {
	cl.proc.st.SetRunning(false)
	if tid := atomic.LoadUint32(&cl.threadID); tid != 0 {
		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
	}
}

// Run installs the hook and pumps messages until Stop is called or the
// shared running flag is cleared. It blocks; run it on its own goroutine
// unless the caller has nothing else to do (the helper executable).
func (cl *CaptureLoop) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(cl.done)

	if !activeLoop.CompareAndSwap(nil, cl) {
		cl.installed <- fmt.Errorf("%w: another capture loop is active in this process", ErrHookInstall)
		return
	}
	defer activeLoop.Store(nil)

	callbackOnce.Do(func() {
		hookCallback = syscall.NewCallback(lowLevelKeyboardProc)
		timerCallback = syscall.NewCallback(reinstallTimerProc)
	})

	tid, _, _ := procGetCurrentThreadId.Call()
	atomic.StoreUint32(&cl.threadID, uint32(tid))

	if err := cl.install(); err != nil {
		cl.installed <- err
		return
	}
	cl.proc.st.SetHookInstalled(true)
	cl.installed <- nil

	timerID, _, _ := procSetTimer.Call(0, 0, reinstallIntervalMS, timerCallback)
	defer procKillTimer.Call(0, timerID)

	var m message
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}

	cl.uninstall()
	cl.proc.st.SetHookInstalled(false)
}

func (cl *CaptureLoop) install() error {
	hMod, _, _ := procGetModuleHandleW.Call(0)
	h, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookCallback, hMod, 0)
	if h == 0 {
		return fmt.Errorf("%w: %v", ErrHookInstall, err)
	}
	cl.hook = h
	return nil
}

func (cl *CaptureLoop) uninstall() {
	if cl.hook != 0 {
		procUnhookWindowsHookEx.Call(cl.hook)
		cl.hook = 0
	}
}

// numLockOnNow reads the OS toggle bit. At the instant the Num Lock key-down
// is being hooked this still reflects the pre-toggle state.
func numLockOnNow() bool {
	r, _, _ := procGetKeyState.Call(uintptr(vkNumLock))
	return int16(r)&1 != 0
}

func lowLevelKeyboardProc(nCode int, wParam, lParam uintptr) uintptr {
	cl := activeLoop.Load()
	if nCode >= 0 && cl != nil {
		kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		k := RawKey{
			VK:       uint16(kb.VkCode),
			Scan:     uint16(kb.ScanCode),
			Extended: kb.Flags&llkhfExtended != 0,
			Injected: kb.Flags&llkhfInjected != 0,
			KeyDown:  wParam == wmKeyDown || wParam == wmSysKeyDown,
		}
		var rawNumLock bool
		if k.KeyDown && k.VK == vkNumLock {
			rawNumLock = numLockOnNow()
		}
		if cl.proc.handle(k, rawNumLock) {
			return 1
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// reinstallTimerProc is the liveness job: every tick it unconditionally
// re-registers the hook (uninstall-then-install; checking validity is not
// worth the extra API surface) and honors a pending shutdown request. A
// failed re-install is left for the next tick, never treated as fatal.
func reinstallTimerProc(hwnd, msg, id, tick uintptr) uintptr {
	cl := activeLoop.Load()
	if cl == nil {
		return 0
	}
	if !cl.proc.st.Running() {
		procPostQuitMessage.Call(0)
		return 0
	}
	cl.uninstall()
	if err := cl.install(); err != nil {
		cl.proc.st.SetHookInstalled(false)
		return 0
	}
	cl.proc.st.SetHookInstalled(true)
	return 0
}
