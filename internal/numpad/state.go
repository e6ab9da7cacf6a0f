package numpad

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// The channel between the Capture Host and the Service is a fixed-size
// single-producer/single-consumer ring of scan codes plus a handful of
// control flags and diagnostic counters, laid out over a raw byte region.
//
// The byte layout below is the IPC contract with numdeck-hook.exe: in the
// out-of-process configuration the region lives in named shared memory and
// both sides address it by these offsets. In-process the region is an
// ordinary heap buffer and the same atomics provide cross-thread visibility.
// Every field is a 4-byte word at a 4-byte-aligned offset.
const (
	// RingCapacity is the slot count. One slot is sacrificed to distinguish
	// full from empty, so Capacity events fit between drains.
	RingCapacity = 256

	// Capacity is the number of undelivered events the channel can hold.
	Capacity = RingCapacity - 1

	offWrite  = 0
	offRead   = 4
	offEvents = 8

	offNumLockChanged = offEvents + 4*RingCapacity
	offNumLockState   = offNumLockChanged + 4
	offPassthrough    = offNumLockState + 4
	offNumLockOff     = offPassthrough + 4
	offRunning        = offNumLockOff + 4
	offHookOK         = offRunning + 4

	offKeysSeen   = offHookOK + 4
	offNumpadSeen = offKeysSeen + 4
	offSuppressed = offNumpadSeen + 4
	offOverflow   = offSuppressed + 4

	// StateSize is the total region size in bytes.
	StateSize = offOverflow + 4
)

// State is the channel state shared between the Capture Host (producer) and
// the Service (consumer). The write cursor is advanced only by the producer
// and the read cursor only by the consumer; each side only ever reads the
// other's cursor, so no lock is needed.
type State struct {
	buf []byte
}

// NewState allocates a process-local state region.
func NewState() *State {
	return &State{buf: make([]byte, StateSize)}
}

// StateFromBytes overlays the channel state on an existing region, typically
// a mapped shared-memory view.
func StateFromBytes(buf []byte) (*State, error) {
	if len(buf) < StateSize {
		return nil, fmt.Errorf("state region too small: %d bytes, need %d", len(buf), StateSize)
	}
	return &State{buf: buf[:StateSize]}, nil
}

func (s *State) word(off int) *int32 {
	return (*int32)(unsafe.Pointer(&s.buf[off]))
}

// Publish appends a captured scan code. Producer side only. When the ring is
// full the event is dropped (drop-newest) and the overflow counter
// increments; Publish never blocks and never grows the buffer.
func (s *State) Publish(scan uint16) bool {
	w := atomic.LoadInt32(s.word(offWrite))
	next := (w + 1) % RingCapacity
	if next == atomic.LoadInt32(s.word(offRead)) {
		atomic.AddInt32(s.word(offOverflow), 1)
		return false
	}
	atomic.StoreInt32(s.word(offEvents+4*int(w)), int32(scan))
	atomic.StoreInt32(s.word(offWrite), next)
	return true
}

// Drain returns every scan code published since the last drain, in FIFO
// order. Consumer side only. Safe to call when empty.
func (s *State) Drain() []uint16 {
	var out []uint16
	for i := 0; i < RingCapacity; i++ {
		r := atomic.LoadInt32(s.word(offRead))
		if r == atomic.LoadInt32(s.word(offWrite)) {
			break
		}
		scan := atomic.LoadInt32(s.word(offEvents + 4*int(r)))
		atomic.StoreInt32(s.word(offRead), (r+1)%RingCapacity)
		out = append(out, uint16(scan))
	}
	return out
}

// Pending reports how many events are waiting to be drained.
func (s *State) Pending() int {
	w := atomic.LoadInt32(s.word(offWrite))
	r := atomic.LoadInt32(s.word(offRead))
	return int((w - r + RingCapacity) % RingCapacity)
}

// PublishNumLockChange records a Num Lock transition. The new state is
// written before the edge flag so the consumer never reads a stale state.
func (s *State) PublishNumLockChange(on bool) {
	s.setFlag(offNumLockState, on)
	atomic.StoreInt32(s.word(offNumLockChanged), 1)
}

// TakeNumLockChange consumes a pending Num Lock transition, if any. The edge
// flag is cleared so a toggle is delivered exactly once.
func (s *State) TakeNumLockChange() (on, changed bool) {
	if atomic.SwapInt32(s.word(offNumLockChanged), 0) == 0 {
		return false, false
	}
	return s.flag(offNumLockState), true
}

func (s *State) setFlag(off int, v bool) {
	var w int32
	if v {
		w = 1
	}
	atomic.StoreInt32(s.word(off), w)
}

func (s *State) flag(off int) bool {
	return atomic.LoadInt32(s.word(off)) != 0
}

// SetPassthrough is set by the consumer; the producer classifies but stops
// suppressing while it is on.
func (s *State) SetPassthrough(v bool) { s.setFlag(offPassthrough, v) }

// Passthrough reports the passthrough flag.
func (s *State) Passthrough() bool { return s.flag(offPassthrough) }

// SetNumLockOff records the producer-tracked Num Lock gate.
func (s *State) SetNumLockOff(v bool) { s.setFlag(offNumLockOff, v) }

// NumLockOff reports the producer-tracked Num Lock gate.
func (s *State) NumLockOff() bool { return s.flag(offNumLockOff) }

// SetRunning is cleared by the consumer to request producer shutdown.
func (s *State) SetRunning(v bool) { s.setFlag(offRunning, v) }

// Running reports the shutdown-request flag.
func (s *State) Running() bool { return s.flag(offRunning) }

// SetHookInstalled records whether the keyboard hook is currently registered.
func (s *State) SetHookInstalled(v bool) { s.setFlag(offHookOK, v) }

// HookInstalled reports whether the keyboard hook is currently registered.
func (s *State) HookInstalled() bool { return s.flag(offHookOK) }

// Diagnostic counters. Not correctness-critical; used for health logging and
// tests.

// IncKeysSeen counts every keystroke the hook observed.
func (s *State) IncKeysSeen() { atomic.AddInt32(s.word(offKeysSeen), 1) }

// KeysSeen returns the keystroke counter.
func (s *State) KeysSeen() int { return int(atomic.LoadInt32(s.word(offKeysSeen))) }

// IncNumpadSeen counts numpad-cluster key-downs, captured or not.
func (s *State) IncNumpadSeen() { atomic.AddInt32(s.word(offNumpadSeen), 1) }

// NumpadSeen returns the numpad key-down counter.
func (s *State) NumpadSeen() int { return int(atomic.LoadInt32(s.word(offNumpadSeen))) }

// IncSuppressed counts captured (suppressed) key-downs.
func (s *State) IncSuppressed() { atomic.AddInt32(s.word(offSuppressed), 1) }

// Suppressed returns the suppressed key-down counter.
func (s *State) Suppressed() int { return int(atomic.LoadInt32(s.word(offSuppressed))) }

// Overflow returns how many events were dropped because the ring was full.
func (s *State) Overflow() int { return int(atomic.LoadInt32(s.word(offOverflow))) }
