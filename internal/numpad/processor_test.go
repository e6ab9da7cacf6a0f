package numpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor() *processor {
	st := NewState()
	st.SetNumLockOff(true)
	return &processor{st: st, layout: DefaultLayout()}
}

func TestProcessorCapturesNumpadKeyDown(t *testing.T) {
	p := newTestProcessor()

	suppressed := p.handle(RawKey{Scan: ScanNumpad7, KeyDown: true}, false)
	assert.True(t, suppressed)

	assert.Equal(t, []uint16{ScanNumpad7}, p.st.Drain())
	assert.Equal(t, 1, p.st.Suppressed())
	assert.Equal(t, 1, p.st.NumpadSeen())
}

func TestProcessorSuppressesKeyUpWithoutPublishing(t *testing.T) {
	p := newTestProcessor()

	p.handle(RawKey{Scan: ScanNumpad7, KeyDown: true}, false)
	suppressed := p.handle(RawKey{Scan: ScanNumpad7, KeyDown: false}, false)
	assert.True(t, suppressed, "key-up of a captured key must not leak out")

	// Only the key-down produced an event.
	assert.Len(t, p.st.Drain(), 1)
}

func TestProcessorIgnoresNonNumpadKeys(t *testing.T) {
	p := newTestProcessor()

	// Main-row 'A'.
	suppressed := p.handle(RawKey{VK: 0x41, Scan: 30, KeyDown: true}, false)
	assert.False(t, suppressed)
	assert.Empty(t, p.st.Drain())
	assert.Equal(t, 1, p.st.KeysSeen())
	assert.Equal(t, 0, p.st.NumpadSeen())
}

func TestProcessorPassesThroughInjectedAndExtended(t *testing.T) {
	p := newTestProcessor()

	assert.False(t, p.handle(RawKey{Scan: ScanNumpad7, Injected: true, KeyDown: true}, false))
	assert.False(t, p.handle(RawKey{Scan: ScanNumpad7, Extended: true, KeyDown: true}, false))
	assert.Empty(t, p.st.Drain())

	// Still counted as numpad traffic for diagnostics.
	assert.Equal(t, 2, p.st.NumpadSeen())
	assert.Equal(t, 0, p.st.Suppressed())
}

func TestProcessorNumLockOnDisablesCapture(t *testing.T) {
	p := newTestProcessor()
	p.st.SetNumLockOff(false)

	suppressed := p.handle(RawKey{Scan: ScanNumpad7, KeyDown: true}, true)
	assert.False(t, suppressed)
	assert.Empty(t, p.st.Drain())
}

func TestProcessorPassthroughMode(t *testing.T) {
	p := newTestProcessor()
	p.st.SetPassthrough(true)

	suppressed := p.handle(RawKey{Scan: ScanNumpad7, KeyDown: true}, false)
	assert.False(t, suppressed, "passthrough must let the key reach the foreground app")
	assert.Empty(t, p.st.Drain(), "passthrough must not publish events")
	assert.Equal(t, 1, p.st.NumpadSeen(), "classification still runs for diagnostics")
}

func TestProcessorNumLockToggle(t *testing.T) {
	p := newTestProcessor()

	// The toggle state at callback time is pre-transition: raw off means the
	// key press turns Num Lock on.
	suppressed := p.handle(RawKey{VK: vkNumLock, Scan: 69, KeyDown: true}, false)
	assert.False(t, suppressed, "the Num Lock key itself is never captured")

	on, changed := p.st.TakeNumLockChange()
	require.True(t, changed)
	assert.True(t, on)
	assert.False(t, p.st.NumLockOff())

	// And back off.
	p.handle(RawKey{VK: vkNumLock, Scan: 69, KeyDown: true}, true)
	on, changed = p.st.TakeNumLockChange()
	require.True(t, changed)
	assert.False(t, on)
	assert.True(t, p.st.NumLockOff())
}

func TestProcessorNumLockKeyUpIgnored(t *testing.T) {
	p := newTestProcessor()

	p.handle(RawKey{VK: vkNumLock, Scan: 69, KeyDown: false}, false)
	_, changed := p.st.TakeNumLockChange()
	assert.False(t, changed, "only key-down toggles the lock state")
}

func TestProcessorBackKey(t *testing.T) {
	p := newTestProcessor()

	assert.True(t, p.handle(RawKey{Scan: ScanNumpad0, KeyDown: true}, false))
	assert.True(t, p.handle(RawKey{Scan: ScanNumpadDot, KeyDown: true}, false))
	assert.Equal(t, []uint16{ScanNumpad0, ScanNumpadDot}, p.st.Drain())
}
