package numpad

// vkNumLock is the Num Lock toggle's virtual-key code.
const vkNumLock = 0x90

// processor holds the per-keystroke logic shared by the in-process hook and
// the numdeck-hook helper. It runs inside the hook callback's latency budget:
// table lookups and atomic stores only, no locks, no allocation, no I/O. The
// OS silently evicts hooks that exceed the budget, so nothing else belongs
// here.
type processor struct {
	st     *State
	layout *Layout
}

// handle processes one raw keystroke and reports whether it must be
// suppressed from the rest of the system.
//
// rawNumLockOn is the toggle state readable at callback time. For the Num
// Lock key itself it still reflects the pre-toggle state, so the published
// transition is the inverse.
func (p *processor) handle(k RawKey, rawNumLockOn bool) bool {
	p.st.IncKeysSeen()

	if k.KeyDown && k.VK == vkNumLock {
		willBeOn := !rawNumLockOn
		p.st.SetNumLockOff(!willBeOn)
		p.st.PublishNumLockChange(willBeOn)
		return false
	}

	if !p.layout.Contains(k.Scan) {
		return false
	}
	if k.KeyDown {
		p.st.IncNumpadSeen()
	}
	if !p.captures(k) {
		return false
	}
	if k.KeyDown {
		p.st.Publish(k.Scan)
		p.st.IncSuppressed()
	}
	// Key-ups of captured keys are suppressed too, so the foreground
	// application never sees an orphaned key-up.
	return true
}

// captures applies the gating of Layout.Classify against the shared flags:
// capture only physical (non-injected), non-extended numpad keys while Num
// Lock is off and passthrough is disabled.
func (p *processor) captures(k RawKey) bool {
	return !p.st.Passthrough() && p.st.NumLockOff() && !k.Injected && !k.Extended
}
