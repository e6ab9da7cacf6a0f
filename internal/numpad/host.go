package numpad

import "errors"

// ShmName identifies the channel region shared with numdeck-hook.exe.
const ShmName = `Local\NumdeckNumpadHook`

// HelperExeName is the helper binary expected next to the main executable.
// Host selection checks for it on every platform, so it lives outside the
// build-tagged files.
const HelperExeName = "numdeck-hook.exe"

// Host is the privileged capture component: it registers a system-wide
// keyboard observer, writes captured events into its State, and suppresses
// them from other applications.
type Host interface {
	// Start installs the observer. Calling Start while already running is a
	// no-op. Installation failure is reported as a typed error; the feature
	// degrades to mouse-only operation without it.
	Start() error

	// Stop uninstalls the observer and releases every resource Start
	// acquired. Idempotent and safe to call even if Start never succeeded.
	// The wait for an unresponsive producer is bounded.
	Stop()

	// State returns the channel state shared with the consumer.
	State() *State
}

var (
	// ErrUnsupported is returned on platforms without a capture backend.
	ErrUnsupported = errors.New("numpad capture is only supported on windows")

	// ErrHookInstall means the low-level keyboard hook could not be
	// registered in this process.
	ErrHookInstall = errors.New("keyboard hook installation failed")

	// ErrHelperStart means the numdeck-hook helper process failed to launch.
	ErrHelperStart = errors.New("capture helper failed to start")

	// ErrHelperTimeout means the helper launched but never created its
	// shared-memory region.
	ErrHelperTimeout = errors.New("capture helper did not come up in time")
)
