// Package numpad captures physical numpad key presses system-wide and turns
// them into deck button events.
//
// The pipeline is: a low-level keyboard hook (the Capture Host, either on a
// dedicated thread in this process or inside the numdeck-hook helper process)
// classifies raw keystrokes by hardware scan code, writes captured ones into a
// fixed-size ring buffer, and suppresses them from the rest of the system.
// The Service drains the ring on a ~60 Hz timer and dispatches the three
// consumer callbacks: button press, back navigation, and Num Lock changes.
package numpad

// Coordinate identifies one of the nine primary numpad digit keys mapped onto
// a 3x3 grid: (0,0) is numpad 7, (2,2) is numpad 3.
type Coordinate struct {
	Row int
	Col int
}

// EventKind enumerates the closed set of capture events.
type EventKind int

const (
	// EventButtonPress is a numpad digit key claimed as a deck button.
	EventButtonPress EventKind = iota
	// EventBackNavigation is the bottom-row back key (numpad 0 or '.').
	EventBackNavigation
	// EventNumLockChanged reports the Num Lock state after a toggle keystroke.
	EventNumLockChanged
)

// Event is one classified capture event.
type Event struct {
	Kind EventKind

	// Coord is valid for EventButtonPress.
	Coord Coordinate

	// NumLockOn is valid for EventNumLockChanged.
	NumLockOn bool
}
