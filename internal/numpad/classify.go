package numpad

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RawKey is one keystroke notification as the low-level hook sees it.
type RawKey struct {
	// VK is the virtual-key code. Num Lock remapping makes it ambiguous for
	// numpad keys, so classification keys off Scan instead; VK is only
	// inspected for the Num Lock toggle itself.
	VK uint16

	// Scan is the hardware scan code, stable regardless of lock state.
	Scan uint16

	// Extended is set for the dedicated navigation cluster (arrows,
	// Home/End/...), which aliases the numpad's virtual-key codes but never
	// its scan codes without this flag.
	Extended bool

	// Injected is set for software-synthesized input, including our own
	// action executor's SendInput traffic.
	Injected bool

	// KeyDown distinguishes key-down from key-up.
	KeyDown bool
}

// Scan codes of the numpad cluster.
const (
	ScanNumpad7   = 71
	ScanNumpad8   = 72
	ScanNumpad9   = 73
	ScanNumpad4   = 75
	ScanNumpad5   = 76
	ScanNumpad6   = 77
	ScanNumpad1   = 79
	ScanNumpad2   = 80
	ScanNumpad3   = 81
	ScanNumpad0   = 82
	ScanNumpadDot = 83
)

// Layout maps hardware scan codes to logical deck positions. The digit grid
// is fixed in practice, but the bottom row (numpad 0 and '.') changed meaning
// across product generations, so the whole table is configuration rather than
// code.
type Layout struct {
	buttons map[uint16]Coordinate
	back    map[uint16]struct{}
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{
		buttons: make(map[uint16]Coordinate),
		back:    make(map[uint16]struct{}),
	}
}

// DefaultLayout maps numpad 7..9/4..6/1..3 onto the 3x3 grid and both numpad
// 0 and numpad '.' to back navigation.
func DefaultLayout() *Layout {
	l := NewLayout()
	grid := [...]uint16{
		ScanNumpad7, ScanNumpad8, ScanNumpad9,
		ScanNumpad4, ScanNumpad5, ScanNumpad6,
		ScanNumpad1, ScanNumpad2, ScanNumpad3,
	}
	for i, scan := range grid {
		l.MapButton(scan, i/3, i%3)
	}
	l.MapBack(ScanNumpad0)
	l.MapBack(ScanNumpadDot)
	return l
}

// MapButton binds a scan code to a grid position.
func (l *Layout) MapButton(scan uint16, row, col int) {
	l.buttons[scan] = Coordinate{Row: row, Col: col}
}

// MapBack binds a scan code to back navigation.
func (l *Layout) MapBack(scan uint16) {
	l.back[scan] = struct{}{}
}

// Contains reports whether the scan code belongs to the capture set.
func (l *Layout) Contains(scan uint16) bool {
	if _, ok := l.buttons[scan]; ok {
		return true
	}
	_, ok := l.back[scan]
	return ok
}

// Lookup maps an already-captured scan code to its event. Used on the consumer
// side of the channel, after the hook's gating has run.
func (l *Layout) Lookup(scan uint16) (Event, bool) {
	if coord, ok := l.buttons[scan]; ok {
		return Event{Kind: EventButtonPress, Coord: coord}, true
	}
	if _, ok := l.back[scan]; ok {
		return Event{Kind: EventBackNavigation}, true
	}
	return Event{}, false
}

// EncodeButtons serializes the button table as comma-separated scan:row:col
// triples, in scan order. The helper process receives its capture set this
// way, so producer gating and consumer lookup can never diverge.
func (l *Layout) EncodeButtons() string {
	scans := make([]int, 0, len(l.buttons))
	for scan := range l.buttons {
		scans = append(scans, int(scan))
	}
	sort.Ints(scans)

	parts := make([]string, 0, len(scans))
	for _, scan := range scans {
		c := l.buttons[uint16(scan)]
		parts = append(parts, fmt.Sprintf("%d:%d:%d", scan, c.Row, c.Col))
	}
	return strings.Join(parts, ",")
}

// EncodeBack serializes the back-navigation scan set, comma separated in
// scan order.
func (l *Layout) EncodeBack() string {
	scans := make([]int, 0, len(l.back))
	for scan := range l.back {
		scans = append(scans, int(scan))
	}
	sort.Ints(scans)

	parts := make([]string, 0, len(scans))
	for _, scan := range scans {
		parts = append(parts, strconv.Itoa(scan))
	}
	return strings.Join(parts, ",")
}

// ParseLayoutFlags rebuilds a Layout from the EncodeButtons/EncodeBack
// forms, as passed on the helper's command line.
func ParseLayoutFlags(buttons, back string) (*Layout, error) {
	l := NewLayout()
	for _, part := range strings.Split(buttons, ",") {
		if part == "" {
			continue
		}
		var scan, row, col int
		if _, err := fmt.Sscanf(part, "%d:%d:%d", &scan, &row, &col); err != nil {
			return nil, fmt.Errorf("bad button mapping %q: %w", part, err)
		}
		l.MapButton(uint16(scan), row, col)
	}
	for _, part := range strings.Split(back, ",") {
		if part == "" {
			continue
		}
		scan, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad back scan %q: %w", part, err)
		}
		l.MapBack(uint16(scan))
	}
	return l, nil
}

// Classify decides whether a raw keystroke is a physical numpad key press
// with Num Lock off, and if so, which logical key it is. Pure function.
//
// Injected events are never classified: they originate from action execution
// (macro playback, typed text) and re-interpreting them would loop feedback
// into the deck. Extended-flag events are the real navigation cluster, not
// the numpad. Num Lock on means the numpad is in numeric-entry mode and is
// left alone. Modifier state is deliberately not an input; numpad keys report
// the same scan code with or without Shift/Ctrl/Alt held.
func (l *Layout) Classify(k RawKey, numLockOn bool) (Event, bool) {
	if k.Injected || k.Extended || numLockOn {
		return Event{}, false
	}
	return l.Lookup(k.Scan)
}
