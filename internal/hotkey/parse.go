package hotkey

import (
	"fmt"
	"strings"
)

// Modifier flags as RegisterHotKey expects them.
const (
	ModAlt     = 0x0001
	ModControl = 0x0002
	ModShift   = 0x0004
	ModWin     = 0x0008

	// modNoRepeat keeps a held combo from re-firing.
	modNoRepeat = 0x4000
)

// Combo is a parsed hotkey: OS modifier flags plus a virtual-key code.
type Combo struct {
	Modifiers uint16
	VK        uint16
}

var namedKeys = map[string]uint16{
	"enter":    0x0D,
	"esc":      0x1B,
	"escape":   0x1B,
	"space":    0x20,
	"tab":      0x09,
	"up":       0x26,
	"down":     0x28,
	"left":     0x25,
	"right":    0x27,
	"home":     0x24,
	"end":      0x23,
	"insert":   0x2D,
	"delete":   0x2E,
	"pageup":   0x21,
	"pagedown": 0x22,
}

// ParseCombo parses "ctrl+alt+n" style strings. The last segment is the
// key; everything before it must be a modifier. At least one modifier is
// required, because a bare global key would shadow normal typing.
func ParseCombo(combo string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return c, fmt.Errorf("hotkey %q needs at least one modifier", combo)
	}

	for _, mod := range parts[:len(parts)-1] {
		switch strings.TrimSpace(mod) {
		case "ctrl", "control":
			c.Modifiers |= ModControl
		case "alt":
			c.Modifiers |= ModAlt
		case "shift":
			c.Modifiers |= ModShift
		case "win", "super", "meta":
			c.Modifiers |= ModWin
		default:
			return c, fmt.Errorf("unknown modifier %q in %q", mod, combo)
		}
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	switch {
	case len(key) == 1 && key[0] >= 'a' && key[0] <= 'z':
		c.VK = uint16(key[0] - 'a' + 0x41)
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		c.VK = uint16(key[0])
	default:
		if vk, ok := namedKeys[key]; ok {
			c.VK = vk
			break
		}
		var n int
		if _, err := fmt.Sscanf(key, "f%d", &n); err == nil && n >= 1 && n <= 24 {
			c.VK = uint16(0x70 + n - 1)
			break
		}
		return c, fmt.Errorf("unknown key %q in %q", key, combo)
	}
	return c, nil
}
