// Package hotkey provides global system-wide hotkey registration, used for
// the deck's show/hide toggle.
package hotkey

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager registers global hotkeys with the OS and fires callbacks when
// they are pressed, regardless of which application has focus.
type Manager struct {
	mu       sync.Mutex
	bindings []binding
	log      *logrus.Entry
	started  bool
	stop     func()
}

type binding struct {
	combo    string
	key      Combo
	callback func()
}

// NewManager creates an empty hotkey manager. Register combos, then Start.
func NewManager() *Manager {
	return &Manager{
		log: logrus.WithField("component", "hotkey"),
	}
}

// Register adds a hotkey combo such as "ctrl+alt+n". Must be called before
// Start. An empty combo is ignored.
func (m *Manager) Register(combo string, callback func()) error {
	if combo == "" {
		return nil
	}
	key, err := ParseCombo(combo)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = append(m.bindings, binding{combo: combo, key: key, callback: callback})
	return nil
}

// Start registers the combos with the OS. Idempotent.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return nil
	}
	stop, err := m.startPlatform()
	if err != nil {
		return err
	}
	m.stop = stop
	m.started = true
	return nil
}

// Stop unregisters all hotkeys. Idempotent.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	m.stop()
	m.started = false
}
