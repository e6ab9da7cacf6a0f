// Package config provides configuration management for the button deck.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// ConfigVersion is written to new config files. Older files are loaded
// best-effort; unknown fields are ignored.
const ConfigVersion = 2

// Action describes what a button does: a type name registered with the
// action executor plus free-form parameters.
type Action struct {
	// Type is the registered action name, e.g. "launch_app", "hotkey",
	// "navigate".
	Type string `json:"type"`

	// Params carries the action's parameters, e.g. {"path": "notepad.exe"}.
	Params map[string]any `json:"params,omitempty"`
}

// Button is one cell of a folder's 3x3 grid.
type Button struct {
	// Row and Col locate the button on the grid (0..2 each), matching the
	// numpad digit positions 7,8,9 / 4,5,6 / 1,2,3.
	Row int `json:"row"`
	Col int `json:"col"`

	// Label is the text shown on the button.
	Label string `json:"label"`

	// Icon is an optional icon path.
	Icon string `json:"icon,omitempty"`

	Action Action `json:"action"`
}

// Folder is a node of the button tree. Buttons with a "navigate" action
// descend into child folders; the numpad back key returns to the parent.
type Folder struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Buttons  []Button  `json:"buttons"`
	Children []*Folder `json:"children,omitempty"`

	// MappedApps lists executable names whose foreground focus auto-switches
	// the deck to this folder.
	MappedApps []string `json:"mapped_apps,omitempty"`
}

// Find returns the folder with the given id in this subtree, or nil.
func (f *Folder) Find(id string) *Folder {
	if f == nil {
		return nil
	}
	if f.ID == id {
		return f
	}
	for _, child := range f.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// ButtonAt returns the button at (row, col), or nil if the cell is empty.
func (f *Folder) ButtonAt(row, col int) *Button {
	for i := range f.Buttons {
		if f.Buttons[i].Row == row && f.Buttons[i].Col == col {
			return &f.Buttons[i]
		}
	}
	return nil
}

// Settings contains general application settings.
type Settings struct {
	// GridRows and GridCols describe the deck grid. The numpad drives the
	// top-left 3x3 cells; extra columns are mouse-only.
	GridRows int `json:"grid_rows"`
	GridCols int `json:"grid_cols"`

	// CaptureMode selects "shortcut" (numpad capture active) or "widget"
	// (mouse-only, no keyboard hook).
	CaptureMode string `json:"capture_mode"`

	// ToggleHotkey shows/hides the deck window, e.g. "ctrl+alt+n".
	ToggleHotkey string `json:"toggle_hotkey,omitempty"`

	// StartOnBoot registers the application to start on login.
	StartOnBoot bool `json:"start_on_boot"`

	// StartMinimized starts hidden in the tray.
	StartMinimized bool `json:"start_minimized"`

	AlwaysOnTop   bool    `json:"always_on_top"`
	Theme         string  `json:"theme"`
	WindowOpacity float64 `json:"window_opacity"`
}

// Config is the persisted application configuration.
type Config struct {
	Version  int      `json:"version"`
	Settings Settings `json:"settings"`
	Root     *Folder  `json:"root"`
}

// Default returns a new Config with a starter folder.
func Default() *Config {
	return &Config{
		Version: ConfigVersion,
		Settings: Settings{
			GridRows:       3,
			GridCols:       3,
			CaptureMode:    "shortcut",
			ToggleHotkey:   "ctrl+alt+n",
			StartMinimized: true,
			AlwaysOnTop:    true,
			Theme:          "dark",
			WindowOpacity:  1.0,
		},
		Root: &Folder{
			ID:   "root",
			Name: "Home",
			Buttons: []Button{
				{Row: 0, Col: 0, Label: "Notepad", Action: Action{
					Type:   "launch_app",
					Params: map[string]any{"path": "notepad.exe"},
				}},
				{Row: 0, Col: 1, Label: "Calculator", Action: Action{
					Type:   "launch_app",
					Params: map[string]any{"path": "calc.exe"},
				}},
				{Row: 0, Col: 2, Label: "Downloads", Action: Action{
					Type:   "open_folder",
					Params: map[string]any{"path": "~/Downloads"},
				}},
			},
		},
	}
}

// Manager handles loading and saving configuration.
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a manager using the per-OS default config path.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerWithPath(configPath), nil
}

// NewManagerWithPath creates a manager for an explicit config file path.
func NewManagerWithPath(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     Default(),
	}
}

func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "numdeck")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "numdeck")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "numdeck")
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the config file. A missing file is not an error; defaults stay
// in effect and the next Save creates it.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Root == nil {
		cfg.Root = Default().Root
	}
	m.config = cfg
	return nil
}

// Reload re-reads the file and fires the changed callback. Used by the
// watcher when the file is edited externally.
func (m *Manager) Reload() error {
	if err := m.Load(); err != nil {
		return err
	}
	m.notifyChanged()
	return nil
}

// Save writes the current config to disk, creating the directory if needed.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Get returns the current configuration. Callers must not mutate it; use
// Update.
func (m *Manager) Get() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Update applies fn to the config under the lock and persists the result.
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	fn(m.config)
	err := m.saveLocked()
	m.mu.Unlock()

	if err == nil {
		m.notifyChanged()
	}
	return err
}

// OnChanged registers a callback fired after Update or an external reload.
func (m *Manager) OnChanged(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}

func (m *Manager) notifyChanged() {
	m.mu.Lock()
	fn := m.onChanged
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}
