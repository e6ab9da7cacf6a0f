// Package actions executes the things buttons do: launching programs,
// opening URLs and folders, sending hotkeys, typing text and running macros.
package actions

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"numdeck/internal/config"
)

// ErrUnknownType is returned when a button references an unregistered
// action type.
var ErrUnknownType = errors.New("unknown action type")

// Handler executes one action type given its parameters.
type Handler func(params map[string]any) error

// Executor dispatches config actions to registered handlers.
type Executor struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *logrus.Entry
}

// NewExecutor returns an executor with the built-in action types registered:
// launch_app, run_command, open_url, open_folder, hotkey, type_text, macro.
func NewExecutor() *Executor {
	e := &Executor{
		handlers: make(map[string]Handler),
		log:      logrus.WithField("component", "actions"),
	}
	e.Register("launch_app", launchApp)
	e.Register("run_command", runCommand)
	e.Register("open_url", openTarget)
	e.Register("open_folder", openFolder)
	e.Register("hotkey", sendHotkey)
	e.Register("type_text", typeText)
	e.Register("macro", e.runMacro)
	return e
}

// Register adds or replaces the handler for an action type.
func (e *Executor) Register(actionType string, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[actionType] = h
}

// Execute runs an action. "navigate" and empty actions are handled by the
// deck controller, never dispatched here.
func (e *Executor) Execute(a config.Action) error {
	e.mu.RLock()
	h, ok := e.handlers[a.Type]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, a.Type)
	}

	e.log.WithField("type", a.Type).Debug("executing action")
	if err := h(a.Params); err != nil {
		return fmt.Errorf("action %s: %w", a.Type, err)
	}
	return nil
}

func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing %q parameter", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string", key)
	}
	return s, nil
}

func stringSliceParam(params map[string]any, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func numberParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
