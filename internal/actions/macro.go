package actions

import (
	"fmt"
	"time"
)

// maxMacroDelay caps per-step delays so a bad config cannot wedge the
// executor for minutes.
const maxMacroDelay = 10 * time.Second

// runMacro executes a sequence of steps in order. Each step is a map with a
// "type" of "hotkey", "text" or "delay".
//
// Params: "steps" (required list).
func (e *Executor) runMacro(params map[string]any) error {
	raw, ok := params["steps"]
	if !ok {
		return fmt.Errorf("missing %q parameter", "steps")
	}
	steps, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("parameter %q must be a list", "steps")
	}

	for i, rawStep := range steps {
		step, ok := rawStep.(map[string]any)
		if !ok {
			return fmt.Errorf("step %d: not an object", i)
		}
		stepType, err := stringParam(step, "type")
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		switch stepType {
		case "hotkey":
			err = sendHotkey(step)
		case "text":
			err = typeText(step)
		case "delay":
			ms, ok := numberParam(step, "ms")
			if !ok {
				return fmt.Errorf("step %d: delay needs an %q number", i, "ms")
			}
			d := time.Duration(ms) * time.Millisecond
			if d > maxMacroDelay {
				d = maxMacroDelay
			}
			time.Sleep(d)
		default:
			err = fmt.Errorf("%w: macro step %q", ErrUnknownType, stepType)
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
