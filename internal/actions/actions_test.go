package actions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numdeck/internal/config"
)

func TestExecuteUnknownType(t *testing.T) {
	e := NewExecutor()

	err := e.Execute(config.Action{Type: "does_not_exist"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestExecuteDispatchesAndWrapsErrors(t *testing.T) {
	e := NewExecutor()

	var got map[string]any
	e.Register("probe", func(params map[string]any) error {
		got = params
		return nil
	})
	require.NoError(t, e.Execute(config.Action{
		Type:   "probe",
		Params: map[string]any{"k": "v"},
	}))
	assert.Equal(t, "v", got["k"])

	boom := errors.New("boom")
	e.Register("failing", func(params map[string]any) error { return boom })
	err := e.Execute(config.Action{Type: "failing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "action failing")
}

func TestRegisterReplacesHandler(t *testing.T) {
	e := NewExecutor()

	calls := 0
	e.Register("launch_app", func(params map[string]any) error {
		calls++
		return nil
	})
	require.NoError(t, e.Execute(config.Action{Type: "launch_app"}))
	assert.Equal(t, 1, calls)
}

func TestStringParam(t *testing.T) {
	params := map[string]any{"path": "notepad.exe", "count": 3}

	v, err := stringParam(params, "path")
	require.NoError(t, err)
	assert.Equal(t, "notepad.exe", v)

	_, err = stringParam(params, "missing")
	assert.ErrorContains(t, err, "missing")

	_, err = stringParam(params, "count")
	assert.ErrorContains(t, err, "must be a string")
}

func TestStringSliceParam(t *testing.T) {
	// JSON decoding yields []any.
	params := map[string]any{"args": []any{"-n", "10", 42}}
	assert.Equal(t, []string{"-n", "10"}, stringSliceParam(params, "args"))

	assert.Nil(t, stringSliceParam(params, "missing"))
	assert.Equal(t, []string{"a"}, stringSliceParam(map[string]any{"args": []string{"a"}}, "args"))
}

func TestNumberParam(t *testing.T) {
	params := map[string]any{"ms": 250.0, "n": 7, "s": "x"}

	v, ok := numberParam(params, "ms")
	require.True(t, ok)
	assert.Equal(t, 250.0, v)

	v, ok = numberParam(params, "n")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = numberParam(params, "s")
	assert.False(t, ok)
	_, ok = numberParam(params, "missing")
	assert.False(t, ok)
}

func TestMacroRejectsBadSteps(t *testing.T) {
	e := NewExecutor()

	err := e.Execute(config.Action{Type: "macro", Params: map[string]any{}})
	assert.ErrorContains(t, err, "steps")

	err = e.Execute(config.Action{Type: "macro", Params: map[string]any{
		"steps": []any{map[string]any{"type": "teleport"}},
	}})
	assert.ErrorIs(t, err, ErrUnknownType)

	err = e.Execute(config.Action{Type: "macro", Params: map[string]any{
		"steps": []any{map[string]any{"type": "delay"}},
	}})
	assert.ErrorContains(t, err, "ms")
}

func TestMacroDelayStep(t *testing.T) {
	e := NewExecutor()

	require.NoError(t, e.Execute(config.Action{Type: "macro", Params: map[string]any{
		"steps": []any{map[string]any{"type": "delay", "ms": 1.0}},
	}}))
}

func TestExpandHome(t *testing.T) {
	assert.NotContains(t, expandHome("~/Downloads"), "~")
	assert.Equal(t, "/tmp/x", expandHome("/tmp/x"))
	assert.Equal(t, "no~expansion", expandHome("no~expansion"))
}
