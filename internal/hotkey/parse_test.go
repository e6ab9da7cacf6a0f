package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	c, err := ParseCombo("ctrl+alt+n")
	require.NoError(t, err)
	assert.Equal(t, uint16(ModControl|ModAlt), c.Modifiers)
	assert.Equal(t, uint16('N'), c.VK)

	c, err = ParseCombo("win+shift+f5")
	require.NoError(t, err)
	assert.Equal(t, uint16(ModWin|ModShift), c.Modifiers)
	assert.Equal(t, uint16(0x74), c.VK)

	c, err = ParseCombo("ctrl+1")
	require.NoError(t, err)
	assert.Equal(t, uint16('1'), c.VK)

	c, err = ParseCombo("ctrl+space")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x20), c.VK)
}

func TestParseComboRequiresModifier(t *testing.T) {
	_, err := ParseCombo("n")
	assert.ErrorContains(t, err, "modifier")

	_, err = ParseCombo("")
	assert.Error(t, err)
}

func TestParseComboErrors(t *testing.T) {
	_, err := ParseCombo("hyper+n")
	assert.ErrorContains(t, err, "unknown modifier")

	_, err = ParseCombo("ctrl+bogus")
	assert.ErrorContains(t, err, "unknown key")

	_, err = ParseCombo("ctrl+f25")
	assert.ErrorContains(t, err, "unknown key")
}

func TestManagerRegister(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.Register("ctrl+alt+n", func() {}))
	assert.Len(t, m.bindings, 1)

	// Empty combo means the feature is unconfigured, not an error.
	require.NoError(t, m.Register("", func() {}))
	assert.Len(t, m.bindings, 1)

	assert.Error(t, m.Register("bogus", func() {}))
}
