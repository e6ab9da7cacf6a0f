package actions

import (
	"testing"

	"github.com/micmonay/keybd_event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChord(t *testing.T) {
	c, err := ParseChord("ctrl+shift+s")
	require.NoError(t, err)
	assert.True(t, c.Ctrl)
	assert.True(t, c.Shift)
	assert.False(t, c.Alt)
	assert.Equal(t, keybd_event.VK_S, c.Key)

	c, err = ParseChord("alt+f4")
	require.NoError(t, err)
	assert.True(t, c.Alt)
	assert.Equal(t, keybd_event.VK_F4, c.Key)

	c, err = ParseChord("win+e")
	require.NoError(t, err)
	assert.True(t, c.Super)
	assert.Equal(t, keybd_event.VK_E, c.Key)

	// Bare key, no modifiers.
	c, err = ParseChord("enter")
	require.NoError(t, err)
	assert.Equal(t, keybd_event.VK_ENTER, c.Key)
	assert.False(t, c.Ctrl || c.Alt || c.Shift || c.Super)
}

func TestParseChordNormalizesCaseAndSpace(t *testing.T) {
	c, err := ParseChord(" Ctrl + Alt + N ")
	require.NoError(t, err)
	assert.True(t, c.Ctrl)
	assert.True(t, c.Alt)
	assert.Equal(t, keybd_event.VK_N, c.Key)
}

func TestParseChordErrors(t *testing.T) {
	_, err := ParseChord("")
	assert.Error(t, err)

	_, err = ParseChord("ctrl+hyper+x")
	assert.ErrorContains(t, err, "unknown modifier")

	_, err = ParseChord("ctrl+notakey")
	assert.ErrorContains(t, err, "unknown key")
}
