package actions

import (
	"github.com/micmonay/keybd_event"
)

// sendHotkey synthesizes a key chord into the foreground application.
//
// Params: "keys" (required), e.g. "ctrl+shift+s".
func sendHotkey(params map[string]any) error {
	combo, err := stringParam(params, "keys")
	if err != nil {
		return err
	}
	chord, err := ParseChord(combo)
	if err != nil {
		return err
	}

	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.SetKeys(chord.Key)
	kb.HasCTRL(chord.Ctrl)
	kb.HasALT(chord.Alt)
	kb.HasSHIFT(chord.Shift)
	kb.HasSuper(chord.Super)
	return kb.Launching()
}
