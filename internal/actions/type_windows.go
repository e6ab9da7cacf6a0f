//go:build windows

package actions

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputKeyboard = 1

	keyeventfKeyUp   = 0x0002
	keyeventfUnicode = 0x0004
)

// keyboardInput matches the 64-bit INPUT layout: Type(4) + pad(4) + union(32),
// with KEYBDINPUT occupying the first 20 union bytes.
type keyboardInput struct {
	inputType uint32
	_         [4]byte
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
	_         [8]byte
}

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// typeString injects text as KEYEVENTF_UNICODE events, so layout and dead
// keys never get in the way.
func typeString(text string) error {
	units := utf16.Encode([]rune(text))
	if len(units) == 0 {
		return nil
	}

	inputs := make([]keyboardInput, 0, len(units)*2)
	for _, unit := range units {
		inputs = append(inputs,
			keyboardInput{
				inputType: inputKeyboard,
				scan:      unit,
				flags:     keyeventfUnicode,
			},
			keyboardInput{
				inputType: inputKeyboard,
				scan:      unit,
				flags:     keyeventfUnicode | keyeventfKeyUp,
			},
		)
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		return fmt.Errorf("SendInput sent %d of %d events: %w", sent, len(inputs), err)
	}
	return nil
}
