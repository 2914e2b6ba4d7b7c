//go:build windows

package keys

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputKeyboard      = 1
	keyEventFKeyUp     = 0x0002
	keyEventFUnicode   = 0x0004
	keyStateToggledBit = 0x0001
	keyStateDownBit    = 0x8000
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procSendInput   = user32.NewProc("SendInput")
	procGetKeyState = user32.NewProc("GetKeyState")
)

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// input mirrors INPUT; the trailing padding covers the larger MOUSEINPUT
// member of the union.
type input struct {
	inputType uint32
	ki        keybdInput
	_         [8]byte
}

// SendInputInjector injects keystrokes with SendInput.
type SendInputInjector struct{}

// NewSystemInjector returns the platform injector.
func NewSystemInjector() (Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("failed to load SendInput: %w", err)
	}
	return &SendInputInjector{}, nil
}

func (s *SendInputInjector) PressKey(key VirtualKey, direction Direction) error {
	in := input{inputType: inputKeyboard, ki: keybdInput{vk: uint16(key)}}
	if direction == Up {
		in.ki.flags = keyEventFKeyUp
	}
	return sendInputs([]input{in})
}

func (s *SendInputInjector) TypeChar(text string) error {
	units := utf16.Encode([]rune(text))
	inputs := make([]input, 0, len(units)*2)
	for _, unit := range units {
		down := input{inputType: inputKeyboard, ki: keybdInput{scan: unit, flags: keyEventFUnicode}}
		up := down
		up.ki.flags |= keyEventFKeyUp
		inputs = append(inputs, down, up)
	}
	return sendInputs(inputs)
}

// DisableCapsLock turns caps lock off if it is toggled on, leaving the
// physical key state as it found it.
func (s *SendInputInjector) DisableCapsLock() error {
	r, _, _ := procGetKeyState.Call(uintptr(VKCapital))
	state := uint16(r)
	isDown := state&keyStateDownBit != 0
	isToggled := state&keyStateToggledBit != 0
	if !isToggled {
		return nil
	}

	if isDown {
		if err := s.PressKey(VKCapital, Up); err != nil {
			return err
		}
	}
	if err := s.PressKey(VKCapital, Down); err != nil {
		return err
	}
	if !isDown {
		return s.PressKey(VKCapital, Up)
	}
	return nil
}

func sendInputs(inputs []input) error {
	if len(inputs) == 0 {
		return nil
	}
	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		return fmt.Errorf("SendInput inserted %d of %d events: %w", n, len(inputs), err)
	}
	return nil
}
