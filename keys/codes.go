package keys

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// VirtualKey identifies a physical key. Values follow the Windows
// virtual-key code space, which both the hook and the injector speak.
type VirtualKey uint16

const (
	VKBack     VirtualKey = 0x08
	VKTab      VirtualKey = 0x09
	VKReturn   VirtualKey = 0x0D
	VKShift    VirtualKey = 0x10
	VKControl  VirtualKey = 0x11
	VKMenu     VirtualKey = 0x12 // alt
	VKCapital  VirtualKey = 0x14 // caps lock
	VKEscape   VirtualKey = 0x1B
	VKSpace    VirtualKey = 0x20
	VKPrior    VirtualKey = 0x21 // page up
	VKNext     VirtualKey = 0x22 // page down
	VKEnd      VirtualKey = 0x23
	VKHome     VirtualKey = 0x24
	VKLeft     VirtualKey = 0x25
	VKUp       VirtualKey = 0x26
	VKRight    VirtualKey = 0x27
	VKDown     VirtualKey = 0x28
	VKInsert   VirtualKey = 0x2D
	VKDelete   VirtualKey = 0x2E
	VK0        VirtualKey = 0x30
	VK9        VirtualKey = 0x39
	VKA        VirtualKey = 0x41
	VKZ        VirtualKey = 0x5A
	VKLWin     VirtualKey = 0x5B
	VKF1       VirtualKey = 0x70
	VKF12      VirtualKey = 0x7B
	VKOEM1     VirtualKey = 0xBA // ;
	VKOEMPlus  VirtualKey = 0xBB // =
	VKOEMComma VirtualKey = 0xBC // ,
	VKOEMMinus VirtualKey = 0xBD // -
	VKOEMDot   VirtualKey = 0xBE // .
	VKOEM2     VirtualKey = 0xBF // /
	VKOEM3     VirtualKey = 0xC0 // `
	VKOEM4     VirtualKey = 0xDB // [
	VKOEM5     VirtualKey = 0xDC // \
	VKOEM6     VirtualKey = 0xDD // ]
	VKOEM7     VirtualKey = 0xDE // '
)

var (
	ErrUnknownKey       = errors.New("unknown key")
	ErrEmptyCombination = errors.New("empty key combination")
	ErrMultipleKeys     = errors.New("more than one non-modifier key")
)

// namedKeys maps the accepted key names to codes. Several names may share a
// code; canonicalNames picks the one used for display.
var namedKeys = map[string]VirtualKey{
	"ctrl":      VKControl,
	"control":   VKControl,
	"alt":       VKMenu,
	"shift":     VKShift,
	"win":       VKLWin,
	"enter":     VKReturn,
	"return":    VKReturn,
	"tab":       VKTab,
	"esc":       VKEscape,
	"escape":    VKEscape,
	"space":     VKSpace,
	"backspace": VKBack,
	"delete":    VKDelete,
	"del":       VKDelete,
	"insert":    VKInsert,
	"up":        VKUp,
	"down":      VKDown,
	"left":      VKLeft,
	"right":     VKRight,
	"home":      VKHome,
	"end":       VKEnd,
	"pageup":    VKPrior,
	"pgup":      VKPrior,
	"pagedown":  VKNext,
	"pgdown":    VKNext,
	"capslock":  VKCapital,
}

var canonicalNames = map[VirtualKey]string{
	VKControl: "ctrl",
	VKMenu:    "alt",
	VKShift:   "shift",
	VKLWin:    "win",
	VKReturn:  "enter",
	VKTab:     "tab",
	VKEscape:  "esc",
	VKSpace:   "space",
	VKBack:    "backspace",
	VKDelete:  "delete",
	VKInsert:  "insert",
	VKUp:      "up",
	VKDown:    "down",
	VKLeft:    "left",
	VKRight:   "right",
	VKHome:    "home",
	VKEnd:     "end",
	VKPrior:   "pgup",
	VKNext:    "pgdown",
	VKCapital: "capslock",
}

var punctuation = map[VirtualKey]rune{
	VKOEM1:     ';',
	VKOEMPlus:  '=',
	VKOEMComma: ',',
	VKOEMMinus: '-',
	VKOEMDot:   '.',
	VKOEM2:     '/',
	VKOEM3:     '`',
	VKOEM4:     '[',
	VKOEM5:     '\\',
	VKOEM6:     ']',
	VKOEM7:     '\'',
}

var punctuationKeys = func() map[rune]VirtualKey {
	m := make(map[rune]VirtualKey, len(punctuation))
	for vk, r := range punctuation {
		m[r] = vk
	}
	return m
}()

func init() {
	for i := 0; i < 12; i++ {
		vk := VKF1 + VirtualKey(i)
		name := fmt.Sprintf("f%d", i+1)
		namedKeys[name] = vk
		canonicalNames[vk] = name
	}
}

// String returns the lower-case name of the key, e.g. "ctrl", "a" or "up".
func (k VirtualKey) String() string {
	if name, ok := canonicalNames[k]; ok {
		return name
	}
	if r, ok := CharForKey(k); ok {
		return string(unicode.ToLower(r))
	}
	return fmt.Sprintf("vk(0x%02X)", uint16(k))
}

// IsModifier reports whether k is ctrl, alt, shift or win.
func (k VirtualKey) IsModifier() bool {
	switch k {
	case VKControl, VKMenu, VKShift, VKLWin:
		return true
	}
	return false
}

// CharForKey maps a physical key to the character it types without
// modifiers. Letters come back upper-case, as the key caps show them.
func CharForKey(k VirtualKey) (rune, bool) {
	switch {
	case k >= VK0 && k <= VK9, k >= VKA && k <= VKZ:
		return rune(k), true
	case k == VKSpace:
		return ' ', true
	}
	r, ok := punctuation[k]
	return r, ok
}

// KeyForChar is the inverse of CharForKey. Letters match in either case.
func KeyForChar(r rune) (VirtualKey, bool) {
	switch {
	case r >= '0' && r <= '9':
		return VirtualKey(r), true
	case r >= 'a' && r <= 'z':
		return VirtualKey(unicode.ToUpper(r)), true
	case r >= 'A' && r <= 'Z':
		return VirtualKey(r), true
	case r == ' ':
		return VKSpace, true
	}
	vk, ok := punctuationKeys[r]
	return vk, ok
}

// ParseKey resolves a single key name such as "ctrl", "F5" or "c".
func ParseKey(name string) (VirtualKey, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if vk, ok := namedKeys[trimmed]; ok {
		return vk, nil
	}
	runes := []rune(trimmed)
	if len(runes) == 1 && unicode.IsGraphic(runes[0]) {
		if vk, ok := KeyForChar(runes[0]); ok {
			return vk, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
