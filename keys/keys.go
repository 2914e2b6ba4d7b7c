package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeySelectPrev KeyName = iota
	KeySelectNext
	KeyBackspace

	KeyModeToggle // ModeToggle stands in for the mode key in the simulator.
	KeySimulatorQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeySelectPrev,
	"down":      KeySelectNext,
	"backspace": KeyBackspace,
	"tab":       KeyModeToggle,
	"ctrl+c":    KeySimulatorQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeySelectPrev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous suggestion"),
	),
	KeySelectNext: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next suggestion"),
	),
	KeyBackspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "delete last character"),
	),

	// -- Simulator keybindings --

	KeyModeToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "hold/release the mode key"),
	),
	KeySimulatorQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "exit simulator"),
	),
}

// quasimodeKeys are the bindings consulted for physical keys while the
// quasimode is active.
var quasimodeKeys = []KeyName{KeySelectPrev, KeySelectNext, KeyBackspace}

// QuasimodeAction returns the navigation action bound to a physical key.
func QuasimodeAction(vk VirtualKey) (KeyName, bool) {
	for _, name := range quasimodeKeys {
		if key.Matches(vk, GlobalkeyBindings[name]) {
			return name, true
		}
	}
	return 0, false
}
