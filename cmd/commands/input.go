package commands

import (
	"fmt"

	"quasimode/cmd/interfaces"
	"quasimode/keys"
)

// PressKeysCommand presses a key combination in the foreground application.
type PressKeysCommand struct {
	CommandName string
	Combination keys.Combination
}

// NewHotkeyCommand names the command after its display name and the
// combination exactly as written, e.g. "Copy (ctrl+c)".
func NewHotkeyCommand(displayName, rawCombo string, combo keys.Combination) PressKeysCommand {
	return PressKeysCommand{
		CommandName: fmt.Sprintf("%s (%s)", displayName, rawCombo),
		Combination: combo,
	}
}

func (c PressKeysCommand) Name() string                { return c.CommandName }
func (PressKeysCommand) Category() interfaces.Category { return interfaces.CategoryHotkeys }

func (c PressKeysCommand) Execute(ui interfaces.UI) error {
	return c.Combination.Press(ui)
}

// TypeTextCommand inserts fixed text into the foreground application.
type TypeTextCommand struct {
	CommandName string
	Text        string
}

func (c TypeTextCommand) Name() string                { return c.CommandName }
func (TypeTextCommand) Category() interfaces.Category { return interfaces.CategoryCharacters }

func (c TypeTextCommand) Execute(ui interfaces.UI) error {
	return ui.TypeChar(c.Text)
}
