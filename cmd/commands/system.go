package commands

import (
	"fmt"

	"quasimode/cmd/interfaces"
)

// QuitCommand stops the launcher.
type QuitCommand struct{}

func (QuitCommand) Name() string                  { return "quit" }
func (QuitCommand) Category() interfaces.Category { return interfaces.CategoryBuiltin }

func (QuitCommand) Execute(ui interfaces.UI) error {
	ui.Quit()
	return nil
}

// Summarizer produces the help text shown by the help command.
type Summarizer interface {
	Summary() string
}

// HelpCommand shows how to use the quasimode.
type HelpCommand struct {
	Help Summarizer
}

func (HelpCommand) Name() string                  { return "help" }
func (HelpCommand) Category() interfaces.Category { return interfaces.CategoryBuiltin }

func (c HelpCommand) Execute(ui interfaces.UI) error {
	ui.ShowMessage(c.Help.Summary())
	return nil
}

// OpenDirectoryCommand opens a fixed directory in the file browser.
type OpenDirectoryCommand struct {
	Label string
	Path  string
}

func (c OpenDirectoryCommand) Name() string                { return "open " + c.Label }
func (OpenDirectoryCommand) Category() interfaces.Category { return interfaces.CategoryBuiltin }

func (c OpenDirectoryCommand) Execute(ui interfaces.UI) error {
	if err := ui.OpenInFileBrowser(c.Path); err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	return nil
}

// MessageCommand shows a fixed message.
type MessageCommand struct {
	CommandName string
	Text        string
}

func (c MessageCommand) Name() string { return c.CommandName }

func (c MessageCommand) Execute(ui interfaces.UI) error {
	ui.ShowMessage(c.Text)
	return nil
}

// ForegroundInfoCommand reports the executable and title of the foreground
// window, either as a message or on the clipboard.
type ForegroundInfoCommand struct {
	Copy bool
}

func (c ForegroundInfoCommand) Name() string {
	if c.Copy {
		return "copy foreground window info"
	}
	return "show foreground window info"
}

func (ForegroundInfoCommand) Category() interfaces.Category { return interfaces.CategoryBuiltin }

func (c ForegroundInfoCommand) Execute(ui interfaces.UI) error {
	exe, err := ui.ForegroundExecutable()
	if err != nil {
		return fmt.Errorf("failed to get foreground executable: %w", err)
	}
	title, err := ui.ForegroundWindowName()
	if err != nil {
		return fmt.Errorf("failed to get foreground window name: %w", err)
	}

	info := fmt.Sprintf("Executable: %s\nWindow: %s", exe, title)
	if !c.Copy {
		ui.ShowMessage(info)
		return nil
	}
	if err := ui.CopyToClipboard(info); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	ui.ShowMessage("Copied foreground window info to the clipboard.")
	return nil
}
