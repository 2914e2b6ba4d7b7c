package interfaces

import (
	"quasimode/keys"
)

// Command is a named unit of work that can be run from the quasimode.
type Command interface {
	// Name is the unique name the command is registered and matched under.
	Name() string
	Execute(ui UI) error
}

// UI is what a running command may do to the launcher and the desktop.
type UI interface {
	// ShowMessage shows a transient message. It is dismissed the next time
	// the quasimode starts or ends.
	ShowMessage(text string)
	// Quit asks the consumer loop to stop after the current events.
	Quit()
	PressKey(key keys.VirtualKey, direction keys.Direction) error
	// TypeChar inserts text into the foreground application.
	TypeChar(text string) error
	ForegroundExecutable() (string, error)
	ForegroundWindowName() (string, error)
	// OpenInFileBrowser opens path in the desktop file browser.
	OpenInFileBrowser(path string) error
	CopyToClipboard(text string) error
}

// PluginHost is the UI as seen by plugins, which may also change the set of
// registered commands.
type PluginHost interface {
	UI
	// AddCommand registers cmd, replacing any command with the same name.
	AddCommand(cmd Command)
	RemoveCommand(name string) bool
	HasCommand(name string) bool
	// LookupCommand returns the command currently registered under name.
	LookupCommand(name string) (Command, bool)
}

// Plugin contributes commands. Plugins are called in registration order.
type Plugin interface {
	// Init is called once at startup.
	Init(host PluginHost) error
	// OnQuasimodeStart is called every time the quasimode starts, before the
	// input buffer is cleared.
	OnQuasimodeStart(host PluginHost) error
}

// Category groups related commands for help display
type Category string

// Standard command categories
const (
	CategoryBuiltin    Category = "Built-in"
	CategoryHotkeys    Category = "Hotkeys"
	CategoryCharacters Category = "Characters"
	CategoryOther      Category = "Other"
	CategorySpecial    Category = "Special" // Hidden from help
)

// Categorized is implemented by commands that belong to a help category.
type Categorized interface {
	Category() Category
}
