package plugins

import (
	"quasimode/cmd/commands"
	"quasimode/cmd/interfaces"
	"quasimode/keys"
)

// Builtin provides the commands every installation has.
type Builtin struct {
	// Help produces the text of the "help" command.
	Help commands.Summarizer
	// ConfigDir is opened by "open quasimode directory".
	ConfigDir string
	// About is shown by "about quasimode". The command is left out when it
	// is empty.
	About string
}

var _ interfaces.Plugin = (*Builtin)(nil)

// copyCombination is pressed by "copy to clipboard".
var copyCombination = keys.Combination{keys.VKControl, keys.VirtualKey('C')}

func (b *Builtin) Commands() []interfaces.Command {
	all := []interfaces.Command{
		commands.HelpCommand{Help: b.Help},
		commands.QuitCommand{},
		commands.OpenDirectoryCommand{Label: "quasimode directory", Path: b.ConfigDir},
		commands.ForegroundInfoCommand{},
		commands.ForegroundInfoCommand{Copy: true},
		commands.PressKeysCommand{CommandName: "copy to clipboard", Combination: copyCombination},
	}
	if b.About != "" {
		all = append(all, commands.MessageCommand{CommandName: "about quasimode", Text: b.About})
	}
	return all
}

func (b *Builtin) Init(host interfaces.PluginHost) error {
	for _, command := range b.Commands() {
		host.AddCommand(command)
	}
	return nil
}

func (b *Builtin) OnQuasimodeStart(interfaces.PluginHost) error {
	return nil
}
