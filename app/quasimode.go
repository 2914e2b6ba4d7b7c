package app

import (
	"fmt"
	"unicode"

	"quasimode/autocomplete"
	"quasimode/cmd"
	"quasimode/cmd/interfaces"
	"quasimode/config"
	"quasimode/eventloop"
	"quasimode/hook"
	"quasimode/keys"
	"quasimode/log"
	"quasimode/menu"
	"quasimode/system"
	"quasimode/ui"
)

// Renderer shows the quasimode and transient messages. All calls come from
// the consumer goroutine.
type Renderer interface {
	DrawQuasimode(frame ui.Frame)
	HideQuasimode()
	ShowMessage(text string)
	HideMessage()
}

// Options configures a UserInterface.
type Options struct {
	Registry     *cmd.Registry
	Renderer     Renderer
	Injector     keys.Injector
	Introspector system.Introspector
	// MaxSuggestions caps the suggestion list. Non-positive values mean
	// config.DefaultMaxSuggestions.
	MaxSuggestions int

	// Desktop operations; nil means the system implementation.
	OpenInFileBrowser func(path string) error
	CopyToClipboard   func(text string) error
}

// UserInterface is the consumer side of the launcher. It owns the input
// buffer, the suggestion menu and the plugins, and turns quasimode events
// into command executions. It is not safe for concurrent use: everything
// runs on the consumer goroutine.
type UserInterface struct {
	input []rune
	menu  *menu.Menu[interfaces.Suggestion]
	quit  bool

	// active is true between ModeStart and ModeEnd
	active bool

	registry       *cmd.Registry
	plugins        []interfaces.Plugin
	renderer       Renderer
	injector       keys.Injector
	introspector   system.Introspector
	maxSuggestions int

	openInFileBrowser func(path string) error
	copyToClipboard   func(text string) error

	log *log.Loggers
}

var _ interfaces.PluginHost = (*UserInterface)(nil)

func NewUserInterface(opts Options) *UserInterface {
	u := &UserInterface{
		menu:              menu.New[interfaces.Suggestion](nil),
		registry:          opts.Registry,
		renderer:          opts.Renderer,
		injector:          opts.Injector,
		introspector:      opts.Introspector,
		maxSuggestions:    opts.MaxSuggestions,
		openInFileBrowser: opts.OpenInFileBrowser,
		copyToClipboard:   opts.CopyToClipboard,
		log:               log.For("ui"),
	}
	if u.registry == nil {
		u.registry = cmd.NewRegistry()
	}
	if u.maxSuggestions <= 0 {
		u.maxSuggestions = config.DefaultMaxSuggestions
	}
	if u.openInFileBrowser == nil {
		u.openInFileBrowser = system.OpenInFileBrowser
	}
	if u.copyToClipboard == nil {
		u.copyToClipboard = system.CopyToClipboard
	}
	return u
}

// AddPlugin initializes p and keeps it for the quasimode-start callbacks.
// A plugin whose Init fails is still kept.
func (u *UserInterface) AddPlugin(p interfaces.Plugin) {
	if err := p.Init(u); err != nil {
		u.reportError(fmt.Errorf("plugin init: %w", err))
	}
	u.plugins = append(u.plugins, p)
}

// Drain returns the drain function for the event loop: it handles every
// queued event and asks the loop to stop once a command has called Quit.
func (u *UserInterface) Drain(queue *hook.Queue) eventloop.DrainFunc {
	return func() (bool, error) {
		for {
			e, ok, err := queue.TryReceive()
			if err != nil {
				return true, err
			}
			if !ok {
				return u.ShouldQuit(), nil
			}
			u.HandleEvent(e)
		}
	}
}

// HandleEvent applies one quasimode event.
func (u *UserInterface) HandleEvent(e hook.Event) {
	switch e.Kind {
	case hook.ModeStart:
		u.onModeStart()
	case hook.ModeEnd:
		u.onModeEnd()
	case hook.Keypress:
		u.onKeypress(e.Key)
	default:
		u.log.WarningLog.Printf("ignoring unknown event %s", e)
	}
}

func (u *UserInterface) onModeStart() {
	u.renderer.HideMessage()
	for _, p := range u.plugins {
		if err := p.OnQuasimodeStart(u); err != nil {
			u.reportError(fmt.Errorf("plugin: %w", err))
		}
	}
	u.input = u.input[:0]
	u.menu = menu.New[interfaces.Suggestion](nil)
	u.active = true
	u.redraw()
}

func (u *UserInterface) onKeypress(vk keys.VirtualKey) {
	if action, ok := keys.QuasimodeAction(vk); ok {
		switch action {
		case keys.KeySelectPrev:
			u.menu.SelectPrev()
		case keys.KeySelectNext:
			u.menu.SelectNext()
		case keys.KeyBackspace:
			if len(u.input) > 0 {
				u.input = u.input[:len(u.input)-1]
				u.updateSuggestions()
			}
		}
		u.redraw()
		return
	}

	ch, ok := keys.CharForKey(vk)
	if !ok {
		return
	}
	u.input = append(u.input, unicode.ToLower(ch))
	u.updateSuggestions()
	u.redraw()
}

func (u *UserInterface) onModeEnd() {
	u.active = false
	u.renderer.HideMessage()
	u.renderer.HideQuasimode()

	input := string(u.input)
	selected, ok := u.menu.TakeSelected()
	u.input = u.input[:0]

	switch {
	case ok:
		u.execute(selected.Value)
	case input != "":
		u.ShowMessage(fmt.Sprintf("Alas, I am unfamiliar with the “%s” command.", input))
	}
}

func (u *UserInterface) execute(command interfaces.Command) {
	u.log.InfoLog.Printf("executing %q", command.Name())
	if err := command.Execute(u); err != nil {
		u.reportError(fmt.Errorf("%s: %w", command.Name(), err))
	}
}

func (u *UserInterface) reportError(err error) {
	u.log.ErrorLog.Printf("%v", err)
	u.ShowMessage(err.Error())
}

func (u *UserInterface) updateSuggestions() {
	u.menu = menu.New(u.registry.Resolve(string(u.input), u.maxSuggestions))
}

func (u *UserInterface) redraw() {
	if u.active {
		u.renderer.DrawQuasimode(u.Frame())
	}
}

// Frame describes what the quasimode currently shows.
func (u *UserInterface) Frame() ui.Frame {
	input := string(u.input)
	frame := ui.Frame{Input: input}

	u.menu.Each(func(s interfaces.Suggestion, selected bool) {
		frame.Rows = append(frame.Rows, ui.Row{Text: s.Name, Matches: s.Matches, Selected: selected})
	})

	current, ok := u.menu.Current()
	switch {
	case ok:
		frame.Help = fmt.Sprintf("Run the command “%s”.", current.Name)
	case input != "":
		frame.Help = "No command matches your input."
		frame.Rows = []ui.Row{{
			Text:     input,
			Matches:  []autocomplete.Range{{Start: 0, End: len(input)}},
			Selected: true,
		}}
	default:
		frame.Help = "Welcome! Enter a command, or type “help” for assistance."
	}
	return frame
}

// Input returns the typed text.
func (u *UserInterface) Input() string { return string(u.input) }

// ShouldQuit reports whether a command asked the launcher to stop.
func (u *UserInterface) ShouldQuit() bool { return u.quit }

// -- interfaces.PluginHost --

func (u *UserInterface) ShowMessage(text string) { u.renderer.ShowMessage(text) }
func (u *UserInterface) Quit()                   { u.quit = true }

func (u *UserInterface) PressKey(key keys.VirtualKey, direction keys.Direction) error {
	return u.injector.PressKey(key, direction)
}

func (u *UserInterface) TypeChar(text string) error {
	return u.injector.TypeChar(text)
}

func (u *UserInterface) ForegroundExecutable() (string, error) {
	return u.introspector.ForegroundExecutable()
}

func (u *UserInterface) ForegroundWindowName() (string, error) {
	return u.introspector.ForegroundWindowName()
}

func (u *UserInterface) OpenInFileBrowser(path string) error { return u.openInFileBrowser(path) }
func (u *UserInterface) CopyToClipboard(text string) error   { return u.copyToClipboard(text) }

func (u *UserInterface) AddCommand(command interfaces.Command) { u.registry.Register(command) }
func (u *UserInterface) RemoveCommand(name string) bool        { return u.registry.Unregister(name) }
func (u *UserInterface) HasCommand(name string) bool           { return u.registry.Contains(name) }
func (u *UserInterface) LookupCommand(name string) (interfaces.Command, bool) {
	return u.registry.Get(name)
}
