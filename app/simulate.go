package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"quasimode/config"
	"quasimode/hook"
	"quasimode/keys"
	"quasimode/system"
	"quasimode/ui"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxShownStrokes = 8

// SimulateOptions configures the simulator program.
type SimulateOptions struct {
	Config    *config.Config
	ConfigDir string
	About     string
	// Output receives the program's rendering.
	Output io.Writer
	Color  bool
}

// Simulate runs the launcher against a simulated keyboard hook inside a
// terminal program: terminal keys become physical key transitions, and the
// tab key stands in for the mode key. Synthetic input is listed instead of
// being sent.
func Simulate(ctx context.Context, opts SimulateOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	modeKey, err := cfg.ModeVirtualKey()
	if err != nil {
		return fmt.Errorf("invalid mode key: %w", err)
	}

	platform := hook.NewSimulator()
	recorder := keys.NewRecorder()
	model := newSimulator(platform, modeKey, ui.NewTheme(opts.Output, opts.Color))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(opts.Output))
	recorder.OnStroke = func(s keys.Stroke) { p.Send(strokeMsg(s)) }

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runDone := make(chan error, 1)
	go func() {
		err := Run(ctx, RunOptions{
			Config:       cfg,
			ConfigDir:    opts.ConfigDir,
			About:        opts.About,
			Platform:     platform,
			Injector:     recorder,
			Introspector: &system.Static{Executable: "simulator.exe", WindowName: "Quasimode simulator"},
			Renderer:     teaRenderer{send: p.Send},
			OpenInFileBrowser: func(path string) error {
				p.Send(messageMsg("Would open " + path))
				return nil
			},
			Ready: func() { p.Send(readyMsg{}) },
		})
		p.Send(runDoneMsg{err: err})
		runDone <- err
	}()

	_, err = p.Run()
	cancel()
	runErr := <-runDone
	if err != nil {
		return err
	}
	return runErr
}

type (
	frameMsg       ui.Frame
	hideFrameMsg   struct{}
	messageMsg     string
	hideMessageMsg struct{}
	strokeMsg      keys.Stroke
	readyMsg       struct{}
	runDoneMsg     struct{ err error }
)

// teaRenderer forwards rendering calls to the program as messages.
type teaRenderer struct {
	send func(tea.Msg)
}

func (r teaRenderer) DrawQuasimode(frame ui.Frame) { r.send(frameMsg(frame)) }
func (r teaRenderer) HideQuasimode()               { r.send(hideFrameMsg{}) }
func (r teaRenderer) ShowMessage(text string)      { r.send(messageMsg(text)) }
func (r teaRenderer) HideMessage()                 { r.send(hideMessageMsg{}) }

// feeder is the part of the simulated platform the program drives.
type feeder interface {
	Feed(t hook.Transition) (bool, error)
}

type simulatorKeyMap struct{}

func (simulatorKeyMap) ShortHelp() []key.Binding {
	var bindings []key.Binding
	for _, category := range []keys.HelpCategory{keys.HelpCategorySimulator, keys.HelpCategoryQuasimode} {
		for _, name := range keys.GetKeysInCategory(category) {
			bindings = append(bindings, keys.GlobalkeyBindings[name])
		}
	}
	return bindings
}

func (k simulatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type simulator struct {
	platform feeder
	modeKey  keys.VirtualKey
	theme    *ui.Theme
	help     help.Model

	ready    bool
	modeHeld bool
	frame    *ui.Frame
	message  string
	strokes  []string
	status   string

	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
}

func newSimulator(platform feeder, modeKey keys.VirtualKey, theme *ui.Theme) *simulator {
	return &simulator{
		platform:    platform,
		modeKey:     modeKey,
		theme:       theme,
		help:        help.New(),
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7F9845")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#AFBC92")),
	}
}

func (m *simulator) Init() tea.Cmd {
	return nil
}

func (m *simulator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case readyMsg:
		m.ready = true
	case frameMsg:
		frame := ui.Frame(msg)
		m.frame = &frame
	case hideFrameMsg:
		m.frame = nil
	case messageMsg:
		m.message = string(msg)
	case hideMessageMsg:
		m.message = ""
	case strokeMsg:
		m.strokes = append(m.strokes, keys.Stroke(msg).String())
		if len(m.strokes) > maxShownStrokes {
			m.strokes = m.strokes[len(m.strokes)-maxShownStrokes:]
		}
	case runDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m *simulator) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, bound := keys.GlobalKeyStringsMap[msg.String()]
	if bound && name == keys.KeySimulatorQuit {
		return m, tea.Quit
	}
	if !m.ready {
		m.status = "the keyboard hook is not installed yet"
		return m, nil
	}

	if bound && name == keys.KeyModeToggle {
		m.feed(hook.Transition{Key: m.modeKey, Down: !m.modeHeld})
		m.modeHeld = !m.modeHeld
		return m, nil
	}

	vk, ok := virtualKeyFor(msg)
	if !ok {
		m.status = fmt.Sprintf("no physical key for %q", msg.String())
		return m, nil
	}
	m.feed(hook.Transition{Key: vk, Down: true})
	m.feed(hook.Transition{Key: vk, Down: false})
	return m, nil
}

func (m *simulator) feed(t hook.Transition) {
	swallowed, err := m.platform.Feed(t)
	switch {
	case err != nil:
		m.status = err.Error()
	case swallowed:
		m.status = fmt.Sprintf("%s swallowed", t.Key)
	default:
		m.status = fmt.Sprintf("%s passed through", t.Key)
	}
}

// virtualKeyFor maps a terminal key to the physical key that types it.
func virtualKeyFor(msg tea.KeyMsg) (keys.VirtualKey, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return keys.VKSpace, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return 0, false
		}
		return keys.KeyForChar(msg.Runes[0])
	}
	vk, err := keys.ParseKey(msg.String())
	return vk, err == nil
}

func (m *simulator) View() string {
	var sections []string

	mode := "released"
	if m.modeHeld {
		mode = "held"
	}
	header := m.titleStyle.Render("Quasimode simulator") + "  " +
		m.statusStyle.Render(fmt.Sprintf("mode key (%s): %s", m.modeKey, mode))
	sections = append(sections, header+"\n"+m.statusStyle.Render(strings.Repeat("─", ui.Width(header))))

	if m.frame != nil {
		sections = append(sections, m.theme.RenderFrame(*m.frame))
	}
	if m.message != "" {
		sections = append(sections, m.theme.RenderMessage(m.message))
	}
	if len(m.strokes) > 0 {
		sections = append(sections, "Synthetic input:\n  "+strings.Join(m.strokes, "\n  "))
	}
	if m.status != "" {
		sections = append(sections, m.statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(simulatorKeyMap{}))

	return strings.Join(sections, "\n\n")
}
