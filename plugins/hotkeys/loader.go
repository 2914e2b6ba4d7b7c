package hotkeys

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"quasimode/cmd/commands"
	"quasimode/cmd/interfaces"
	"quasimode/log"
)

// Loader is a plugin that keeps the registered hotkey commands in step with
// a hotkey file. It reparses the file when its modification time advances,
// and re-filters the parsed sections when the foreground executable changes.
// It only ever removes commands it registered itself.
type Loader struct {
	path string

	parsed  bool
	modTime time.Time
	result  ParseResult

	applied bool
	lastExe string
	// loaded holds the exact values registered, so that a command another
	// source has since put under the same name is never removed
	loaded []*commands.PressKeysCommand

	log *log.Loggers
	// exeWarnings limits the foreground lookup warning, which would otherwise
	// repeat on every quasimode start
	exeWarnings *log.Every
}

var _ interfaces.Plugin = (*Loader)(nil)

func NewLoader(path string) *Loader {
	return &Loader{
		path:        path,
		log:         log.For("hotkeys"),
		exeWarnings: log.NewEvery(time.Minute),
	}
}

func (l *Loader) Init(host interfaces.PluginHost) error {
	return l.Refresh(host)
}

func (l *Loader) OnQuasimodeStart(host interfaces.PluginHost) error {
	return l.Refresh(host)
}

// Refresh reloads the file if it changed and re-registers the bindings that
// apply to the foreground executable. Problems are collected and reported in
// one message.
func (l *Loader) Refresh(host interfaces.PluginHost) error {
	exe, err := host.ForegroundExecutable()
	if err != nil {
		if l.exeWarnings.ShouldLog() {
			l.log.WarningLog.Printf("could not get foreground executable, ignoring @exefilter sections: %v", err)
		}
		exe = ""
	}

	reparsed, err := l.reparseIfNeeded()
	if err != nil {
		return err
	}
	if !reparsed && l.applied && exe == l.lastExe {
		return nil
	}

	var problems []string
	if reparsed {
		for _, w := range l.result.Warnings {
			problems = append(problems, w.String())
		}
	}
	problems = append(problems, l.apply(host, exe)...)
	l.applied = true
	l.lastExe = exe

	if len(problems) > 0 {
		for _, p := range problems {
			l.log.WarningLog.Printf("%s: %s", l.path, p)
		}
		host.ShowMessage(fmt.Sprintf("%d problem(s) with hotkeys in %s:\n%s",
			len(problems), l.path, strings.Join(problems, "\n")))
	}
	return nil
}

// reparseIfNeeded reports whether the parse result changed.
func (l *Loader) reparseIfNeeded() (bool, error) {
	info, err := os.Stat(l.path)
	if errors.Is(err, os.ErrNotExist) {
		if !l.parsed {
			return false, nil
		}
		l.log.InfoLog.Printf("%s was deleted, unloading hotkeys", l.path)
		l.parsed = false
		l.modTime = time.Time{}
		l.result = ParseResult{}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat hotkey file: %w", err)
	}

	if l.parsed && !info.ModTime().After(l.modTime) {
		return false, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return false, fmt.Errorf("failed to open hotkey file: %w", err)
	}
	defer f.Close()

	result, err := Parse(f)
	if err != nil {
		return false, err
	}

	l.parsed = true
	l.modTime = info.ModTime()
	l.result = result
	l.log.InfoLog.Printf("parsed %d section(s) from %s", len(result.Sections), l.path)
	return true, nil
}

// apply swaps the previously loaded commands for the bindings that apply to
// exe and returns the names it had to skip.
func (l *Loader) apply(host interfaces.PluginHost, exe string) []string {
	for _, owned := range l.loaded {
		name := owned.Name()
		current, ok := host.LookupCommand(name)
		if !ok {
			continue
		}
		if registered, same := current.(*commands.PressKeysCommand); same && registered == owned {
			host.RemoveCommand(name)
			continue
		}
		l.log.InfoLog.Printf("%q was replaced by another command, leaving it registered", name)
	}
	l.loaded = nil

	var problems []string
	seen := make(map[string]bool)
	for _, b := range l.result.Bindings(exe) {
		command := commands.NewHotkeyCommand(b.Name, b.RawCombo, b.Combination)
		name := command.Name()
		if seen[name] {
			problems = append(problems, fmt.Sprintf("line %d: %q is defined more than once", b.Line, name))
			continue
		}
		if host.HasCommand(name) {
			problems = append(problems, fmt.Sprintf("line %d: %q is already a command", b.Line, name))
			continue
		}
		host.AddCommand(&command)
		seen[name] = true
		l.loaded = append(l.loaded, &command)
	}
	return problems
}
