package hotkeys

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"quasimode/keys"
)

// Binding is one "name : combination" line.
type Binding struct {
	Name string
	// RawCombo is the combination exactly as written, trimmed.
	RawCombo    string
	Combination keys.Combination
	Line        int
}

// Section is a group of bindings that share a foreground executable filter.
type Section struct {
	App       string
	ExeFilter string
	Bindings  []Binding
}

// Matches reports whether the section applies while exe is in the foreground.
func (s Section) Matches(exe string) bool {
	return s.ExeFilter == "" || strings.Contains(exe, s.ExeFilter)
}

// Warning is a non-fatal problem found while parsing. The offending line is
// skipped.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// ParseResult is the whole file, rebuilt on every parse.
type ParseResult struct {
	Sections []Section
	Warnings []Warning
}

// Bindings returns the bindings of every section that applies to exe, in
// file order.
func (r ParseResult) Bindings(exe string) []Binding {
	var bindings []Binding
	for _, section := range r.Sections {
		if section.Matches(exe) {
			bindings = append(bindings, section.Bindings...)
		}
	}
	return bindings
}

// Parse reads a hotkey file. Lines are either blank, "#" comments,
// "@exefilter <substring>" and "@app <name>" directives, or
// "command name : key+combination" bindings, where the combination is the
// text after the last colon. Bindings before the first @app belong to an
// unnamed section. Malformed lines become warnings; only a read failure is
// an error.
func Parse(r io.Reader) (ParseResult, error) {
	var result ParseResult
	current := &Section{}
	flush := func() {
		if current.App != "" || current.ExeFilter != "" || len(current.Bindings) > 0 {
			result.Sections = append(result.Sections, *current)
		}
	}
	warn := func(line int, format string, args ...interface{}) {
		result.Warnings = append(result.Warnings, Warning{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "@") {
			directive, arg, _ := strings.Cut(line[1:], " ")
			arg = strings.TrimSpace(arg)
			switch strings.ToLower(directive) {
			case "app":
				if arg == "" {
					warn(lineNo, "@app needs a name")
					continue
				}
				flush()
				current = &Section{App: arg}
			case "exefilter":
				if arg == "" {
					warn(lineNo, "@exefilter needs a substring")
					continue
				}
				current.ExeFilter = arg
			default:
				warn(lineNo, "unknown directive %q", "@"+directive)
			}
			continue
		}

		sep := strings.LastIndex(line, ":")
		if sep < 0 {
			warn(lineNo, "expected \"name : key+combination\", got %q", line)
			continue
		}
		name := strings.TrimSpace(line[:sep])
		rawCombo := strings.TrimSpace(line[sep+1:])
		if name == "" {
			warn(lineNo, "missing command name")
			continue
		}
		if rawCombo == "" {
			warn(lineNo, "missing key combination for %q", name)
			continue
		}
		combo, err := keys.ParseCombination(rawCombo)
		if err != nil {
			warn(lineNo, "invalid key combination %q: %v", rawCombo, err)
			continue
		}
		current.Bindings = append(current.Bindings, Binding{
			Name:        name,
			RawCombo:    rawCombo,
			Combination: combo,
			Line:        lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("failed to read hotkeys: %w", err)
	}

	flush()
	return result, nil
}

// ParseString parses hotkeys held in memory.
func ParseString(text string) ParseResult {
	// reading from a string cannot fail
	result, _ := Parse(strings.NewReader(text))
	return result
}
