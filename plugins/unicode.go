package plugins

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"quasimode/cmd/commands"
	"quasimode/cmd/interfaces"
	"quasimode/log"
)

//go:embed unicode.txt
var unicodeTable string

// UnicodeCharacter is one entry of the character table.
type UnicodeCharacter struct {
	Char rune
	Name string
}

// ParseUnicodeTable reads lines of "U+XXXX<tab>name". Blank lines and lines
// starting with '#' are skipped; malformed lines are reported and skipped.
func ParseUnicodeTable(table string) ([]UnicodeCharacter, []error) {
	var (
		chars []UnicodeCharacter
		errs  []error
	)

	scanner := bufio.NewScanner(strings.NewReader(table))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, name, ok := strings.Cut(line, "\t")
		name = strings.ToLower(strings.TrimSpace(name))
		if !ok || name == "" || !strings.HasPrefix(code, "U+") {
			errs = append(errs, fmt.Errorf("line %d: expected \"U+XXXX<tab>name\"", lineNum))
			continue
		}
		value, err := strconv.ParseUint(code[2:], 16, 32)
		if err != nil || value > 0x10FFFF {
			errs = append(errs, fmt.Errorf("line %d: bad code point %q", lineNum, code))
			continue
		}
		chars = append(chars, UnicodeCharacter{Char: rune(value), Name: name})
	}
	return chars, errs
}

// Unicode registers an "insert <name>" command for every character in its
// table. Running the command types the character.
type Unicode struct {
	// Table overrides the embedded character table.
	Table string
}

var _ interfaces.Plugin = (*Unicode)(nil)

func (u *Unicode) Init(host interfaces.PluginHost) error {
	table := u.Table
	if table == "" {
		table = unicodeTable
	}

	chars, errs := ParseUnicodeTable(table)
	for _, err := range errs {
		log.WarningLog.Printf("unicode table: %v", err)
	}
	for _, c := range chars {
		host.AddCommand(commands.TypeTextCommand{
			CommandName: "insert " + c.Name,
			Text:        string(c.Char),
		})
	}
	return nil
}

func (u *Unicode) OnQuasimodeStart(interfaces.PluginHost) error {
	return nil
}
