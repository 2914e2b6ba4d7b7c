package help

import (
	"fmt"
	"sort"
	"strings"

	"quasimode/cmd"
	"quasimode/cmd/interfaces"
	"quasimode/keys"

	"github.com/charmbracelet/lipgloss"
)

// Source is the part of the registry the generator reads.
type Source interface {
	Names() []string
	Get(name string) (interfaces.Command, bool)
}

// Generator creates help content from the command registry
type Generator struct {
	registry Source
	modeKey  string

	// Styles for formatting help content
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	keyStyle    lipgloss.Style
	descStyle   lipgloss.Style
	sepStyle    lipgloss.Style
}

// NewGenerator creates a new help generator. modeKey is the display name of
// the key that activates the quasimode.
func NewGenerator(registry Source, modeKey string) *Generator {
	return &Generator{
		registry:    registry,
		modeKey:     modeKey,
		titleStyle:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7F9845")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AFBC92")),
		keyStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00")),
		descStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		sepStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C")),
	}
}

// Summary is the plain text shown by the "help" command.
func (g *Generator) Summary() string {
	count := 0
	for _, name := range g.registry.Names() {
		if command, ok := g.registry.Get(name); ok && !cmd.IsHiddenCategory(cmd.CategoryOf(command)) {
			count++
		}
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Hold down %s, type part of a command's name and release %s to run it.",
		strings.ToUpper(g.modeKey), strings.ToUpper(g.modeKey)))
	for _, name := range keys.GetKeysInCategory(keys.HelpCategoryQuasimode) {
		binding := keys.GlobalkeyBindings[name]
		parts = append(parts, fmt.Sprintf("%s: %s.", binding.Help().Key, keys.GetKeyHelp(name).Description))
	}
	parts = append(parts, fmt.Sprintf("%d commands are available.", count))
	return strings.Join(parts, " ")
}

// GenerateCommandList creates a listing of every visible command, grouped by
// category.
func (g *Generator) GenerateCommandList() string {
	groups := g.groupCommandsByCategory()
	if len(groups) == 0 {
		return g.titleStyle.Render("No commands available")
	}

	sortedCategories := make([]cmd.Category, 0, len(groups))
	for category := range groups {
		sortedCategories = append(sortedCategories, category)
	}
	sort.Slice(sortedCategories, func(i, j int) bool {
		pi, pj := cmd.GetCategoryPriority(sortedCategories[i]), cmd.GetCategoryPriority(sortedCategories[j])
		if pi != pj {
			return pi < pj
		}
		return sortedCategories[i] < sortedCategories[j]
	})

	var content strings.Builder
	content.WriteString(g.titleStyle.Render("Commands"))
	content.WriteString("\n\n")
	for i, category := range sortedCategories {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(g.headerStyle.Render(fmt.Sprintf("%s (%d):", category, len(groups[category]))))
		content.WriteString("\n")
		for _, name := range groups[category] {
			content.WriteString("  ")
			content.WriteString(g.descStyle.Render(name))
			content.WriteString("\n")
		}
	}
	return content.String()
}

// GenerateStatusLine creates a one line summary of the bindings in a key
// help category
func (g *Generator) GenerateStatusLine(category keys.HelpCategory) string {
	var parts []string
	for _, name := range keys.GetKeysInCategory(category) {
		binding := keys.GlobalkeyBindings[name]
		parts = append(parts, fmt.Sprintf("%s %s",
			g.keyStyle.Render(binding.Help().Key), g.descStyle.Render(binding.Help().Desc)))
	}
	return strings.Join(parts, g.sepStyle.Render(" • "))
}

// groupCommandsByCategory groups visible command names by category; names
// inside a group are sorted
func (g *Generator) groupCommandsByCategory() map[cmd.Category][]string {
	groups := make(map[cmd.Category][]string)
	for _, name := range g.registry.Names() {
		command, ok := g.registry.Get(name)
		if !ok {
			continue
		}
		category := cmd.CategoryOf(command)
		if cmd.IsHiddenCategory(category) {
			continue
		}
		groups[category] = append(groups[category], name)
	}
	return groups
}
