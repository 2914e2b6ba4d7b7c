package ui

import (
	"io"
	"strings"

	"quasimode/autocomplete"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// Row is one line of the quasimode: a suggestion, or the raw input when
// nothing matches.
type Row struct {
	Text     string
	Matches  []autocomplete.Range
	Selected bool
}

// Frame is everything the quasimode shows at one moment.
type Frame struct {
	Input string
	Help  string
	Rows  []Row
}

const (
	DefaultRowWidth     = 48
	DefaultMessageWidth = 60
	ellipsis            = "…"
)

// Theme renders frames and messages as styled text.
type Theme struct {
	RowWidth     int
	MessageWidth int

	helpStyle            lipgloss.Style
	rowStyle             lipgloss.Style
	completedStyle       lipgloss.Style
	selectedMatchStyle   lipgloss.Style
	unselectedMatchStyle lipgloss.Style
	messageStyle         lipgloss.Style
}

// NewTheme builds styles for output written to w. Without color every
// style degrades to plain text.
func NewTheme(w io.Writer, color bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Theme{
		RowWidth:     DefaultRowWidth,
		MessageWidth: DefaultMessageWidth,
		helpStyle: r.NewStyle().
			Background(lipgloss.Color("#7F9845")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		rowStyle: r.NewStyle().
			Background(lipgloss.Color("#000000")).
			Padding(0, 1),
		completedStyle:       r.NewStyle().Foreground(lipgloss.Color("#7F9845")),
		selectedMatchStyle:   r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		unselectedMatchStyle: r.NewStyle().Foreground(lipgloss.Color("#AFBC92")),
		messageStyle: r.NewStyle().
			Background(lipgloss.Color("#000000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(1, 2),
	}
}

// RenderFrame draws the help line above the rows.
func (t *Theme) RenderFrame(f Frame) string {
	lines := []string{t.helpStyle.Render(f.Help)}
	for _, row := range f.Rows {
		lines = append(lines, t.rowStyle.Render(t.renderRow(row)))
	}
	return strings.Join(lines, "\n")
}

// RenderMessage draws a transient message, wrapped to MessageWidth.
func (t *Theme) RenderMessage(text string) string {
	return t.messageStyle.Render(wordwrap.String(text, t.MessageWidth))
}

// Width returns the printable width of rendered output, ignoring escape
// sequences.
func Width(rendered string) int {
	width := 0
	for _, line := range strings.Split(rendered, "\n") {
		if w := ansi.PrintableRuneWidth(line); w > width {
			width = w
		}
	}
	return width
}

// renderRow highlights the matched ranges of a row, truncating long names.
func (t *Theme) renderRow(row Row) string {
	text := row.Text
	if t.RowWidth > 0 && runewidth.StringWidth(text) > t.RowWidth {
		text = runewidth.Truncate(text, t.RowWidth, ellipsis)
	}
	visible := len(text)
	if text != row.Text {
		// the ellipsis is never highlighted
		visible -= len(ellipsis)
	}

	matchStyle := t.unselectedMatchStyle
	if row.Selected {
		matchStyle = t.selectedMatchStyle
	}

	var sb strings.Builder
	pos := 0
	for _, m := range row.Matches {
		start, end := clamp(m.Start, pos, visible), clamp(m.End, pos, visible)
		if start >= end {
			continue
		}
		sb.WriteString(t.completedStyle.Render(text[pos:start]))
		sb.WriteString(matchStyle.Render(text[start:end]))
		pos = end
	}
	if pos < len(text) {
		sb.WriteString(t.completedStyle.Render(text[pos:]))
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
