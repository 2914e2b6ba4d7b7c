package hotkeys

import (
	"testing"

	"quasimode/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleBinding(t *testing.T) {
	result := ParseString("Copy: ctrl+c\n")

	assert.Empty(t, result.Warnings)
	require.Len(t, result.Sections, 1)
	require.Len(t, result.Sections[0].Bindings, 1)

	b := result.Sections[0].Bindings[0]
	assert.Equal(t, "Copy", b.Name)
	assert.Equal(t, "ctrl+c", b.RawCombo)
	assert.Equal(t, keys.Combination{keys.VKControl, keys.VirtualKey('C')}, b.Combination)
	assert.Equal(t, 1, b.Line)
}

func TestParseMissingColon(t *testing.T) {
	result := ParseString("just some text\n")

	assert.Empty(t, result.Sections)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 1, result.Warnings[0].Line)
}

func TestParseSplitsAtLastColon(t *testing.T) {
	result := ParseString("Open: the thing : ctrl+o")

	require.Len(t, result.Sections, 1)
	b := result.Sections[0].Bindings[0]
	assert.Equal(t, "Open: the thing", b.Name)
	assert.Equal(t, "ctrl+o", b.RawCombo)
}

func TestParseSectionsAndWarnings(t *testing.T) {
	text := `# global bindings
Save : ctrl+s

@app Browser
@exefilter chrome.exe
New tab : ctrl+t
Reopen tab : ctrl+shift+t
Broken : ctrl+banana

@app Editor
@exefilter code
Palette : ctrl+shift+p
@frobnicate yes
: ctrl+x
Nothing :
@app
`
	result := ParseString(text)

	require.Len(t, result.Sections, 3)

	assert.Equal(t, "", result.Sections[0].App)
	assert.Equal(t, "", result.Sections[0].ExeFilter)
	require.Len(t, result.Sections[0].Bindings, 1)

	assert.Equal(t, "Browser", result.Sections[1].App)
	assert.Equal(t, "chrome.exe", result.Sections[1].ExeFilter)
	require.Len(t, result.Sections[1].Bindings, 2)
	assert.Equal(t, "Reopen tab", result.Sections[1].Bindings[1].Name)

	assert.Equal(t, "Editor", result.Sections[2].App)
	assert.Equal(t, "code", result.Sections[2].ExeFilter)
	require.Len(t, result.Sections[2].Bindings, 1)

	lines := make([]int, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		lines = append(lines, w.Line)
	}
	assert.Equal(t, []int{8, 13, 14, 15, 16}, lines)
}

func TestBindingsForExecutable(t *testing.T) {
	result := ParseString(`Save : ctrl+s
@app Browser
@exefilter chrome.exe
New tab : ctrl+t
`)

	names := func(bindings []Binding) []string {
		var out []string
		for _, b := range bindings {
			out = append(out, b.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Save"}, names(result.Bindings(`C:\Windows\notepad.exe`)))
	assert.Equal(t, []string{"Save", "New tab"}, names(result.Bindings(`C:\Program Files\Google\Chrome\chrome.exe`)))
	assert.Equal(t, []string{"Save"}, names(result.Bindings("")))
}

func TestParseEmpty(t *testing.T) {
	result := ParseString("\n# nothing here\n\n")
	assert.Empty(t, result.Sections)
	assert.Empty(t, result.Warnings)
}
