package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"quasimode/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHotkeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.txt")
	content := "Save: ctrl+s\n@app Browser\n@exefilter firefox.exe\nNew tab: ctrl+t\nBroken: ctrl+nope\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	var out bytes.Buffer
	require.NoError(t, checkHotkeys(&out, path))

	text := out.String()
	assert.Contains(t, text, "(all applications)")
	assert.Contains(t, text, "Browser [firefox.exe]")
	assert.Contains(t, text, "New tab = ctrl+t")
	assert.Contains(t, text, "warning: line 5")
	assert.Contains(t, text, "1 warning(s)")
}

func TestCheckHotkeysMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := checkHotkeys(&out, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHotkeysPathArgument(t *testing.T) {
	path, err := hotkeysPath([]string{"/tmp/keys.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/keys.txt", path)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "quasimode version "+version+"\n", out.String())
}

func TestAboutText(t *testing.T) {
	text := about(config.DefaultConfig())
	assert.Contains(t, text, version)
	assert.Contains(t, text, "Hold capslock")
}
