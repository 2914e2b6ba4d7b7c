package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogDir(t *testing.T) {
	dir, err := GetLogDir(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, dir)

	dir, err = GetLogDir(&LogConfig{LogsEnabled: false})
	require.NoError(t, err)
	assert.Equal(t, os.TempDir(), dir)

	dir, err = GetLogDir(&LogConfig{LogsEnabled: true, LogsDir: "/custom/log/dir"})
	require.NoError(t, err)
	assert.Equal(t, "/custom/log/dir", dir)

	dir, err = GetLogDir(&LogConfig{LogsEnabled: true})
	require.NoError(t, err)
	assert.Contains(t, dir, ".quasimode"+string(filepath.Separator)+"logs")
}

func TestGetLogFilePath(t *testing.T) {
	path, err := GetLogFilePath(&LogConfig{LogsEnabled: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "quasimode.log"), "got %s", path)

	path, err = GetLogFilePath(&LogConfig{LogsEnabled: true, LogsDir: "/custom/log/dir"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/log/dir", "quasimode.log"), path)
}

func TestCreateRotatingWriter(t *testing.T) {
	tempDir := t.TempDir()

	// nil config and zero size fall back to a plain file
	w := createRotatingWriter(filepath.Join(tempDir, "plain.log"), nil)
	require.NotNil(t, w)
	_, isFile := w.(*os.File)
	assert.True(t, isFile)
	_ = w.(*os.File).Close()

	w = createRotatingWriter(filepath.Join(tempDir, "rotating.log"), DefaultLogConfig())
	require.NotNil(t, w)
	_, isFile = w.(*os.File)
	assert.False(t, isFile)
}

func TestComponentLoggersFollowWriter(t *testing.T) {
	hookLog := For("hook-test")
	assert.Same(t, hookLog, For("hook-test"))

	var buf bytes.Buffer
	setWriter(&buf)
	defer setWriter(os.Stderr)

	hookLog.InfoLog.Printf("installed")
	hookLog.ErrorLog.Printf("send failed")

	out := buf.String()
	assert.Contains(t, out, "[hook-test] INFO: ")
	assert.Contains(t, out, "[hook-test] ERROR: ")
	assert.Contains(t, out, "installed")
}

func TestEvery(t *testing.T) {
	every := NewEvery(50 * time.Millisecond)
	assert.True(t, every.ShouldLog())
	assert.False(t, every.ShouldLog())

	time.Sleep(80 * time.Millisecond)
	assert.True(t, every.ShouldLog())
	assert.False(t, every.ShouldLog())
}
