package config

import (
	"os"
	"path/filepath"
	"testing"

	"quasimode/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		wantErr   bool
		wantCheck func(t *testing.T, c *Config)
	}{
		{
			name:    "partial file keeps defaults",
			content: `{"max_suggestions": 8}`,
			wantCheck: func(t *testing.T, c *Config) {
				assert.Equal(t, 8, c.MaxSuggestions)
				assert.Equal(t, DefaultModeKey, c.ModeKey)
				assert.True(t, c.DisableCapsLock)
			},
		},
		{
			name:    "non-positive max suggestions falls back",
			content: `{"max_suggestions": 0}`,
			wantCheck: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultMaxSuggestions, c.MaxSuggestions)
			},
		},
		{
			name:    "unknown mode key falls back",
			content: `{"mode_key": "hyperdrive"}`,
			wantCheck: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultModeKey, c.ModeKey)
			},
		},
		{
			name:    "other mode key",
			content: `{"mode_key": "F12", "disable_caps_lock": false}`,
			wantCheck: func(t *testing.T, c *Config) {
				vk, err := c.ModeVirtualKey()
				require.NoError(t, err)
				assert.Equal(t, keys.VKF12, vk)
				assert.False(t, c.DisableCapsLock)
			},
		},
		{
			name:    "malformed file gives defaults",
			content: `{"max_suggestions": `,
			wantErr: true,
			wantCheck: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "config"+string(rune('a'+i))+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			c, err := LoadConfigFile(path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, c)
			tt.wantCheck(t, c)
		})
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	c, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, DefaultConfig(), c)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	original := DefaultConfig()
	original.ModeKey = "f12"
	original.WelcomeMessage = ""

	require.NoError(t, SaveConfig(original, path))
	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestHotkeysPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	c := DefaultConfig()
	path, err := c.HotkeysPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quasimode", HotkeysFileName), path)

	c.HotkeysFile = "/etc/hotkeys.txt"
	path, err = c.HotkeysPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/hotkeys.txt", path)
}

func TestLogConfig(t *testing.T) {
	c := DefaultConfig()
	c.LogsDir = "/var/log/quasimode"
	lc := c.LogConfig()
	assert.Equal(t, "/var/log/quasimode", lc.LogsDir)
	assert.Equal(t, c.LogMaxSize, lc.LogMaxSize)
	assert.Equal(t, c.LogsEnabled, lc.LogsEnabled)
}

func TestInstanceLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockFileName)

	first, err := acquireInstanceLockAt(path)
	require.NoError(t, err)
	assert.Equal(t, path, first.Path())

	_, err = acquireInstanceLockAt(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())

	second, err := acquireInstanceLockAt(path)
	require.NoError(t, err)
	require.NoError(t, second.Release())

	var nilLock *InstanceLock
	assert.NoError(t, nilLock.Release())
}
