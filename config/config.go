package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quasimode/keys"
	"quasimode/log"
)

const (
	ConfigFileName  = "config.json"
	HotkeysFileName = "hotkeys.txt"

	DefaultModeKey        = "capslock"
	DefaultMaxSuggestions = 5
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	return log.GetConfigDir()
}

// Config represents the application configuration
type Config struct {
	// ModeKey names the key that is held down to enter the quasimode.
	ModeKey string `json:"mode_key"`
	// MaxSuggestions caps the number of suggestions shown.
	MaxSuggestions int `json:"max_suggestions"`
	// HotkeysFile is the hotkey definition file. A leading "~/" is expanded.
	HotkeysFile string `json:"hotkeys_file"`
	// DisableCapsLock turns caps lock off at startup when it is the mode key.
	DisableCapsLock bool `json:"disable_caps_lock"`
	// WelcomeMessage is shown once at startup. Empty disables it.
	WelcomeMessage string `json:"welcome_message"`

	LogsEnabled bool   `json:"logs_enabled"`
	LogsDir     string `json:"logs_dir,omitempty"`
	LogMaxSize  int    `json:"log_max_size"`
	LogMaxFiles int    `json:"log_max_files"`
	LogMaxAge   int    `json:"log_max_age"`
	LogCompress bool   `json:"log_compress"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	logDefaults := log.DefaultLogConfig()
	return &Config{
		ModeKey:         DefaultModeKey,
		MaxSuggestions:  DefaultMaxSuggestions,
		HotkeysFile:     filepath.Join("~", ".quasimode", HotkeysFileName),
		DisableCapsLock: true,
		WelcomeMessage:  "Welcome to Quasimode! Hold down the caps lock key and type a command.",
		LogsEnabled:     logDefaults.LogsEnabled,
		LogsDir:         logDefaults.LogsDir,
		LogMaxSize:      logDefaults.LogMaxSize,
		LogMaxFiles:     logDefaults.LogMaxFiles,
		LogMaxAge:       logDefaults.LogMaxAge,
		LogCompress:     logDefaults.LogCompress,
	}
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	config, err := LoadConfigFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		// Create and save default config if file doesn't exist
		if saveErr := SaveConfig(config, configPath); saveErr != nil {
			log.WarningLog.Printf("failed to save default config: %v", saveErr)
		}
		return config
	}
	if err != nil {
		log.WarningLog.Printf("using default config: %v", err)
	}
	return config
}

// LoadConfigFile reads the config at path. The returned config is always
// usable: on error it holds the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset fields keep their defaults
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.MaxSuggestions <= 0 {
		log.WarningLog.Printf("max_suggestions must be positive, got %d; using %d", config.MaxSuggestions, DefaultMaxSuggestions)
		config.MaxSuggestions = DefaultMaxSuggestions
	}
	if _, err := keys.ParseKey(config.ModeKey); err != nil {
		log.WarningLog.Printf("invalid mode_key %q: %v; using %s", config.ModeKey, err, DefaultModeKey)
		config.ModeKey = DefaultModeKey
	}

	return config, nil
}

// SaveConfig writes config to path as indented JSON.
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ModeVirtualKey returns the parsed mode key.
func (c *Config) ModeVirtualKey() (keys.VirtualKey, error) {
	return keys.ParseKey(c.ModeKey)
}

// HotkeysPath returns HotkeysFile with a leading "~" expanded.
func (c *Config) HotkeysPath() (string, error) {
	return expandHome(c.HotkeysFile)
}

// LogConfig returns the logging settings.
func (c *Config) LogConfig() *log.LogConfig {
	return &log.LogConfig{
		LogsEnabled: c.LogsEnabled,
		LogsDir:     c.LogsDir,
		LogMaxSize:  c.LogMaxSize,
		LogMaxFiles: c.LogMaxFiles,
		LogMaxAge:   c.LogMaxAge,
		LogCompress: c.LogCompress,
	}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
