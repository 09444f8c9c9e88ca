// Package config manages the gentlepom settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gentlepom/gentlepom/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "gentlepom"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	// FocusMinutes is the scheduled duration of a focus session, in minutes
	FocusMinutes int `toml:"focus_minutes"`
	// RestMinutes is the scheduled duration of a rest session, in minutes
	RestMinutes int `toml:"rest_minutes"`
	// AutoStartBreak starts the rest timer automatically when a focus session finishes
	AutoStartBreak bool `toml:"auto_start_break"`
	// AutoStartFocus starts the focus timer automatically when a rest session finishes
	AutoStartFocus bool `toml:"auto_start_focus"`
	// SoundEnabled toggles the end-of-session chime
	SoundEnabled bool `toml:"sound_enabled"`
	// SoundVolume is the chime volume in [0, 1]
	SoundVolume float64 `toml:"sound_volume"`
	// TasksPath is the folder scanned for linkable markdown tasks; empty disables the picker
	TasksPath string `toml:"tasks_path"`
	// LogFolder is where daily session logs are written; empty disables logging
	LogFolder string `toml:"log_folder"`
}

// DefaultConfig returns a Config with the classic pomodoro defaults.
func DefaultConfig() Config {
	return Config{
		FocusMinutes:   25,
		RestMinutes:    5,
		AutoStartBreak: true,
		AutoStartFocus: false,
		SoundEnabled:   true,
		SoundVolume:    0.5,
		TasksPath:      "",
		LogFolder:      "",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	// Create config directory if it doesn't exist
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and parses the config file at the given path.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns defaults.
// A missing file is not an error; a malformed or invalid file is.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Normalize cleans up user-provided values without changing their meaning.
func (c *Config) Normalize() {
	c.TasksPath = strings.TrimSpace(c.TasksPath)
	c.LogFolder = strings.TrimSpace(c.LogFolder)
	if c.TasksPath != "" {
		c.TasksPath = filepath.Clean(c.TasksPath)
	}
	if c.LogFolder != "" {
		c.LogFolder = filepath.Clean(c.LogFolder)
	}
}

// Validate checks that the configuration is usable. The timer engine is
// never handed a duration that fails this check.
func (c Config) Validate() error {
	if c.FocusMinutes < 1 {
		return fmt.Errorf("focus_minutes must be at least 1, got %d", c.FocusMinutes)
	}
	if c.RestMinutes < 1 {
		return fmt.Errorf("rest_minutes must be at least 1, got %d", c.RestMinutes)
	}
	if c.SoundVolume < 0 || c.SoundVolume > 1 {
		return fmt.Errorf("sound_volume must be between 0 and 1, got %g", c.SoundVolume)
	}
	return nil
}

// GenerateSampleConfig returns a commented sample config file body.
func GenerateSampleConfig() string {
	home, err := osutil.Provider.UserHomeDir()
	if err != nil {
		home = "~"
	}

	return fmt.Sprintf(`# gentlepom configuration file

# Scheduled session durations, in minutes (must be at least 1)
focus_minutes = 25
rest_minutes = 5

# Automatically start the next session when one finishes
auto_start_break = true
auto_start_focus = false

# End-of-session chime
sound_enabled = true
sound_volume = 0.5

# Folder scanned for linkable markdown tasks. Leave empty to disable the picker.
# tasks_path = %q

# Folder for daily session logs. Leave empty to disable logging.
# log_folder = %q
`, filepath.Join(home, "notes", "tasks"), filepath.Join(home, "notes", "logs"))
}
