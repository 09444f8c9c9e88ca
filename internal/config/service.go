package config

import (
	"fmt"
	"os"
)

// Service provides operations for managing configuration
type Service struct {
	configPath string
	config     Config
}

// NewService creates a new config Service
func NewService(configPath string, cfg Config) *Service {
	return &Service{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *Service) Get() Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *Service) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *Service) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Update updates the configuration with new values
func (s *Service) Update(cfg Config) error {
	// Normalize and validate
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Write the config file
	if err := s.writeConfig(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	// Update in-memory config
	s.config = cfg

	return nil
}

// Init creates a sample config file
func (s *Service) Init() error {
	// Check if file already exists
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	// Write sample config
	sample := GenerateSampleConfig()
	if err := os.WriteFile(s.configPath, []byte(sample), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reload reloads the configuration from disk
func (s *Service) Reload() error {
	cfg, err := LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.config = cfg
	return nil
}

// writeConfig writes the config to the config file in TOML format
func (s *Service) writeConfig(cfg Config) error {
	content := fmt.Sprintf(`# gentlepom configuration file

# Scheduled session durations, in minutes
focus_minutes = %d
rest_minutes = %d

# Automatically start the next session when one finishes
auto_start_break = %t
auto_start_focus = %t

# End-of-session chime
sound_enabled = %t
sound_volume = %g

# Folder scanned for linkable markdown tasks. Leave empty to disable the picker.
tasks_path = %q

# Folder for daily session logs. Leave empty to disable logging.
log_folder = %q
`,
		cfg.FocusMinutes, cfg.RestMinutes,
		cfg.AutoStartBreak, cfg.AutoStartFocus,
		cfg.SoundEnabled, cfg.SoundVolume,
		cfg.TasksPath, cfg.LogFolder)

	return os.WriteFile(s.configPath, []byte(content), 0644)
}
