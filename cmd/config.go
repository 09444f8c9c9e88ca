package cmd

import (
	"fmt"
	"strings"

	"github.com/gentlepom/gentlepom/internal/config"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for gentlepom.

Shows the configuration file location, whether it exists, and all current
settings. Values are merged from the config file with sensible defaults.

By default, gentlepom works without any configuration file:
  - focus_minutes: 25
  - rest_minutes: 5
  - auto_start_break: true
  - auto_start_focus: false
  - tasks_path: (unset, task picker disabled)
  - log_folder: (unset, session logging disabled)

Configuration file location:
  ~/.config/gentlepom/config.toml    Linux/macOS
  %APPDATA%\gentlepom\config.toml    Windows`,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Long: `Create a sample configuration file with all settings documented.

Fails if a config file already exists; gentlepom never overwrites your
configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	svc := config.NewService(configPath, config.DefaultConfig())
	fileExists := svc.Exists()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for gentlepom")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Focus Minutes:    %d\n", cfg.FocusMinutes)
	_, _ = fmt.Fprintf(deps.Stdout, "Rest Minutes:     %d\n", cfg.RestMinutes)
	_, _ = fmt.Fprintf(deps.Stdout, "Auto Start Break: %t\n", cfg.AutoStartBreak)
	_, _ = fmt.Fprintf(deps.Stdout, "Auto Start Focus: %t\n", cfg.AutoStartFocus)
	_, _ = fmt.Fprintf(deps.Stdout, "Sound Enabled:    %t\n", cfg.SoundEnabled)
	_, _ = fmt.Fprintf(deps.Stdout, "Sound Volume:     %g\n", cfg.SoundVolume)

	if cfg.TasksPath == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Tasks Path:       (unset, task picker disabled)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Tasks Path:       %s\n", cfg.TasksPath)
	}
	if cfg.LogFolder == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Log Folder:       (unset, session logging disabled)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Log Folder:       %s\n", cfg.LogFolder)
	}

	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: run 'gentlepom config init' to create a sample config file.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes a sample config file
func initConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	svc := config.NewService(configPath, config.DefaultConfig())
	if err := svc.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created sample config file: %s\n", configPath)
}
