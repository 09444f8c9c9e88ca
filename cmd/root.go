package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/gentlepom/gentlepom/internal/clock"
	"github.com/gentlepom/gentlepom/internal/engine"
	"github.com/gentlepom/gentlepom/internal/session"
	"github.com/gentlepom/gentlepom/internal/tasks"
	"github.com/gentlepom/gentlepom/internal/tui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// debugLogName is created in the working directory when --debug is set.
// The TUI owns the terminal, so diagnostics cannot go to stderr.
const debugLogName = "gentlepom-debug.log"

var rootCmd = &cobra.Command{
	Use:   "gentlepom",
	Short: "A gentle pomodoro timer with persistent session logs",
	Long: `gentlepom is a terminal pomodoro timer that records every focus and
rest session to a daily markdown log.

Running gentlepom without arguments opens the interactive timer. Sessions
alternate between focus and rest; finished and cancelled sessions are
appended to <log_folder>/<date>-gentle-pomodoro-log.md as they end. A
session left running past its scheduled end simply counts up as overtime
until you finish it.

Focus sessions can be linked to a markdown task from your notes folder
(tasks_path). Checking the task off in the notes while the session runs
unlinks it automatically.

Subcommands:
  gentlepom log [date]      Print a day's session log
  gentlepom tasks           List tasks due within the next week
  gentlepom config          Show the effective configuration
  gentlepom config init     Write a sample config file`,
	Run: func(cmd *cobra.Command, args []string) {
		runTimer(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "write diagnostics to "+debugLogName)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"gentlepom version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// runTimer wires the engine, recorder and watchers together and hands the
// terminal to the TUI until the user quits.
func runTimer(cmd *cobra.Command) {
	cfg, path, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: failed to load configuration: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: check that %s is valid TOML\n", path)
		deps.Exit(1)
		return
	}

	logger, closeLog, err := newLogger(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	defer closeLog()

	clk := clock.System{}
	recorder := session.NewRecorder(cfg.LogFolder, clk, logger)

	eng := engine.New(engine.Config{
		FocusDuration:  time.Duration(cfg.FocusMinutes) * time.Minute,
		RestDuration:   time.Duration(cfg.RestMinutes) * time.Minute,
		AutoStartBreak: cfg.AutoStartBreak,
		AutoStartFocus: cfg.AutoStartFocus,
	}, clk, recorder, logger)
	defer eng.Close()

	if cfg.TasksPath != "" {
		eng.SetTaskChecker(tasks.NewChecker(cfg.TasksPath))

		watcher, err := tasks.NewWatcher(cfg.TasksPath, eng, logger)
		if err != nil {
			// The timer is still useful without live unlinking.
			logger.Warn().Err(err).Str("path", cfg.TasksPath).
				Msg("task folder watch unavailable")
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	if err := tui.Run(eng, cfg.TasksPath, cfg.LogFolder); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// newLogger builds the diagnostic logger. Without --debug all diagnostics
// are discarded.
func newLogger(cmd *cobra.Command) (zerolog.Logger, func(), error) {
	debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
	if !debug {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(debugLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("failed to open debug log: %w", err)
	}
	logger := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}
