package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/gentlepom/gentlepom/internal/session"
	"github.com/spf13/cobra"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log [YYYY-MM-DD]",
	Short: "Print a day's session log",
	Long: `Print the session log for a given day. Without an argument, today's
log is shown.

Each line records one finished or cancelled session: its mode, the linked
task, start and end timestamps, scheduled length, pause intervals and the
net focused time in seconds.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showLog(args)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}

// showLog prints the log file for the requested day
func showLog(args []string) {
	cfg, path, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: failed to load configuration: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: check that %s is valid TOML\n", path)
		deps.Exit(1)
		return
	}

	if cfg.LogFolder == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Logging is disabled. Set log_folder in the config file to record sessions.")
		return
	}

	day := time.Now()
	if len(args) == 1 {
		day, err = time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: invalid date %q, expected YYYY-MM-DD\n", args[0])
			deps.Exit(1)
			return
		}
	}

	logPath := session.LogFilePath(cfg.LogFolder, day)
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		_, _ = fmt.Fprintf(deps.Stdout, "No sessions logged on %s.\n", day.Format("2006-01-02"))
		return
	}
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: failed to read %s: %v\n", logPath, err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprint(deps.Stdout, string(data))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}
