package cmd

import (
	"fmt"
	"time"

	"github.com/gentlepom/gentlepom/internal/tasks"
	"github.com/spf13/cobra"
)

// tasksCmd represents the tasks command
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks due within the next week",
	Long: `Scan the configured tasks folder for open markdown tasks and list
the ones due within the next seven days, soonest first.

A task is any unchecked markdown checkbox item carrying a due date in the
form 📅 YYYY-MM-DD. These are the tasks the timer can link focus sessions
to.`,
	Run: func(cmd *cobra.Command, args []string) {
		listTasks()
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

// listTasks prints upcoming tasks from the configured folder
func listTasks() {
	cfg, path, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: failed to load configuration: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: check that %s is valid TOML\n", path)
		deps.Exit(1)
		return
	}

	if cfg.TasksPath == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks folder configured. Set tasks_path in the config file.")
		return
	}

	items, err := tasks.Scan(cfg.TasksPath, time.Now())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: failed to scan %s: %v\n", cfg.TasksPath, err)
		deps.Exit(1)
		return
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing due in the next week.")
		return
	}

	for _, task := range items {
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %-40s %s\n",
			task.Due.Format("2006-01-02"), task.Name, task.Path)
	}
}
