package cmd

import (
	"io"
	"os"

	"github.com/gentlepom/gentlepom/internal/config"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Exit       func(code int)
	ConfigPath func() (string, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		ConfigPath: config.GetConfigPath,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// loadConfig resolves the config path through deps and loads the effective
// configuration, falling back to defaults when no file exists.
func loadConfig() (config.Config, string, error) {
	path, err := deps.ConfigPath()
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return config.Config{}, path, err
	}
	return cfg, path, nil
}
