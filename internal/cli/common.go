package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/modunpack/internal/config"
	"github.com/danieljhkim/modunpack/internal/engine"
	"github.com/danieljhkim/modunpack/internal/logging"
)

// loadConfig reads the effective configuration for cmd, applying the
// --config file and any changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	return config.Load(config.LoadOptions{
		ConfigFilePath: configPath,
		Flags:          cmd.Flags(),
	})
}

// newLogger creates the run logger. Logs go to stderr so stdout stays
// clean for --json.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*log.Logger, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	return logger, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}

	return engine.NewFromConfig(cfg, paths, logger), nil
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
