// Package cli provides the schemer command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/config"
	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/logging"
)

var (
	cfgFile        string
	dbPath         string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool
	logLevel       string

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schemer",
	Short: "Edit editor color schemes",
	Long: `schemer edits color schemes for a code editor.

Built-in schemes are read-only; editing one forks it into a custom copy.
Custom schemes, the active scheme, and preview settings are stored locally.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/schemer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; use defaults")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return appConfig
}

func initConfig(cmd *cobra.Command) error {
	if jsonOutput && jsonlOutput {
		return &PreflightError{
			Message:  "--json and --jsonl are mutually exclusive",
			Hint:     "Pick one output format",
			NextStep: cmd.CommandPath() + " --json",
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(dbPath) != "" {
		cfg.Database.Path = dbPath
	}
	if strings.TrimSpace(logLevel) != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	return logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}

// initFileLogging sends logs to the configured file while the TUI owns the
// terminal. Logging is disabled when no file is configured.
func initFileLogging() (io.Closer, error) {
	cfg := GetConfig()
	if cfg == nil || strings.TrimSpace(cfg.Logging.File) == "" {
		return nopCloser{}, logging.Init(logging.Config{Level: "disabled", Writer: io.Discard})
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: logging.FormatJSON,
		Writer: file,
	}); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openDatabase() (*db.DB, error) {
	cfg := GetConfig()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, &PreflightError{
			Message:  fmt.Sprintf("failed to open database at %s: %v", cfg.Database.Path, err),
			Hint:     "Check that the directory is writable or pass --db",
			NextStep: "schemer --db /tmp/schemer.db schemes list",
		}
	}

	if _, err := database.MigrateUp(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
