// Package config loads schemer configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opencode-ai/schemer/internal/models"
)

const (
	appName        = "schemer"
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "SCHEMER"
)

// Config is the application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Editor   EditorConfig   `mapstructure:"editor" yaml:"editor"`
	Preview  PreviewConfig  `mapstructure:"preview" yaml:"preview"`
	TUI      TUIConfig      `mapstructure:"tui" yaml:"tui"`
}

// DatabaseConfig locates the key/value store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // auto, console, json
	File   string `mapstructure:"file" yaml:"file"`     // used while the TUI owns the terminal
}

// EditorConfig holds defaults used before any setting is stored.
type EditorConfig struct {
	DefaultScheme   string `mapstructure:"default_scheme" yaml:"default_scheme"`
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language"`
	Font            string `mapstructure:"font" yaml:"font"`
	FontSize        int    `mapstructure:"font_size" yaml:"font_size"`
}

// PreviewConfig controls remote preview documents.
type PreviewConfig struct {
	// BaseURL is where preview documents are fetched from as <base>/<alias>.
	// Empty disables remote fetching.
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// TUIConfig controls the terminal interface.
type TUIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"` // default, high-contrast
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	dataDir := DataDir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dataDir, appName+".db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
			File:   filepath.Join(dataDir, appName+".log"),
		},
		Editor: EditorConfig{
			DefaultScheme:   models.DefaultSchemeName,
			DefaultLanguage: "cpp",
			Font:            "JetBrains Mono",
			FontSize:        14,
		},
		Preview: PreviewConfig{
			Timeout: 10 * time.Second,
		},
		TUI: TUIConfig{
			Theme: "default",
		},
	}
}

// Load reads configuration from path, or from the default search locations
// when path is empty. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("editor.default_scheme", cfg.Editor.DefaultScheme)
	v.SetDefault("editor.default_language", cfg.Editor.DefaultLanguage)
	v.SetDefault("editor.font", cfg.Editor.Font)
	v.SetDefault("editor.font_size", cfg.Editor.FontSize)
	v.SetDefault("preview.base_url", cfg.Preview.BaseURL)
	v.SetDefault("preview.timeout", cfg.Preview.Timeout)
	v.SetDefault("tui.theme", cfg.TUI.Theme)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validation := &models.ValidationErrors{}
	if strings.TrimSpace(c.Database.Path) == "" {
		validation.AddMessage("database.path", "is required")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "auto", "console", "json":
	default:
		validation.AddMessage("logging.format", fmt.Sprintf("unsupported format %q", c.Logging.Format))
	}
	if strings.TrimSpace(c.Editor.DefaultScheme) == "" {
		validation.AddMessage("editor.default_scheme", "is required")
	}
	if c.Editor.FontSize <= 0 {
		validation.AddMessage("editor.font_size", "must be positive")
	}
	if c.Preview.Timeout < 0 {
		validation.AddMessage("preview.timeout", "must not be negative")
	}
	if base := strings.TrimSpace(c.Preview.BaseURL); base != "" &&
		!strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		validation.AddMessage("preview.base_url", "must be an http(s) URL")
	}
	return validation.Err()
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the directory for the database and log file.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
