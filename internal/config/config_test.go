package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "Darcula", cfg.Editor.DefaultScheme)
	require.Equal(t, "cpp", cfg.Editor.DefaultLanguage)
	require.Equal(t, 14, cfg.Editor.FontSize)
	require.Equal(t, 10*time.Second, cfg.Preview.Timeout)
	require.Equal(t, "default", cfg.TUI.Theme)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `database:
  path: /tmp/schemer-test.db
editor:
  default_scheme: Monokai
  font_size: 16
preview:
  base_url: https://example.com/previews
  timeout: 3s
tui:
  theme: high-contrast
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/schemer-test.db", cfg.Database.Path)
	require.Equal(t, "high-contrast", cfg.TUI.Theme)
	require.Equal(t, "Monokai", cfg.Editor.DefaultScheme)
	require.Equal(t, 16, cfg.Editor.FontSize)
	require.Equal(t, "https://example.com/previews", cfg.Preview.BaseURL)
	require.Equal(t, 3*time.Second, cfg.Preview.Timeout)
	// Unset keys keep defaults.
	require.Equal(t, "cpp", cfg.Editor.DefaultLanguage)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SCHEMER_EDITOR_DEFAULT_LANGUAGE", "go")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "go", cfg.Editor.DefaultLanguage)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Editor.FontSize = 0
	cfg.Preview.BaseURL = "ftp://example.com"
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "editor.font_size")
	require.Contains(t, err.Error(), "preview.base_url")
	require.Contains(t, err.Error(), "logging.format")
}
