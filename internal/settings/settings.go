// Package settings persists last-used editor settings and preview documents.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/schemer/internal/config"
	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/schemes"
)

var (
	// ErrUnknownSetting is returned for keys outside models.SettingKeys.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrInvalidFontSize is returned when fontSize is not a positive integer.
	ErrInvalidFontSize = errors.New("font size must be a positive integer")
)

// Store reads and writes settings, falling back to configured defaults
// for keys that were never stored.
type Store struct {
	kv       schemes.KV
	defaults config.EditorConfig
	logger   zerolog.Logger
}

// NewStore creates a settings store over kv.
func NewStore(kv schemes.KV, defaults config.EditorConfig) *Store {
	return &Store{
		kv:       kv,
		defaults: defaults,
		logger:   logging.Component("settings"),
	}
}

// Get returns the stored value for key, or its default.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	fallback, err := s.defaultFor(key)
	if err != nil {
		return "", err
	}
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return value, nil
}

// Set validates and stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.defaultFor(key); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if key == models.SettingFontSize {
		if _, err := parseFontSize(value); err != nil {
			return err
		}
	}
	if err := s.kv.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Str("value", value).Msg("setting stored")
	return nil
}

// All returns every setting with defaults applied, keyed by name.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(models.SettingKeys))
	for _, key := range models.SettingKeys {
		value, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// Scheme returns the last active scheme name.
func (s *Store) Scheme(ctx context.Context) (string, error) {
	return s.Get(ctx, models.SettingScheme)
}

// SetScheme records the active scheme name.
func (s *Store) SetScheme(ctx context.Context, name string) error {
	return s.Set(ctx, models.SettingScheme, name)
}

// Language returns the last preview language alias.
func (s *Store) Language(ctx context.Context) (string, error) {
	return s.Get(ctx, models.SettingLanguage)
}

// SetLanguage records the preview language alias.
func (s *Store) SetLanguage(ctx context.Context, alias string) error {
	return s.Set(ctx, models.SettingLanguage, alias)
}

// Font returns the preview font family.
func (s *Store) Font(ctx context.Context) (string, error) {
	return s.Get(ctx, models.SettingFont)
}

// FontSize returns the preview font size. An unparsable stored value falls
// back to the default.
func (s *Store) FontSize(ctx context.Context) (int, error) {
	value, err := s.Get(ctx, models.SettingFontSize)
	if err != nil {
		return 0, err
	}
	size, err := parseFontSize(value)
	if err != nil {
		s.logger.Warn().Str("value", value).Msg("ignoring invalid stored font size")
		return s.defaults.FontSize, nil
	}
	return size, nil
}

// Preview returns the stored preview document for alias.
func (s *Store) Preview(ctx context.Context, alias string) (string, bool, error) {
	value, ok, err := s.kv.Get(ctx, models.PreviewKey(alias))
	if err != nil {
		return "", false, fmt.Errorf("get preview %s: %w", alias, err)
	}
	return value, ok, nil
}

// SetPreview stores the preview document for alias.
func (s *Store) SetPreview(ctx context.Context, alias, document string) error {
	if strings.TrimSpace(alias) == "" {
		return fmt.Errorf("language alias is required")
	}
	if err := s.kv.Set(ctx, models.PreviewKey(alias), document); err != nil {
		return fmt.Errorf("set preview %s: %w", alias, err)
	}
	return nil
}

func (s *Store) defaultFor(key string) (string, error) {
	switch key {
	case models.SettingFont:
		return s.defaults.Font, nil
	case models.SettingFontSize:
		return strconv.Itoa(s.defaults.FontSize), nil
	case models.SettingLanguage:
		return s.defaults.DefaultLanguage, nil
	case models.SettingScheme:
		return s.defaults.DefaultScheme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
}

func parseFontSize(value string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFontSize, value)
	}
	return size, nil
}
