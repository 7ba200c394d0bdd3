package schemes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
)

// KV is the string key/value storage the store persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Store persists custom schemes under "scheme/<name>" keys.
type Store struct {
	kv     KV
	logger zerolog.Logger
}

// NewStore creates a Store backed by kv.
func NewStore(kv KV) *Store {
	return &Store{
		kv:     kv,
		logger: logging.Component("scheme-store"),
	}
}

// Save writes the full scheme under its name, replacing any existing entry.
func (s *Store) Save(ctx context.Context, scheme *models.Scheme) error {
	if err := scheme.Validate(); err != nil {
		return err
	}
	data, err := Encode(scheme)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, models.SchemeKey(scheme.Name), string(data)); err != nil {
		return fmt.Errorf("save scheme %q: %w", scheme.Name, err)
	}
	return nil
}

// Load returns the stored scheme. ok is false when the key is missing,
// unreadable, or does not parse; callers fall back to built-in defaults.
func (s *Store) Load(ctx context.Context, name string) (*models.Scheme, bool) {
	key := models.SchemeKey(name)
	payload, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to read stored scheme")
		return nil, false
	}
	if !found {
		return nil, false
	}

	scheme, err := Decode([]byte(payload))
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("skipping malformed stored scheme")
		return nil, false
	}
	// The key is the identity; a stale name inside the payload loses.
	scheme.Name = name
	return scheme, true
}

// Remove deletes the stored entry. Missing entries are not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.kv.Delete(ctx, models.SchemeKey(name)); err != nil {
		return fmt.Errorf("remove scheme %q: %w", name, err)
	}
	return nil
}

// ListKeys returns every storage key under the scheme prefix.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, models.SchemeKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list scheme keys: %w", err)
	}
	return keys, nil
}

// ListNames returns the scheme names derived from ListKeys.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, models.SchemeKeyPrefix)
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
