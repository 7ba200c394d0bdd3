// Package editor owns the active scheme and applies edits to it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/schemer/internal/events"
	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/schemes"
)

// ErrNameRequired is returned when renaming to a blank name.
var ErrNameRequired = errors.New("scheme name is required")

// ThemeApplier re-renders the preview with a scheme's colors.
type ThemeApplier interface {
	Apply(scheme *models.Scheme)
}

// SettingsRecorder remembers the last active scheme.
type SettingsRecorder interface {
	SetScheme(ctx context.Context, name string) error
}

// Warning is a non-fatal failure the user should see, typically a storage
// write that did not go through.
type Warning struct {
	Op     string
	Scheme string
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s %q: %v", w.Op, w.Scheme, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Options configures a Session. Every collaborator is optional.
type Options struct {
	Applier  ThemeApplier
	Settings SettingsRecorder
	Events   events.Repository
	// DefaultScheme is activated when a requested scheme does not exist.
	DefaultScheme string
	// OnWarning receives non-fatal failures.
	OnWarning func(Warning)
}

// Session is the editing state for one run: the registry and exactly one
// active scheme. All methods run synchronously on the caller's goroutine.
type Session struct {
	registry *schemes.Registry
	store    *schemes.Store
	opts     Options
	logger   zerolog.Logger

	active       *models.Scheme
	pendingWrite bool
	// staleKeys holds names a renamed scheme is still stored under because
	// the rename's save failed. They are removed on its next successful save.
	staleKeys map[*models.Scheme][]string
}

// New creates a session over registry. Call Load before use.
func New(registry *schemes.Registry, opts Options) *Session {
	if strings.TrimSpace(opts.DefaultScheme) == "" {
		opts.DefaultScheme = models.DefaultSchemeName
	}
	return &Session{
		registry:  registry,
		store:     registry.Store(),
		opts:      opts,
		logger:    logging.Component("editor"),
		staleKeys: make(map[*models.Scheme][]string),
	}
}

// Load resets the session from storage and activates name.
func (s *Session) Load(ctx context.Context, name string) error {
	if _, err := s.registry.LoadAll(ctx); err != nil {
		return fmt.Errorf("load schemes: %w", err)
	}
	s.active = nil
	s.pendingWrite = false
	s.staleKeys = make(map[*models.Scheme][]string)
	s.SetActive(ctx, name)
	return nil
}

// Registry returns the session's registry.
func (s *Session) Registry() *schemes.Registry {
	return s.registry
}

// Active returns the active scheme. Callers must not mutate it.
func (s *Session) Active() *models.Scheme {
	return s.active
}

// PendingWrite reports whether the active scheme has edits that have not
// been stored yet.
func (s *Session) PendingWrite() bool {
	return s.pendingWrite
}

// SetActive activates name, falling back to the default scheme when it is
// not registered. It returns the scheme that became active.
func (s *Session) SetActive(ctx context.Context, name string) *models.Scheme {
	scheme, ok := s.registry.Get(name)
	if !ok {
		scheme = s.fallback()
		if scheme == nil {
			s.logger.Error().Str("scheme", name).Msg("no schemes registered")
			return nil
		}
		if name != "" {
			s.logger.Debug().Str("requested", name).Str("scheme", scheme.Name).Msg("scheme not found, using fallback")
		}
	}

	s.activate(ctx, scheme)
	s.pendingWrite = false
	return scheme
}

func (s *Session) fallback() *models.Scheme {
	for _, name := range []string{s.opts.DefaultScheme, models.DefaultSchemeName} {
		if scheme, ok := s.registry.Get(name); ok {
			return scheme
		}
	}
	if list := s.registry.ListSorted(); len(list) > 0 {
		return list[0]
	}
	return nil
}

func (s *Session) activate(ctx context.Context, scheme *models.Scheme) {
	s.active = scheme
	if s.opts.Settings != nil {
		if err := s.opts.Settings.SetScheme(ctx, scheme.Name); err != nil {
			s.warn(Warning{Op: "remember scheme", Scheme: scheme.Name, Err: err})
		}
	}
	s.apply()
}

func (s *Session) apply() {
	if s.opts.Applier != nil && s.active != nil {
		s.opts.Applier.Apply(s.active)
	}
}

// SetColor sets role to the normalized value of input. A built-in active
// scheme is forked first. It reports whether anything changed; an
// unchanged value forks nothing and writes nothing.
func (s *Session) SetColor(ctx context.Context, role, input string) (bool, error) {
	if s.active == nil {
		return false, schemes.ErrSchemeNotFound
	}
	current, err := s.active.ColorFor(role)
	if err != nil {
		return false, err
	}

	color := models.NormalizeColor(input)
	if color == current {
		return false, nil
	}

	if s.active.BuiltIn {
		if err := s.fork(ctx); err != nil {
			return false, err
		}
	}

	if err := s.active.SetColor(role, color); err != nil {
		return false, err
	}
	s.pendingWrite = true
	s.persist(ctx, s.active, "save")
	s.apply()

	s.record(ctx, func(repo events.Repository) error {
		return events.LogColorChanged(ctx, repo, s.active.Name, role, current, color)
	})
	return true, nil
}

// fork replaces a built-in active scheme with a stored custom copy.
func (s *Session) fork(ctx context.Context) error {
	source := s.active
	copied, err := s.copyActive(ctx)
	if err != nil {
		return err
	}

	s.logger.Info().Str("source", source.Name).Str("scheme", copied.Name).Msg("forked built-in scheme")
	s.record(ctx, func(repo events.Repository) error {
		return events.LogSchemeForked(ctx, repo, source.Name, copied.Name)
	})
	return nil
}

// copyActive adds a custom copy of the active scheme, activates and stores it.
func (s *Session) copyActive(ctx context.Context) (*models.Scheme, error) {
	copied := s.active.Clone()
	copied.BuiltIn = false
	copied.Name = s.registry.ResolveUniqueName(s.active.Name)

	if err := s.registry.Add(copied); err != nil {
		return nil, err
	}
	s.activate(ctx, copied)
	s.pendingWrite = true
	s.persist(ctx, copied, "save")
	return copied, nil
}

// Rename renames the active scheme, forking it first if it is built in.
// Collisions get a numeric suffix. It returns the final name.
func (s *Session) Rename(ctx context.Context, newName string) (string, error) {
	if s.active == nil {
		return "", schemes.ErrSchemeNotFound
	}
	requested := strings.TrimSpace(newName)
	if requested == "" {
		return "", ErrNameRequired
	}
	if requested == s.active.Name {
		return requested, nil
	}

	if s.active.BuiltIn {
		if err := s.fork(ctx); err != nil {
			return "", err
		}
	}

	scheme := s.active
	oldName := scheme.Name
	resolved := s.registry.ResolveUniqueNameFor(requested, scheme)
	if resolved == oldName {
		return oldName, nil
	}

	scheme.Name = resolved
	if err := s.registry.Rekey(oldName, scheme); err != nil {
		scheme.Name = oldName
		return "", err
	}

	// The old key goes only once the new one is written.
	s.staleKeys[scheme] = append(s.staleKeys[scheme], oldName)
	s.pendingWrite = true
	s.persist(ctx, scheme, "save")
	s.activate(ctx, scheme)

	s.logger.Info().Str("old", oldName).Str("scheme", resolved).Msg("renamed scheme")
	s.record(ctx, func(repo events.Repository) error {
		return events.LogSchemeRenamed(ctx, repo, oldName, resolved, requested)
	})
	return resolved, nil
}

// Duplicate copies the active scheme into a new custom scheme, activates it
// and stores it.
func (s *Session) Duplicate(ctx context.Context) (*models.Scheme, error) {
	if s.active == nil {
		return nil, schemes.ErrSchemeNotFound
	}
	source := s.active
	copied, err := s.copyActive(ctx)
	if err != nil {
		return nil, err
	}

	s.record(ctx, func(repo events.Repository) error {
		return events.LogSchemeDuplicated(ctx, repo, source.Name, copied.Name)
	})
	return copied, nil
}

// Remove deletes the active custom scheme and activates its neighbor.
func (s *Session) Remove(ctx context.Context) (*models.Scheme, error) {
	if s.active == nil {
		return nil, schemes.ErrSchemeNotFound
	}
	if s.active.BuiltIn {
		return nil, fmt.Errorf("%w: %q", schemes.ErrBuiltInScheme, s.active.Name)
	}
	if err := s.RemoveByName(ctx, s.active.Name); err != nil {
		return nil, err
	}
	return s.active, nil
}

// RemoveByName deletes a custom scheme. When it was active, the adjacent
// custom scheme in sorted order becomes active, or the default scheme when
// no custom schemes remain.
func (s *Session) RemoveByName(ctx context.Context, name string) error {
	scheme, ok := s.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", schemes.ErrSchemeNotFound, name)
	}
	wasActive := scheme == s.active

	if err := s.registry.Remove(ctx, scheme); err != nil {
		if errors.Is(err, schemes.ErrBuiltInScheme) || errors.Is(err, schemes.ErrSchemeNotFound) {
			return err
		}
		s.warn(Warning{Op: "remove", Scheme: name, Err: err})
	}
	s.removeStaleKeys(ctx, scheme)

	s.logger.Info().Str("scheme", name).Msg("removed scheme")
	s.record(ctx, func(repo events.Repository) error {
		return events.LogSchemeRemoved(ctx, repo, name)
	})

	if wasActive {
		next, ok := s.registry.Neighbor(name)
		if !ok {
			next = s.opts.DefaultScheme
		}
		s.SetActive(ctx, next)
	}
	return nil
}

// Import adds scheme as a new custom scheme with a resolved unique name.
// The active scheme is unchanged.
func (s *Session) Import(ctx context.Context, scheme *models.Scheme) (*models.Scheme, error) {
	if scheme == nil {
		return nil, fmt.Errorf("scheme is required")
	}
	imported := scheme.Clone()
	imported.Normalize()
	if err := imported.Validate(); err != nil {
		return nil, err
	}
	imported.BuiltIn = false
	imported.Name = s.registry.ResolveUniqueName(imported.Name)

	if err := s.registry.Add(imported); err != nil {
		return nil, err
	}
	s.persist(ctx, imported, "save")

	s.record(ctx, func(repo events.Repository) error {
		return events.LogSchemeImported(ctx, repo, imported.Name)
	})
	return imported, nil
}

// persist stores scheme and reports success. A failure becomes a warning;
// memory stays authoritative and the next edit writes again.
func (s *Session) persist(ctx context.Context, scheme *models.Scheme, op string) bool {
	if err := s.store.Save(ctx, scheme); err != nil {
		s.warn(Warning{Op: op, Scheme: scheme.Name, Err: err})
		return false
	}
	if scheme == s.active {
		s.pendingWrite = false
	}
	s.removeStaleKeys(ctx, scheme)
	return true
}

// removeStaleKeys deletes keys left behind by failed renames of scheme. A
// name since taken by another scheme is skipped; its key was overwritten.
func (s *Session) removeStaleKeys(ctx context.Context, scheme *models.Scheme) {
	names := s.staleKeys[scheme]
	if len(names) == 0 {
		return
	}
	var remaining []string
	for _, name := range names {
		if name == scheme.Name || s.registry.Has(name) {
			continue
		}
		if err := s.store.Remove(ctx, name); err != nil {
			s.warn(Warning{Op: "remove old key", Scheme: name, Err: err})
			remaining = append(remaining, name)
		}
	}
	if len(remaining) == 0 {
		delete(s.staleKeys, scheme)
		return
	}
	s.staleKeys[scheme] = remaining
}

func (s *Session) warn(w Warning) {
	s.logger.Warn().Err(w.Err).Str("op", w.Op).Str("scheme", w.Scheme).Msg("storage operation failed")
	if s.opts.OnWarning != nil {
		s.opts.OnWarning(w)
	}
}

func (s *Session) record(ctx context.Context, write func(events.Repository) error) {
	if s.opts.Events == nil {
		return
	}
	if err := write(s.opts.Events); err != nil {
		s.logger.Debug().Err(err).Msg("failed to record scheme event")
	}
}
