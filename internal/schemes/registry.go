// Package schemes provides the scheme registry and its persistence.
package schemes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
)

var (
	// ErrSchemeNotFound is returned when a scheme name is not registered.
	ErrSchemeNotFound = errors.New("scheme not found")
	// ErrBuiltInScheme is returned when an operation requires a custom scheme.
	ErrBuiltInScheme = errors.New("built-in schemes cannot be modified")
	// ErrDuplicateName is returned when adding a name that is already registered.
	ErrDuplicateName = errors.New("scheme name already exists")
)

// Registry holds every known scheme, built-in and custom, keyed by name.
type Registry struct {
	store      *Store
	presetDirs []string
	schemes    map[string]*models.Scheme
	logger     zerolog.Logger
}

// NewRegistry creates an empty registry backed by store.
func NewRegistry(store *Store) *Registry {
	return &Registry{
		store:   store,
		schemes: make(map[string]*models.Scheme),
		logger:  logging.Component("registry"),
	}
}

// Store returns the persistence adapter behind the registry.
func (r *Registry) Store() *Store {
	return r.store
}

// SetPresetDirs sets the directories searched for read-only preset schemes
// on the next LoadAll.
func (r *Registry) SetPresetDirs(dirs []string) {
	r.presetDirs = append([]string(nil), dirs...)
}

// LoadAll replaces the registry contents with the built-in schemes plus
// every custom scheme found in storage. Unreadable or colliding stored
// entries are skipped.
func (r *Registry) LoadAll(ctx context.Context) ([]*models.Scheme, error) {
	builtins, err := LoadPresets(r.presetDirs)
	if err != nil {
		return nil, err
	}

	r.schemes = make(map[string]*models.Scheme, len(builtins))
	for _, scheme := range builtins {
		r.schemes[scheme.Name] = scheme
	}

	names, err := r.store.ListNames(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to list stored schemes, continuing with built-ins")
		return r.ListSorted(), nil
	}

	for _, name := range names {
		if existing, ok := r.schemes[name]; ok && existing.BuiltIn {
			r.logger.Warn().Str("scheme", name).Msg("stored scheme shadows a built-in, skipping")
			continue
		}
		scheme, ok := r.store.Load(ctx, name)
		if !ok {
			continue
		}
		scheme.BuiltIn = false
		r.schemes[scheme.Name] = scheme
	}

	r.logger.Debug().
		Int("builtin", len(builtins)).
		Int("total", len(r.schemes)).
		Msg("loaded schemes")

	return r.ListSorted(), nil
}

// Add inserts a scheme whose name the caller has already made unique.
func (r *Registry) Add(scheme *models.Scheme) error {
	if scheme == nil {
		return fmt.Errorf("scheme is required")
	}
	if err := scheme.Validate(); err != nil {
		return err
	}
	if _, exists := r.schemes[scheme.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, scheme.Name)
	}
	r.schemes[scheme.Name] = scheme
	return nil
}

// Remove deletes a custom scheme from the collection and from storage.
// The in-memory removal happens even if the storage delete fails; that
// error is returned for the caller to surface.
func (r *Registry) Remove(ctx context.Context, scheme *models.Scheme) error {
	if scheme == nil {
		return fmt.Errorf("scheme is required")
	}
	current, ok := r.schemes[scheme.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSchemeNotFound, scheme.Name)
	}
	if current.BuiltIn {
		return fmt.Errorf("%w: %q", ErrBuiltInScheme, scheme.Name)
	}

	delete(r.schemes, scheme.Name)
	return r.store.Remove(ctx, scheme.Name)
}

// Rekey moves scheme from oldName to its current Name.
func (r *Registry) Rekey(oldName string, scheme *models.Scheme) error {
	if current, ok := r.schemes[oldName]; !ok || current != scheme {
		return fmt.Errorf("%w: %q", ErrSchemeNotFound, oldName)
	}
	if other, exists := r.schemes[scheme.Name]; exists && other != scheme {
		return fmt.Errorf("%w: %q", ErrDuplicateName, scheme.Name)
	}
	delete(r.schemes, oldName)
	r.schemes[scheme.Name] = scheme
	return nil
}

// Get looks up a scheme by exact name.
func (r *Registry) Get(name string) (*models.Scheme, bool) {
	scheme, ok := r.schemes[name]
	return scheme, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.schemes[name]
	return ok
}

// Len returns the number of registered schemes.
func (r *Registry) Len() int {
	return len(r.schemes)
}

// ListSorted returns every scheme ordered by case-sensitive name.
func (r *Registry) ListSorted() []*models.Scheme {
	return r.filterSorted(func(*models.Scheme) bool { return true })
}

// Builtins returns the built-in schemes ordered by name.
func (r *Registry) Builtins() []*models.Scheme {
	return r.filterSorted(func(s *models.Scheme) bool { return s.BuiltIn })
}

// Customs returns the custom schemes ordered by name.
func (r *Registry) Customs() []*models.Scheme {
	return r.filterSorted(func(s *models.Scheme) bool { return !s.BuiltIn })
}

func (r *Registry) filterSorted(keep func(*models.Scheme) bool) []*models.Scheme {
	out := make([]*models.Scheme, 0, len(r.schemes))
	for _, scheme := range r.schemes {
		if keep(scheme) {
			out = append(out, scheme)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Neighbor returns the custom scheme name adjacent to name in sorted order,
// preferring the predecessor. name itself need not be registered.
func (r *Registry) Neighbor(name string) (string, bool) {
	var prev, next string
	var hasPrev, hasNext bool
	for _, scheme := range r.Customs() {
		switch {
		case scheme.Name < name:
			prev, hasPrev = scheme.Name, true
		case scheme.Name > name && !hasNext:
			next, hasNext = scheme.Name, true
		}
	}
	if hasPrev {
		return prev, true
	}
	return next, hasNext
}

// ResolveUniqueName returns base if it is free, otherwise base's stem with a
// space-separated counter one greater than the largest counter already used
// by colliding names: "Darcula" with "Darcula" and "Darcula 1" taken
// resolves to "Darcula 2".
func (r *Registry) ResolveUniqueName(base string) string {
	return r.resolveUniqueName(base, nil)
}

// resolveUniqueName ignores exclude when checking collisions, so a scheme
// being renamed never collides with itself.
func (r *Registry) resolveUniqueName(base string, exclude *models.Scheme) string {
	base = strings.TrimSpace(base)
	taken := func(name string) bool {
		existing, ok := r.schemes[name]
		return ok && existing != exclude
	}
	if !taken(base) {
		return base
	}

	stem := base
	if s, _, ok := splitCounter(base); ok {
		stem = s
	}

	highest := 0
	for name, scheme := range r.schemes {
		if scheme == exclude {
			continue
		}
		if s, n, ok := splitCounter(name); ok && s == stem && n > highest {
			highest = n
		}
	}

	for n := highest + 1; ; n++ {
		candidate := stem + " " + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// ResolveUniqueNameFor is ResolveUniqueName for renaming scheme.
func (r *Registry) ResolveUniqueNameFor(base string, scheme *models.Scheme) string {
	return r.resolveUniqueName(base, scheme)
}

// maxCounterDigits bounds name counters so the next counter always fits
// in an int. Longer digit runs are treated as part of the name.
const maxCounterDigits = 9

// splitCounter splits "Name 12" into ("Name", 12).
func splitCounter(name string) (string, int, bool) {
	i := strings.LastIndexByte(name, ' ')
	if i <= 0 || i == len(name)-1 {
		return name, 0, false
	}
	digits := name[i+1:]
	if len(digits) > maxCounterDigits {
		return name, 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return name, 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return name, 0, false
	}
	return name[:i], n, true
}
