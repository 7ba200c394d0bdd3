// Package models defines the core data types for schemer.
package models

import (
	"maps"
	"strings"
	"unicode"
)

// DefaultSchemeName is the fallback scheme when a requested one does not exist.
const DefaultSchemeName = "Darcula"

// Scheme is a named palette of editor-surface and syntax colors.
// Built-in and custom schemes share this type; BuiltIn is the discriminant.
type Scheme struct {
	// Name is unique across the registry.
	Name string `json:"name" yaml:"name"`

	// BuiltIn marks shipped defaults, which are never mutated in place.
	BuiltIn bool `json:"builtIn" yaml:"-"`

	// Editor maps each of EditorRoles to a color.
	Editor map[string]Color `json:"editor" yaml:"editor"`

	// Syntax maps each of SyntaxCategories to a color.
	Syntax map[string]Color `json:"syntax" yaml:"syntax"`
}

// NewScheme returns a custom scheme with every role present and unset.
func NewScheme(name string) *Scheme {
	s := &Scheme{Name: name}
	s.Normalize()
	return s
}

// Normalize reconciles both color maps with the taxonomy: missing roles are
// added unset and unknown keys are dropped.
func (s *Scheme) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Editor = reconcile(s.Editor, EditorRoles)
	s.Syntax = reconcile(s.Syntax, SyntaxCategories)
}

func reconcile(current map[string]Color, keys []string) map[string]Color {
	out := make(map[string]Color, len(keys))
	for _, key := range keys {
		out[key] = current[key]
	}
	return out
}

// Validate checks that the scheme can be stored.
func (s *Scheme) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(s.Name) == "" {
		validation.AddMessage("name", "scheme name is required")
	}
	return validation.Err()
}

// Clone returns a deep copy.
func (s *Scheme) Clone() *Scheme {
	if s == nil {
		return nil
	}
	return &Scheme{
		Name:    s.Name,
		BuiltIn: s.BuiltIn,
		Editor:  maps.Clone(s.Editor),
		Syntax:  maps.Clone(s.Syntax),
	}
}

// Equal reports field-for-field equality, including unset entries.
func (s *Scheme) Equal(other *Scheme) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Name == other.Name &&
		s.BuiltIn == other.BuiltIn &&
		maps.Equal(s.Editor, other.Editor) &&
		maps.Equal(s.Syntax, other.Syntax)
}

// ColorFor returns the color of role from whichever namespace defines it.
func (s *Scheme) ColorFor(role string) (Color, error) {
	ns, err := RoleNamespace(role)
	if err != nil {
		return "", err
	}
	if ns == NamespaceEditor {
		return s.Editor[role], nil
	}
	return s.Syntax[role], nil
}

// SetColor writes role in whichever namespace defines it. It does not
// guard built-in schemes; callers own copy-on-write.
func (s *Scheme) SetColor(role string, color Color) error {
	ns, err := RoleNamespace(role)
	if err != nil {
		return err
	}
	if ns == NamespaceEditor {
		if s.Editor == nil {
			s.Editor = make(map[string]Color, len(EditorRoles))
		}
		s.Editor[role] = color
		return nil
	}
	if s.Syntax == nil {
		s.Syntax = make(map[string]Color, len(SyntaxCategories))
	}
	s.Syntax[role] = color
	return nil
}

// CategoryLabel turns a camelCase role into lower-case words, splitting
// before upper-case letters and digits: "variableName" -> "variable name",
// "heading1" -> "heading 1".
func CategoryLabel(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsLower(runes[i-1]) && (unicode.IsUpper(r) || unicode.IsDigit(r)) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
