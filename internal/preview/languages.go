// Package preview renders sample documents with a scheme's colors.
package preview

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

//go:embed samples/*.txt
var samplesFS embed.FS

// Language is a grammar the preview can highlight.
type Language struct {
	Alias  string
	Name   string
	Sample string
	lexer  chroma.Lexer
}

// Languages is the registry of preview grammars keyed by alias.
type Languages struct {
	byAlias map[string]*Language
	order   []string
}

// NewLanguages builds the registry from the embedded samples. Every sample
// file name must be a chroma lexer alias.
func NewLanguages() (*Languages, error) {
	entries, err := samplesFS.ReadDir("samples")
	if err != nil {
		return nil, fmt.Errorf("read embedded samples: %w", err)
	}

	registry := &Languages{byAlias: make(map[string]*Language, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		alias := strings.TrimSuffix(entry.Name(), ".txt")
		data, err := samplesFS.ReadFile(path.Join("samples", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read sample %s: %w", entry.Name(), err)
		}
		lang, err := newLanguage(alias)
		if err != nil {
			return nil, err
		}
		lang.Sample = string(data)
		registry.byAlias[alias] = lang
		registry.order = append(registry.order, alias)
	}
	sort.Strings(registry.order)
	return registry, nil
}

func newLanguage(alias string) (*Language, error) {
	lexer := lexers.Get(alias)
	if lexer == nil {
		return nil, fmt.Errorf("no grammar for language %q", alias)
	}
	return &Language{
		Alias: alias,
		Name:  lexer.Config().Name,
		lexer: chroma.Coalesce(lexer),
	}, nil
}

// Get returns a registered language.
func (l *Languages) Get(alias string) (*Language, bool) {
	lang, ok := l.byAlias[alias]
	return lang, ok
}

// Lookup returns a registered language or, failing that, any grammar chroma
// knows under alias. Languages found this way have no sample.
func (l *Languages) Lookup(alias string) (*Language, error) {
	if lang, ok := l.byAlias[alias]; ok {
		return lang, nil
	}
	return newLanguage(alias)
}

// List returns the registered languages ordered by alias.
func (l *Languages) List() []*Language {
	out := make([]*Language, 0, len(l.order))
	for _, alias := range l.order {
		out = append(out, l.byAlias[alias])
	}
	return out
}

// Aliases returns the registered aliases in order.
func (l *Languages) Aliases() []string {
	return append([]string(nil), l.order...)
}

// Next returns the alias after current, wrapping around. An unknown current
// yields the first alias.
func (l *Languages) Next(current string) string {
	return l.step(current, 1)
}

// Prev returns the alias before current, wrapping around.
func (l *Languages) Prev(current string) string {
	return l.step(current, -1)
}

func (l *Languages) step(current string, delta int) string {
	if len(l.order) == 0 {
		return ""
	}
	for i, alias := range l.order {
		if alias == current {
			return l.order[(i+delta+len(l.order))%len(l.order)]
		}
	}
	return l.order[0]
}

// Tokenize splits text into coalesced tokens.
func (lang *Language) Tokenize(text string) ([]chroma.Token, error) {
	iterator, err := lang.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", lang.Alias, err)
	}
	return iterator.Tokens(), nil
}
