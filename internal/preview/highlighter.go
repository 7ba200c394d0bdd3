package preview

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/schemer/internal/models"
)

const tabWidth = 4

// Span is a run of text with the category and color it resolved to.
// Category and Color are empty for uncolored text.
type Span struct {
	Text     string       `json:"text"`
	Category string       `json:"category,omitempty"`
	Color    models.Color `json:"color,omitempty"`
}

// Highlighter renders documents with the most recently applied scheme.
// It is safe for concurrent use.
type Highlighter struct {
	languages *Languages

	mu     sync.RWMutex
	scheme *models.Scheme
}

// NewHighlighter creates a highlighter with no scheme applied.
func NewHighlighter(languages *Languages) *Highlighter {
	return &Highlighter{languages: languages}
}

// Apply replaces the active palette with a snapshot of scheme.
func (h *Highlighter) Apply(scheme *models.Scheme) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if scheme == nil {
		h.scheme = nil
		return
	}
	h.scheme = scheme.Clone()
}

// Scheme returns the applied palette snapshot.
func (h *Highlighter) Scheme() *models.Scheme {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.scheme
}

// Spans tokenizes text in the given language and resolves each token's
// color against the applied scheme.
func (h *Highlighter) Spans(alias, text string) ([]Span, error) {
	lang, err := h.languages.Lookup(alias)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	tokens, err := lang.Tokenize(text)
	if err != nil {
		return nil, err
	}

	scheme := h.Scheme()
	spans := make([]Span, 0, len(tokens))
	for _, token := range tokens {
		if token.Value == "" {
			continue
		}
		span := Span{Text: token.Value}
		if scheme != nil {
			for _, category := range categoriesFor(token) {
				if color := scheme.Syntax[category]; color.IsSet() {
					span.Category = category
					span.Color = color
					break
				}
			}
		}
		spans = append(spans, span)
	}

	// Lexers may append a newline the document did not have.
	if !strings.HasSuffix(text, "\n") && len(spans) > 0 {
		last := &spans[len(spans)-1]
		last.Text = strings.TrimSuffix(last.Text, "\n")
		if last.Text == "" {
			spans = spans[:len(spans)-1]
		}
	}
	return spans, nil
}

// Render returns text styled for a terminal. Every line is painted with
// the scheme's background when one is set.
func (h *Highlighter) Render(alias, text string) (string, error) {
	spans, err := h.Spans(alias, text)
	if err != nil {
		return "", err
	}

	base := lipgloss.NewStyle()
	if scheme := h.Scheme(); scheme != nil {
		if bg := scheme.Editor[models.RoleBackground]; bg.IsSet() {
			base = base.Background(lipgloss.Color(bg.Display()))
		}
	}

	var b strings.Builder
	for _, span := range spans {
		style := base
		if span.Color.IsSet() {
			style = style.Foreground(lipgloss.Color(span.Color.Display()))
		}
		// Styles pad multi-line input to a block, so render line by line.
		for i, line := range strings.Split(span.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String(), nil
}
