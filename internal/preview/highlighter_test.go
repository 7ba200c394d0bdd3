package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/schemer/internal/models"
)

const cppSnippet = "int main() {\n\treturn puts(\"foo\");\n}"

func newTestHighlighter(t *testing.T) *Highlighter {
	t.Helper()
	languages, err := NewLanguages()
	require.NoError(t, err)
	return NewHighlighter(languages)
}

func joinSpans(spans []Span) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

func findSpan(spans []Span, text string) (Span, bool) {
	for _, span := range spans {
		if strings.TrimSpace(span.Text) == text {
			return span, true
		}
	}
	return Span{}, false
}

func TestSpansResolveMostSpecificSetCategory(t *testing.T) {
	h := newTestHighlighter(t)
	scheme := models.NewScheme("Test")
	scheme.Syntax["keyword"] = "#cc7832"
	scheme.Syntax["string"] = "#6a8759"
	h.Apply(scheme)

	spans, err := h.Spans("cpp", cppSnippet)
	require.NoError(t, err)
	require.Equal(t, strings.ReplaceAll(cppSnippet, "\t", "    "), joinSpans(spans))

	ret, ok := findSpan(spans, "return")
	require.True(t, ok)
	require.Equal(t, "keyword", ret.Category)
	require.Equal(t, models.Color("#cc7832"), ret.Color)

	scheme.Syntax["controlKeyword"] = "#ff0000"
	h.Apply(scheme)
	spans, err = h.Spans("cpp", cppSnippet)
	require.NoError(t, err)
	ret, _ = findSpan(spans, "return")
	require.Equal(t, "controlKeyword", ret.Category)
}

func TestApplySnapshotsScheme(t *testing.T) {
	h := newTestHighlighter(t)
	scheme := models.NewScheme("Test")
	scheme.Syntax["keyword"] = "#cc7832"
	h.Apply(scheme)

	scheme.Syntax["keyword"] = "#000000"
	require.Equal(t, models.Color("#cc7832"), h.Scheme().Syntax["keyword"])
}

func TestSpansWithoutColorsAreUncategorized(t *testing.T) {
	h := newTestHighlighter(t)
	h.Apply(models.NewScheme("Blank"))

	spans, err := h.Spans("cpp", cppSnippet)
	require.NoError(t, err)
	for _, span := range spans {
		require.Empty(t, span.Category)
		require.False(t, span.Color.IsSet())
	}
}

func TestRenderKeepsText(t *testing.T) {
	h := newTestHighlighter(t)
	scheme := models.NewScheme("Test")
	scheme.Editor[models.RoleBackground] = "#222"
	scheme.Syntax["keyword"] = "#fff"
	h.Apply(scheme)

	out, err := h.Render("cpp", cppSnippet)
	require.NoError(t, err)
	for _, word := range []string{"int", "main", "return", "puts", "foo"} {
		require.Contains(t, out, word)
	}
	require.Equal(t, 3, len(strings.Split(out, "\n")))
}

func TestRenderUnknownLanguage(t *testing.T) {
	h := newTestHighlighter(t)
	_, err := h.Render("definitely-not-a-language", "x")
	require.Error(t, err)
}
