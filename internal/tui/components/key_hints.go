package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/schemer/internal/tui/styles"
)

// KeyHint represents a keyboard-triggered action.
type KeyHint struct {
	Key     string // Keyboard key (e.g., "enter", "d")
	Label   string // Display label (e.g., "Edit", "Duplicate")
	Enabled bool   // Whether the action is available
}

// RenderKeyHintBar renders a horizontal bar of available actions.
// Format: "enter:Edit  r:Rename  d:Duplicate"
func RenderKeyHintBar(styleSet styles.Styles, hints []KeyHint) string {
	var parts []string
	for _, hint := range hints {
		if !hint.Enabled {
			continue
		}
		keyStyle := styleSet.Accent.Copy().Bold(true)
		part := fmt.Sprintf("%s:%s", keyStyle.Render(hint.Key), styleSet.Muted.Render(hint.Label))
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}

// BrowseKeyHints returns the actions available while browsing roles.
// Remove is only offered for custom schemes.
func BrowseKeyHints(builtIn bool) []KeyHint {
	return []KeyHint{
		{Key: "enter", Label: "Edit", Enabled: true},
		{Key: "c", Label: "Clear", Enabled: true},
		{Key: "r", Label: "Rename", Enabled: true},
		{Key: "d", Label: "Duplicate", Enabled: true},
		{Key: "x", Label: "Remove", Enabled: !builtIn},
		{Key: "s", Label: "Schemes", Enabled: true},
		{Key: "l", Label: "Language", Enabled: true},
		{Key: "q", Label: "Quit", Enabled: true},
	}
}

// PromptKeyHints returns the actions available while a prompt is open.
func PromptKeyHints() []KeyHint {
	return []KeyHint{
		{Key: "enter", Label: "Commit", Enabled: true},
		{Key: "esc", Label: "Cancel", Enabled: true},
	}
}

// PickerKeyHints returns the actions available in the scheme picker.
func PickerKeyHints() []KeyHint {
	return []KeyHint{
		{Key: "enter", Label: "Use", Enabled: true},
		{Key: "tab", Label: "Section", Enabled: true},
		{Key: "esc", Label: "Close", Enabled: true},
	}
}

// RenderCenteredHints renders a hint bar centered in width.
func RenderCenteredHints(styleSet styles.Styles, hints []KeyHint, width int) string {
	bar := RenderKeyHintBar(styleSet, hints)
	if bar == "" || width <= 0 {
		return bar
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(bar)
}
