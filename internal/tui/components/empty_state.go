// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/schemer/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display.
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are keys or commands the user can try.
	Suggestions []Suggestion
}

// Suggestion represents a suggested key or command with description.
type Suggestion struct {
	Command     string
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Try:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// EmptyCustomSchemes is shown in the picker before any scheme is forked.
func EmptyCustomSchemes() EmptyState {
	return EmptyState{
		Title:    "No custom schemes yet",
		Subtitle: "Editing a built-in scheme saves a custom copy.",
		Suggestions: []Suggestion{
			{Command: "enter", Description: "edit the selected color"},
			{Command: "d", Description: "duplicate the active scheme"},
		},
	}
}

// EmptySchemesFiltered is shown when the picker filter matches nothing.
func EmptySchemesFiltered(filter string) EmptyState {
	return EmptyState{
		Title:    fmt.Sprintf("No schemes match '%s'", filter),
		Subtitle: "Backspace to edit the filter.",
	}
}

// EmptyPreview is shown when a language has no preview document.
func EmptyPreview(language string) EmptyState {
	return EmptyState{
		Title:    fmt.Sprintf("No preview document for %s", language),
		Subtitle: "Set preview.base_url or store one from a file.",
		Suggestions: []Suggestion{
			{Command: fmt.Sprintf("schemer preview load <file> --language %s", language)},
			{Command: "l", Description: "switch language"},
		},
	}
}

// LoadingPreview is shown while a preview document is being fetched.
func LoadingPreview(language string) EmptyState {
	return EmptyState{
		Title: fmt.Sprintf("Loading %s preview...", language),
	}
}
