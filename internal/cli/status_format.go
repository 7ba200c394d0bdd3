// Package cli provides scheme formatting helpers.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/schemer/internal/models"
)

const swatchWidth = 2

func formatSchemeKind(scheme *models.Scheme) string {
	label, color := schemeKindLabel(scheme)
	return colorize(label, color)
}

func schemeKindLabel(scheme *models.Scheme) (string, string) {
	if scheme.BuiltIn {
		return "built-in", colorCyan
	}
	return "custom", colorGreen
}

func formatActiveMarker(active bool) string {
	if !active {
		return ""
	}
	return colorize("*", colorYellow)
}

// formatColor renders a color value with a swatch when the terminal
// supports color. Unset colors show as "-".
func formatColor(color models.Color) string {
	if !color.IsSet() {
		return "-"
	}
	if !colorEnabled() {
		return color.String()
	}
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(color.Display())).
		Render(strings.Repeat(" ", swatchWidth))
	return fmt.Sprintf("%s %s", swatch, color)
}

func countSetColors(scheme *models.Scheme) (int, int) {
	set, total := 0, 0
	for _, colors := range []map[string]models.Color{scheme.Editor, scheme.Syntax} {
		for _, color := range colors {
			total++
			if color.IsSet() {
				set++
			}
		}
	}
	return set, total
}
