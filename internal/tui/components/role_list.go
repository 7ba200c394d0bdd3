package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/tui/styles"
)

const roleSwatchWidth = 2

// RoleList renders the roles of a scheme with swatches, scrolled so the
// selected row stays visible.
type RoleList struct {
	Roles    []string
	Selected int
	Height   int
	Width    int
}

// Window returns the half-open range of rows that fit in Height.
func (l RoleList) Window() (int, int) {
	total := len(l.Roles)
	if l.Height <= 0 || total <= l.Height {
		return 0, total
	}
	start := l.Selected - l.Height/2
	if start < 0 {
		start = 0
	}
	if start+l.Height > total {
		start = total - l.Height
	}
	return start, start + l.Height
}

// Render renders the visible rows.
func (l RoleList) Render(styleSet styles.Styles, scheme *models.Scheme) []string {
	if scheme == nil {
		return nil
	}
	start, end := l.Window()
	lines := make([]string, 0, end-start)
	for idx := start; idx < end; idx++ {
		role := l.Roles[idx]
		color, err := scheme.ColorFor(role)
		if err != nil {
			continue
		}
		lines = append(lines, l.renderRow(styleSet, role, color, idx == l.Selected))
	}
	return lines
}

func (l RoleList) renderRow(styleSet styles.Styles, role string, color models.Color, selected bool) string {
	value := "-"
	if color.IsSet() {
		value = color.String()
	}
	label := models.CategoryLabel(role)
	labelWidth := l.Width - roleSwatchWidth - len("#rrggbb") - 3
	if labelWidth < 8 {
		labelWidth = 8
	}

	text := fmt.Sprintf("%-*s %-7s", labelWidth, truncate(label, labelWidth), value)
	swatch := styles.Swatch(color.Display(), roleSwatchWidth)
	if !color.IsSet() {
		swatch = styles.Swatch("", roleSwatchWidth)
	}

	style := styleSet.Text
	if selected {
		style = styleSet.Selected
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, swatch, " ", style.Render(text))
}
