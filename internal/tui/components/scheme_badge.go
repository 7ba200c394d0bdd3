package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/tui/styles"
)

// RenderSchemeBadge renders a scheme's kind, flagging edits that have not
// reached storage yet.
func RenderSchemeBadge(styleSet styles.Styles, scheme *models.Scheme, pendingWrite bool) string {
	icon, label, style := schemeDescriptor(styleSet, scheme, pendingWrite)
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

func schemeDescriptor(styleSet styles.Styles, scheme *models.Scheme, pendingWrite bool) (string, string, lipgloss.Style) {
	switch {
	case scheme == nil:
		return "-", "None", styleSet.Muted
	case pendingWrite:
		return "!", "Unsaved", styleSet.KindPending
	case scheme.BuiltIn:
		return "B", "Built-in", styleSet.KindBuiltIn
	default:
		return "C", "Custom", styleSet.KindCustom
	}
}
