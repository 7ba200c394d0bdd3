package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme       Theme
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Panel       lipgloss.Style
	Border      lipgloss.Style
	Focus       lipgloss.Style
	Selected    lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Info        lipgloss.Style
	KindBuiltIn lipgloss.Style
	KindCustom  lipgloss.Style
	KindPending lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:       theme,
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Border)),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Focus:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Background(lipgloss.Color(tokens.Selection)),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
		KindBuiltIn: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
		KindCustom:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		KindPending: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)).Bold(true),
	}
}

// Swatch renders a block of width cells filled with hex. An empty hex
// renders a placeholder of the same width.
func Swatch(hex string, width int) string {
	if width <= 0 {
		width = 2
	}
	if hex == "" {
		return lipgloss.NewStyle().Faint(true).Render(strings.Repeat("·", width))
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}
