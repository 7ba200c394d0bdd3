package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/tui/styles"
)

// SchemePickerSection identifies the active picker section.
type SchemePickerSection int

const (
	SchemePickerSectionCustom SchemePickerSection = iota
	SchemePickerSectionBuiltIn
)

// SchemePickerItem is one scheme in the picker.
type SchemePickerItem struct {
	Name    string
	BuiltIn bool
	Active  bool
}

// SchemePicker stores state for the scheme picker overlay.
type SchemePicker struct {
	Query   string
	Section SchemePickerSection
	Index   int
	Custom  []SchemePickerItem
	BuiltIn []SchemePickerItem
}

// NewSchemePicker creates a picker over schemes, which must already be
// sorted by name. The selection starts on the active scheme.
func NewSchemePicker(schemes []*models.Scheme, active string) *SchemePicker {
	p := &SchemePicker{}
	for _, scheme := range schemes {
		item := SchemePickerItem{Name: scheme.Name, BuiltIn: scheme.BuiltIn, Active: scheme.Name == active}
		if scheme.BuiltIn {
			p.BuiltIn = append(p.BuiltIn, item)
		} else {
			p.Custom = append(p.Custom, item)
		}
	}
	p.selectActive()
	return p
}

func (p *SchemePicker) selectActive() {
	for section, items := range map[SchemePickerSection][]SchemePickerItem{
		SchemePickerSectionCustom:  p.Custom,
		SchemePickerSectionBuiltIn: p.BuiltIn,
	} {
		for idx, item := range items {
			if item.Active {
				p.Section = section
				p.Index = idx
				return
			}
		}
	}
	if len(p.Custom) == 0 {
		p.Section = SchemePickerSectionBuiltIn
	}
}

// SetQuery replaces the filter and resets the selection.
func (p *SchemePicker) SetQuery(query string) {
	p.Query = query
	p.Index = 0
	p.ClampIndex()
}

// NextSection cycles the active section.
func (p *SchemePicker) NextSection() {
	if p.Section == SchemePickerSectionCustom {
		p.Section = SchemePickerSectionBuiltIn
	} else {
		p.Section = SchemePickerSectionCustom
	}
	p.Index = 0
}

// Move shifts the selection within the active section, wrapping around.
func (p *SchemePicker) Move(delta int) {
	items := p.activeItems()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if delta == 0 {
		return
	}
	idx := p.Index
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	idx += delta
	if idx < 0 {
		idx = len(items) - 1
	} else if idx >= len(items) {
		idx = 0
	}
	p.Index = idx
}

// ClampIndex ensures the selection index stays in bounds.
func (p *SchemePicker) ClampIndex() {
	items := p.activeItems()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Index >= len(items) {
		p.Index = len(items) - 1
	}
}

// SelectedItem returns the currently selected entry.
func (p *SchemePicker) SelectedItem() *SchemePickerItem {
	items := p.activeItems()
	if p.Index < 0 || p.Index >= len(items) {
		return nil
	}
	selected := items[p.Index]
	return &selected
}

// Render renders the picker lines.
func (p *SchemePicker) Render(styleSet styles.Styles) []string {
	lines := []string{
		styleSet.Accent.Render("Schemes"),
		styleSet.Muted.Render("Type to filter. Enter to use. Esc to close. Tab switches sections."),
		styleSet.Text.Render(fmt.Sprintf("> %s", p.Query)),
	}

	custom := p.filteredItems(p.Custom)
	builtIn := p.filteredItems(p.BuiltIn)
	if len(custom) == 0 && len(builtIn) == 0 {
		lines = append(lines, EmptySchemesFiltered(p.Query).Render(styleSet))
		return lines
	}

	lines = append(lines, p.renderSection(styleSet, "CUSTOM", custom, p.Section == SchemePickerSectionCustom)...)
	if len(p.Custom) == 0 && p.Query == "" {
		lines = append(lines, EmptyCustomSchemes().RenderCompact(styleSet))
	}
	lines = append(lines, "")
	lines = append(lines, p.renderSection(styleSet, "BUILT-IN", builtIn, p.Section == SchemePickerSectionBuiltIn)...)
	return lines
}

func (p *SchemePicker) renderSection(styleSet styles.Styles, title string, items []SchemePickerItem, active bool) []string {
	headingStyle := styleSet.Muted
	if active {
		headingStyle = styleSet.Accent
	}
	lines := []string{headingStyle.Render(title)}
	if len(items) == 0 {
		lines = append(lines, styleSet.Muted.Render("  (none)"))
		return lines
	}
	for idx, item := range items {
		label := truncate(item.Name, 60)
		if item.Active {
			label += " *"
		}
		if active && idx == p.Index {
			lines = append(lines, styleSet.Focus.Render("> "+label))
			continue
		}
		lines = append(lines, styleSet.Text.Render("  "+label))
	}
	return lines
}

func (p *SchemePicker) filteredItems(items []SchemePickerItem) []SchemePickerItem {
	tokens := strings.Fields(strings.ToLower(p.Query))
	if len(tokens) == 0 {
		return items
	}
	filtered := make([]SchemePickerItem, 0, len(items))
	for _, item := range items {
		if matchesTokens(strings.ToLower(item.Name), tokens) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (p *SchemePicker) activeItems() []SchemePickerItem {
	if p.Section == SchemePickerSectionBuiltIn {
		return p.filteredItems(p.BuiltIn)
	}
	return p.filteredItems(p.Custom)
}

func matchesTokens(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
