// Package tui implements the schemer terminal user interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/schemer/internal/editor"
	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/preview"
	"github.com/opencode-ai/schemer/internal/tui/components"
	"github.com/opencode-ai/schemer/internal/tui/styles"
)

// LanguageStore remembers the preview language between runs.
type LanguageStore interface {
	SetLanguage(ctx context.Context, alias string) error
}

// Config wires the TUI to an editing session.
type Config struct {
	Session     *editor.Session
	Languages   *preview.Languages
	Highlighter *preview.Highlighter
	Resolver    *preview.Resolver
	Settings    LanguageStore
	// Warnings returns and clears warnings raised since the last call.
	Warnings func() []editor.Warning
	Language string
	Theme    string
}

// Run launches the TUI program.
func Run(cfg Config) error {
	program := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

const (
	minWidth     = 60
	minHeight    = 15
	warningTTL   = 6 * time.Second
	fetchTimeout = 15 * time.Second
	previewSlot  = "tui"
	roleWidth    = 34
)

type mode int

const (
	modeBrowse mode = iota
	modeEditColor
	modeRename
	modePicker
)

type model struct {
	cfg    Config
	styles styles.Styles
	logger zerolog.Logger
	width  int
	height int

	mode      mode
	roles     []string
	roleIndex int
	input     textinput.Model
	picker    *components.SchemePicker

	language string
	doc      preview.Document
	loading  bool
	rendered string

	warning   string
	warningAt time.Time
	now       time.Time
}

func newModel(cfg Config) model {
	input := textinput.New()
	input.CharLimit = 64

	language := cfg.Language
	if _, err := cfg.Languages.Lookup(language); err != nil {
		language = cfg.Languages.Next("")
	}

	return model{
		cfg:      cfg,
		styles:   styles.BuildStyles(styles.ThemeByName(cfg.Theme)),
		logger:   logging.Component("tui"),
		roles:    models.AllRoles(),
		input:    input,
		language: language,
		loading:  true,
		now:      time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.beginPreview(), tickCmd())
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type previewLoadedMsg struct {
	doc preview.Document
	err error
}

// beginPreview starts resolving the current language's document. Results
// from earlier requests are dropped when they arrive.
func (m *model) beginPreview() tea.Cmd {
	resolver := m.cfg.Resolver
	alias := m.language
	generation := resolver.Begin(previewSlot)
	m.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		doc, err := resolver.ResolveGeneration(ctx, previewSlot, alias, generation)
		return previewLoadedMsg{doc: doc, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		if m.warning != "" && m.now.Sub(m.warningAt) > warningTTL {
			m.warning = ""
		}
		return m, tickCmd()
	case previewLoadedMsg:
		return m.handlePreview(msg), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeEditColor, modeRename:
			return m.updatePrompt(msg)
		case modePicker:
			return m.updatePicker(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	if m.mode == modeEditColor || m.mode == modeRename {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handlePreview(msg previewLoadedMsg) model {
	if errors.Is(msg.err, preview.ErrStale) || !m.cfg.Resolver.Current(previewSlot, msg.doc.Generation) {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.setWarning(fmt.Sprintf("preview: %v", msg.err))
		return m
	}
	m.doc = msg.doc
	m.renderPreview()
	return m
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	active := m.cfg.Session.Active()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveRole(-1)
	case "down", "j":
		m.moveRole(1)
	case "pgup":
		m.moveRole(-10)
	case "pgdown":
		m.moveRole(10)
	case "home", "g":
		m.roleIndex = 0
	case "end", "G":
		m.roleIndex = len(m.roles) - 1
	case "enter", "e":
		color, _ := active.ColorFor(m.currentRole())
		return m, m.openPrompt(modeEditColor, "#", color.String(), "rrggbb")
	case "c":
		m.commitColor(ctx, "")
	case "r":
		return m, m.openPrompt(modeRename, "name: ", active.Name, active.Name)
	case "d":
		if _, err := m.cfg.Session.Duplicate(ctx); err != nil {
			m.setWarning(err.Error())
		}
		m.afterEdit()
	case "x", "delete":
		if active.BuiltIn {
			m.setWarning(fmt.Sprintf("%s is built-in and cannot be removed", active.Name))
			break
		}
		if _, err := m.cfg.Session.Remove(ctx); err != nil {
			m.setWarning(err.Error())
		}
		m.afterEdit()
	case "s", "/":
		m.picker = components.NewSchemePicker(m.cfg.Session.Registry().ListSorted(), active.Name)
		m.mode = modePicker
	case "l", "tab":
		return m, m.switchLanguage(m.cfg.Languages.Next(m.language))
	case "L", "shift+tab":
		return m, m.switchLanguage(m.cfg.Languages.Prev(m.language))
	}
	return m, nil
}

func (m *model) openPrompt(next mode, prompt, value, placeholder string) tea.Cmd {
	m.mode = next
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	if next == modeEditColor {
		value = strings.TrimPrefix(value, "#")
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) closePrompt() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
	m.cfg.Highlighter.Apply(m.cfg.Session.Active())
	m.renderPreview()
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		value := m.input.Value()
		editing := m.mode
		m.closePrompt()
		if editing == modeEditColor {
			m.commitColor(ctx, value)
		} else {
			m.commitRename(ctx, value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeEditColor {
		m.previewDraft()
	}
	return m, cmd
}

// previewDraft shows the typed color without committing it.
func (m *model) previewDraft() {
	draft := m.cfg.Session.Active().Clone()
	if err := draft.SetColor(m.currentRole(), models.NormalizeColor(m.input.Value())); err != nil {
		return
	}
	m.cfg.Highlighter.Apply(draft)
	m.renderPreview()
}

func (m *model) commitColor(ctx context.Context, value string) {
	if _, err := m.cfg.Session.SetColor(ctx, m.currentRole(), value); err != nil {
		m.setWarning(err.Error())
	}
	m.afterEdit()
}

func (m *model) commitRename(ctx context.Context, value string) {
	if _, err := m.cfg.Session.Rename(ctx, value); err != nil {
		m.setWarning(err.Error())
	}
	m.afterEdit()
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.picker = nil
	case "enter":
		if item := m.picker.SelectedItem(); item != nil {
			m.cfg.Session.SetActive(context.Background(), item.Name)
			m.afterEdit()
		}
		m.mode = modeBrowse
		m.picker = nil
	case "up", "ctrl+p":
		m.picker.Move(-1)
	case "down", "ctrl+n":
		m.picker.Move(1)
	case "tab":
		m.picker.NextSection()
	case "backspace":
		if query := []rune(m.picker.Query); len(query) > 0 {
			m.picker.SetQuery(string(query[:len(query)-1]))
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.picker.SetQuery(m.picker.Query + string(msg.Runes))
		}
	}
	return m, nil
}

func (m *model) switchLanguage(alias string) tea.Cmd {
	if alias == "" || alias == m.language {
		return nil
	}
	m.language = alias
	if m.cfg.Settings != nil {
		if err := m.cfg.Settings.SetLanguage(context.Background(), alias); err != nil {
			m.setWarning(fmt.Sprintf("could not save language: %v", err))
		}
	}
	return m.beginPreview()
}

// afterEdit picks up warnings raised by the session and re-renders.
func (m *model) afterEdit() {
	if m.cfg.Warnings != nil {
		if warnings := m.cfg.Warnings(); len(warnings) > 0 {
			m.setWarning(warnings[len(warnings)-1].Error())
		}
	}
	m.renderPreview()
}

func (m *model) setWarning(text string) {
	m.logger.Debug().Str("warning", text).Msg("tui warning")
	m.warning = text
	m.warningAt = m.now
}

func (m *model) moveRole(delta int) {
	m.roleIndex += delta
	if m.roleIndex < 0 {
		m.roleIndex = 0
	}
	if m.roleIndex >= len(m.roles) {
		m.roleIndex = len(m.roles) - 1
	}
}

func (m model) currentRole() string {
	return m.roles[m.roleIndex]
}

func (m *model) renderPreview() {
	if m.doc.Text == "" {
		m.rendered = ""
		return
	}
	rendered, err := m.cfg.Highlighter.Render(m.doc.Alias, m.doc.Text)
	if err != nil {
		m.rendered = m.doc.Text
		return
	}
	m.rendered = rendered
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		return joinLines(m.smallViewLines()) + "\n"
	}

	active := m.cfg.Session.Active()
	header := fmt.Sprintf("%s  %s  %s",
		m.styles.Title.Render(active.Name),
		components.RenderSchemeBadge(m.styles, active, m.cfg.Session.PendingWrite()),
		m.styles.Muted.Render("language: "+m.language),
	)

	bodyHeight := m.height - 6
	if bodyHeight < 5 {
		bodyHeight = 20
	}

	var body string
	if m.mode == modePicker && m.picker != nil {
		body = joinLines(m.picker.Render(m.styles))
	} else {
		list := components.RoleList{
			Roles:    m.roles,
			Selected: m.roleIndex,
			Height:   bodyHeight,
			Width:    roleWidth,
		}
		left := lipgloss.NewStyle().Width(roleWidth + 4).Render(joinLines(list.Render(m.styles, active)))
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, m.previewPane(bodyHeight))
	}

	lines := []string{header, "", body, ""}
	if m.mode == modeEditColor || m.mode == modeRename {
		lines = append(lines, m.input.View())
	} else if m.warning != "" {
		lines = append(lines, m.styles.Warning.Render("! "+m.warning))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.hintBar())
	return joinLines(lines) + "\n"
}

func (m model) previewPane(height int) string {
	width := m.width - roleWidth - 8
	if width < 20 {
		width = 60
	}

	content := m.rendered
	switch {
	case m.loading && content == "":
		content = components.LoadingPreview(m.language).Render(m.styles)
	case content == "":
		content = components.EmptyPreview(m.language).Render(m.styles)
	}

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return m.styles.Panel.Width(width).Render(joinLines(lines))
}

func (m model) hintBar() string {
	hints := components.BrowseKeyHints(m.cfg.Session.Active().BuiltIn)
	switch m.mode {
	case modeEditColor, modeRename:
		hints = components.PromptKeyHints()
	case modePicker:
		hints = components.PickerKeyHints()
	}
	return components.RenderCenteredHints(m.styles, hints, m.width)
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
