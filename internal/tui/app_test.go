package tui

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/schemer/internal/config"
	"github.com/opencode-ai/schemer/internal/editor"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/preview"
	"github.com/opencode-ai/schemer/internal/schemes"
	"github.com/opencode-ai/schemer/internal/settings"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

type fixture struct {
	kv       *memoryKV
	settings *settings.Store
	model    model
	warnings []editor.Warning
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{kv: &memoryKV{data: make(map[string]string)}}
	f.settings = settings.NewStore(f.kv, config.DefaultConfig().Editor)

	languages, err := preview.NewLanguages()
	if err != nil {
		t.Fatalf("NewLanguages: %v", err)
	}
	highlighter := preview.NewHighlighter(languages)

	registry := schemes.NewRegistry(schemes.NewStore(f.kv))
	session := editor.New(registry, editor.Options{
		Applier:   highlighter,
		Settings:  f.settings,
		OnWarning: func(w editor.Warning) { f.warnings = append(f.warnings, w) },
	})
	if err := session.Load(ctx, models.DefaultSchemeName); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f.model = newModel(Config{
		Session:     session,
		Languages:   languages,
		Highlighter: highlighter,
		Resolver:    preview.NewResolver(f.settings, nil, languages),
		Settings:    f.settings,
		Warnings: func() []editor.Warning {
			out := f.warnings
			f.warnings = nil
			return out
		},
		Language: "cpp",
	})
	return f
}

func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	updated, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	f.model = updated
	return cmd
}

func (f *fixture) press(t *testing.T, key string) tea.Cmd {
	t.Helper()
	switch key {
	case "enter":
		return f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func (f *fixture) active() *models.Scheme {
	return f.model.cfg.Session.Active()
}

func TestEditColorCommitForksBuiltIn(t *testing.T) {
	f := newFixture(t)

	f.press(t, "enter")
	if f.model.mode != modeEditColor {
		t.Fatalf("expected edit mode, got %v", f.model.mode)
	}
	if got := f.model.input.Value(); got != "282828" {
		t.Fatalf("expected prefilled color, got %q", got)
	}

	f.model.input.SetValue("f00")
	f.press(t, "enter")

	active := f.active()
	if active.Name != "Darcula 1" || active.BuiltIn {
		t.Fatalf("expected custom fork, got %q (built-in %v)", active.Name, active.BuiltIn)
	}
	if got := active.Editor[models.RoleBackground]; got != "#f00" {
		t.Fatalf("expected #f00, got %q", got)
	}
	if _, ok := f.kv.data[models.SchemeKey("Darcula 1")]; !ok {
		t.Fatal("expected fork to be persisted")
	}
	if f.model.mode != modeBrowse {
		t.Fatalf("expected browse mode after commit, got %v", f.model.mode)
	}
}

func TestEditColorCancelRestoresPreview(t *testing.T) {
	f := newFixture(t)

	f.press(t, "enter")
	f.model.input.SetValue("")
	f.press(t, "a")
	f.press(t, "b")
	f.press(t, "c")

	draft := f.model.cfg.Highlighter.Scheme()
	if got := draft.Editor[models.RoleBackground]; got != "#abc" {
		t.Fatalf("expected live draft color, got %q", got)
	}

	f.press(t, "esc")

	if f.active().Name != models.DefaultSchemeName {
		t.Fatalf("cancel must not fork, active is %q", f.active().Name)
	}
	if got := f.model.cfg.Highlighter.Scheme().Editor[models.RoleBackground]; got != "#282828" {
		t.Fatalf("expected restored color, got %q", got)
	}
	if len(f.kv.data) != 1 {
		t.Fatalf("expected only the active scheme setting to be stored, got %v", f.kv.data)
	}
}

func TestRemoveBuiltInShowsWarning(t *testing.T) {
	f := newFixture(t)

	f.press(t, "x")

	if f.active().Name != models.DefaultSchemeName {
		t.Fatalf("expected built-in to stay active, got %q", f.active().Name)
	}
	if !strings.Contains(f.model.warning, "built-in") {
		t.Fatalf("expected built-in warning, got %q", f.model.warning)
	}
}

func TestRenamePromptResolvesCollisions(t *testing.T) {
	f := newFixture(t)

	f.press(t, "d")
	if f.active().Name != "Darcula 1" {
		t.Fatalf("expected duplicate to become active, got %q", f.active().Name)
	}

	f.press(t, "r")
	if got := f.model.input.Value(); got != "Darcula 1" {
		t.Fatalf("expected current name in prompt, got %q", got)
	}
	f.model.input.SetValue("Monokai")
	f.press(t, "enter")

	if f.active().Name != "Monokai 1" {
		t.Fatalf("expected unique name, got %q", f.active().Name)
	}
	if _, ok := f.kv.data[models.SchemeKey("Darcula 1")]; ok {
		t.Fatal("expected old key to be removed")
	}
}

func TestPickerSelectsScheme(t *testing.T) {
	f := newFixture(t)

	f.press(t, "s")
	if f.model.mode != modePicker {
		t.Fatalf("expected picker mode, got %v", f.model.mode)
	}
	for _, r := range "mono" {
		f.press(t, string(r))
	}
	f.press(t, "enter")

	if f.active().Name != "Monokai" {
		t.Fatalf("expected Monokai, got %q", f.active().Name)
	}
	if f.model.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %v", f.model.mode)
	}
}

func TestLanguageSwitchLoadsSampleAndPersists(t *testing.T) {
	f := newFixture(t)

	cmd := f.press(t, "l")
	if cmd == nil {
		t.Fatal("expected preview command")
	}
	if f.model.language != "go" {
		t.Fatalf("expected go, got %q", f.model.language)
	}
	stored, err := f.settings.Language(context.Background())
	if err != nil || stored != "go" {
		t.Fatalf("expected stored language go, got %q (%v)", stored, err)
	}

	f.send(t, cmd())

	if f.model.loading {
		t.Fatal("expected loading to finish")
	}
	if f.model.doc.Source != preview.SourceSample || f.model.doc.Alias != "go" {
		t.Fatalf("unexpected document %+v", f.model.doc)
	}
	if f.model.rendered == "" {
		t.Fatal("expected rendered preview")
	}
}

func TestSupersededPreviewIsIgnored(t *testing.T) {
	f := newFixture(t)

	first := f.press(t, "l")
	second := f.press(t, "l")

	f.send(t, first())
	if !f.model.loading {
		t.Fatal("superseded result must not finish loading")
	}

	f.send(t, second())
	if f.model.doc.Alias != "javascript" {
		t.Fatalf("expected javascript document, got %q", f.model.doc.Alias)
	}
}

func TestMoveClampsAtEnds(t *testing.T) {
	f := newFixture(t)

	f.press(t, "k")
	if f.model.roleIndex != 0 {
		t.Fatalf("expected index 0, got %d", f.model.roleIndex)
	}
	f.press(t, "G")
	if f.model.roleIndex != len(f.model.roles)-1 {
		t.Fatalf("expected last index, got %d", f.model.roleIndex)
	}
	f.press(t, "j")
	if f.model.roleIndex != len(f.model.roles)-1 {
		t.Fatalf("expected clamp at end, got %d", f.model.roleIndex)
	}
}

func TestSmallViewLines(t *testing.T) {
	f := newFixture(t)
	f.send(t, tea.WindowSizeMsg{Width: 40, Height: 10})

	view := f.model.View()
	if !strings.Contains(view, "Terminal too small (40x10).") {
		t.Fatalf("expected small view, got %q", view)
	}
}
