// Package cli provides the wiring shared by commands that edit schemes.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/opencode-ai/schemer/internal/config"
	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/editor"
	"github.com/opencode-ai/schemer/internal/events"
	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/preview"
	"github.com/opencode-ai/schemer/internal/schemes"
	"github.com/opencode-ai/schemer/internal/settings"
	"github.com/rs/zerolog"
)

// app bundles an open database with the services built on it.
type app struct {
	config      *config.Config
	database    *db.DB
	settings    *settings.Store
	eventRepo   *db.EventRepository
	registry    *schemes.Registry
	session     *editor.Session
	languages   *preview.Languages
	highlighter *preview.Highlighter
	resolver    *preview.Resolver
	logger      zerolog.Logger

	warnings []editor.Warning
}

// openApp opens the database and loads the session with the last active
// scheme.
func openApp(ctx context.Context) (*app, error) {
	cfg := GetConfig()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	database, err := openDatabase()
	if err != nil {
		return nil, err
	}

	languages, err := preview.NewLanguages()
	if err != nil {
		database.Close()
		return nil, err
	}

	kv := db.NewKVRepository(database)
	a := &app{
		config:      cfg,
		database:    database,
		settings:    settings.NewStore(kv, cfg.Editor),
		eventRepo:   db.NewEventRepository(database),
		registry:    schemes.NewRegistry(schemes.NewStore(kv)),
		languages:   languages,
		highlighter: preview.NewHighlighter(languages),
		logger:      logging.Component("cli"),
	}
	a.registry.SetPresetDirs(schemes.PresetSearchPaths(config.ConfigDir()))
	a.resolver = preview.NewResolver(a.settings, preview.NewFetcher(cfg.Preview.BaseURL, cfg.Preview.Timeout), languages)
	a.session = editor.New(a.registry, editor.Options{
		Applier:       a.highlighter,
		Settings:      a.settings,
		Events:        a.eventRepo,
		DefaultScheme: cfg.Editor.DefaultScheme,
		OnWarning:     a.recordWarning,
	})

	active, err := a.settings.Scheme(ctx)
	if err != nil {
		active = cfg.Editor.DefaultScheme
	}
	if err := a.session.Load(ctx, active); err != nil {
		database.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) recordWarning(w editor.Warning) {
	a.warnings = append(a.warnings, w)
	if err := events.LogWarning(context.Background(), a.eventRepo, w.Op, w.Error()); err != nil {
		a.logger.Debug().Err(err).Str("op", w.Op).Msg("failed to record warning event")
	}
}

// Close reports unflushed warnings on stderr and closes the database.
func (a *app) Close() error {
	for _, w := range a.warnings {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorize("Warning:", colorYellow), w)
	}
	return a.database.Close()
}

// lookup returns the named scheme, or the active one when name is empty.
func (a *app) lookup(name string) (*models.Scheme, error) {
	if name == "" {
		return a.session.Active(), nil
	}
	scheme, ok := a.registry.Get(name)
	if !ok {
		return nil, schemeNotFound(name)
	}
	return scheme, nil
}

// activate makes name the active scheme. An empty name keeps the current one.
func (a *app) activate(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if !a.registry.Has(name) {
		return schemeNotFound(name)
	}
	a.session.SetActive(ctx, name)
	return nil
}

func schemeNotFound(name string) error {
	return &PreflightError{
		Message:  fmt.Sprintf("scheme %q not found", name),
		Hint:     "Scheme names are case-sensitive",
		NextStep: "schemer schemes list",
	}
}
