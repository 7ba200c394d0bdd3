// Package events provides helper functions for logging scheme history.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opencode-ai/schemer/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogSchemeForked records a copy-on-write fork of a built-in scheme.
func LogSchemeForked(ctx context.Context, repo Repository, source, name string) error {
	return logScheme(ctx, repo, models.EventTypeSchemeForked, name, models.SchemeForkedPayload{
		Source: source,
		Name:   name,
	})
}

// LogSchemeDuplicated records an explicit duplicate.
func LogSchemeDuplicated(ctx context.Context, repo Repository, source, name string) error {
	return logScheme(ctx, repo, models.EventTypeSchemeDuplicated, name, models.SchemeForkedPayload{
		Source: source,
		Name:   name,
	})
}

// LogSchemeRenamed records a rename. requested is the name the user asked
// for before uniqueness resolution.
func LogSchemeRenamed(ctx context.Context, repo Repository, oldName, newName, requested string) error {
	payload := models.SchemeRenamedPayload{
		OldName: oldName,
		NewName: newName,
	}
	if requested != newName {
		payload.Requested = requested
	}
	return logScheme(ctx, repo, models.EventTypeSchemeRenamed, newName, payload)
}

// LogSchemeRemoved records a removal.
func LogSchemeRemoved(ctx context.Context, repo Repository, name string) error {
	return logScheme(ctx, repo, models.EventTypeSchemeRemoved, name, nil)
}

// LogSchemeImported records a scheme added from an export file.
func LogSchemeImported(ctx context.Context, repo Repository, name string) error {
	return logScheme(ctx, repo, models.EventTypeSchemeImported, name, nil)
}

// LogColorChanged records a committed color edit.
func LogColorChanged(ctx context.Context, repo Repository, name, role string, oldColor, newColor models.Color) error {
	return logScheme(ctx, repo, models.EventTypeSchemeColorChanged, name, models.ColorChangedPayload{
		Role:     role,
		OldColor: oldColor,
		NewColor: newColor,
	})
}

// LogWarning records a non-fatal failure.
func LogWarning(ctx context.Context, repo Repository, warning, detail string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	payload, err := json.Marshal(models.WarningPayload{Warning: warning, Context: detail})
	if err != nil {
		return fmt.Errorf("failed to marshal warning payload: %w", err)
	}
	return repo.Create(ctx, &models.Event{
		Type:       models.EventTypeWarning,
		EntityType: models.EntityTypeSystem,
		EntityID:   "schemer",
		Payload:    payload,
	})
}

func logScheme(ctx context.Context, repo Repository, eventType models.EventType, name string, payload any) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if name == "" {
		return fmt.Errorf("scheme name is required")
	}

	event := &models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeScheme,
		EntityID:   name,
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		event.Payload = data
	}

	return repo.Create(ctx, event)
}
