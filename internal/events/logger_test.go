package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/opencode-ai/schemer/internal/models"
)

type recordingRepo struct {
	events []*models.Event
}

func (r *recordingRepo) Create(ctx context.Context, event *models.Event) error {
	r.events = append(r.events, event)
	return nil
}

func TestLogColorChanged(t *testing.T) {
	repo := &recordingRepo{}

	if err := LogColorChanged(context.Background(), repo, "Darcula 1", "keyword", "#cc7832", ""); err != nil {
		t.Fatalf("LogColorChanged: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}

	event := repo.events[0]
	if event.Type != models.EventTypeSchemeColorChanged || event.EntityID != "Darcula 1" {
		t.Fatalf("unexpected event: %+v", event)
	}

	var payload map[string]any
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["role"] != "keyword" || payload["old_color"] != "#cc7832" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if v, ok := payload["new_color"]; !ok || v != nil {
		t.Fatalf("expected cleared color to be null, got %v", v)
	}
}

func TestLogSchemeRenamedOmitsRequestedWhenUnchanged(t *testing.T) {
	repo := &recordingRepo{}

	if err := LogSchemeRenamed(context.Background(), repo, "Foo", "Bar", "Bar"); err != nil {
		t.Fatalf("LogSchemeRenamed: %v", err)
	}
	var payload models.SchemeRenamedPayload
	if err := json.Unmarshal(repo.events[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Requested != "" {
		t.Fatalf("expected no requested name, got %q", payload.Requested)
	}
}

func TestLogRequiresRepository(t *testing.T) {
	if err := LogSchemeRemoved(context.Background(), nil, "Foo"); err == nil {
		t.Fatal("expected error without repository")
	}
	if err := LogSchemeRemoved(context.Background(), &recordingRepo{}, ""); err == nil {
		t.Fatal("expected error without scheme name")
	}
}
