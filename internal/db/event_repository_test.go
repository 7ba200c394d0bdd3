package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/opencode-ai/schemer/internal/models"
)

func createEvent(t *testing.T, repo *EventRepository, event *models.Event) {
	t.Helper()
	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestEventRepositoryCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	payload, _ := json.Marshal(models.SchemeForkedPayload{Source: "Darcula", Name: "Darcula 1"})
	event := &models.Event{
		Type:       models.EventTypeSchemeForked,
		EntityType: models.EntityTypeScheme,
		EntityID:   "Darcula 1",
		Payload:    payload,
		Metadata:   map[string]string{"origin": "tui"},
	}
	createEvent(t, repo, event)
	if event.ID == "" {
		t.Fatal("expected ID to be set")
	}

	events, err := repo.History(ctx, HistoryFilter{Scheme: "Darcula 1"})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	got := events[0]
	if got.ID != event.ID || got.Type != models.EventTypeSchemeForked {
		t.Fatalf("unexpected event: %+v", got)
	}
	if !got.Timestamp.Equal(event.Timestamp) {
		t.Fatalf("timestamp changed: got %v want %v", got.Timestamp, event.Timestamp)
	}
	if got.Metadata["origin"] != "tui" {
		t.Fatalf("expected metadata to round-trip, got %v", got.Metadata)
	}
	if string(got.Payload) != string(payload) {
		t.Fatalf("expected payload to round-trip, got %s", got.Payload)
	}
}

func TestEventRepositoryCreateValidates(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))
	err := repo.Create(context.Background(), &models.Event{Type: models.EventTypeSchemeRemoved})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestEventRepositoryHistoryNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createEvent(t, repo, &models.Event{
			Timestamp:  base.Add(time.Duration(i) * time.Millisecond),
			Type:       models.EventTypeSchemeColorChanged,
			EntityType: models.EntityTypeScheme,
			EntityID:   "Night",
			Metadata:   map[string]string{"seq": fmt.Sprint(i)},
		})
	}
	createEvent(t, repo, &models.Event{
		Timestamp:  base.Add(time.Second),
		Type:       models.EventTypeSchemeRemoved,
		EntityType: models.EntityTypeScheme,
		EntityID:   "Other",
	})

	events, err := repo.History(ctx, HistoryFilter{Scheme: "Night", Limit: 3})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"4", "3", "2"} {
		if got := events[i].Metadata["seq"]; got != want {
			t.Errorf("event %d: expected seq %s, got %s", i, want, got)
		}
	}

	all, err := repo.History(ctx, HistoryFilter{Limit: 2})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(all) != 2 || all[0].EntityID != "Other" || all[1].Metadata["seq"] != "4" {
		t.Fatalf("unexpected unfiltered history: %+v", all)
	}
}

func TestEventRepositoryHistoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	createEvent(t, repo, &models.Event{
		Timestamp:  base,
		Type:       models.EventTypeSchemeRenamed,
		EntityType: models.EntityTypeScheme,
		EntityID:   "Night",
	})
	createEvent(t, repo, &models.Event{
		Timestamp:  base.Add(time.Minute),
		Type:       models.EventTypeSchemeColorChanged,
		EntityType: models.EntityTypeScheme,
		EntityID:   "Night",
	})
	createEvent(t, repo, &models.Event{
		Timestamp:  base.Add(2 * time.Minute),
		Type:       models.EventTypeWarning,
		EntityType: models.EntityTypeSystem,
		EntityID:   "Night",
	})

	renamed, err := repo.History(ctx, HistoryFilter{Type: models.EventTypeSchemeRenamed})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(renamed) != 1 || renamed[0].Type != models.EventTypeSchemeRenamed {
		t.Fatalf("unexpected type filter result: %+v", renamed)
	}

	scheme, err := repo.History(ctx, HistoryFilter{Scheme: "Night"})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(scheme) != 2 {
		t.Fatalf("expected system events excluded from scheme history, got %d", len(scheme))
	}

	since, err := repo.History(ctx, HistoryFilter{Since: base.Add(time.Minute)})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(since) != 2 || since[1].Type != models.EventTypeSchemeColorChanged {
		t.Fatalf("unexpected since filter result: %+v", since)
	}
}
