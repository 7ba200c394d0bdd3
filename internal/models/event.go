package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the scheme history.
type EventType string

const (
	EventTypeSchemeForked       EventType = "scheme.forked"
	EventTypeSchemeDuplicated   EventType = "scheme.duplicated"
	EventTypeSchemeRenamed      EventType = "scheme.renamed"
	EventTypeSchemeRemoved      EventType = "scheme.removed"
	EventTypeSchemeImported     EventType = "scheme.imported"
	EventTypeSchemeColorChanged EventType = "scheme.color_changed"

	// System events
	EventTypeWarning EventType = "warning"
)

// EventTypes lists every event type written to the history log.
var EventTypes = []EventType{
	EventTypeSchemeForked,
	EventTypeSchemeDuplicated,
	EventTypeSchemeRenamed,
	EventTypeSchemeRemoved,
	EventTypeSchemeImported,
	EventTypeSchemeColorChanged,
	EventTypeWarning,
}

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeScheme EntityType = "scheme"
	EntityTypeSystem EntityType = "system"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the name of the related scheme.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// SchemeForkedPayload is the payload for scheme.forked and scheme.duplicated events.
type SchemeForkedPayload struct {
	Source string `json:"source"`
	Name   string `json:"name"`
}

// SchemeRenamedPayload is the payload for scheme.renamed events.
type SchemeRenamedPayload struct {
	OldName   string `json:"old_name"`
	NewName   string `json:"new_name"`
	Requested string `json:"requested,omitempty"`
}

// ColorChangedPayload is the payload for scheme.color_changed events.
type ColorChangedPayload struct {
	Role     string `json:"role"`
	OldColor Color  `json:"old_color"`
	NewColor Color  `json:"new_color"`
}

// WarningPayload is the payload for warning events.
type WarningPayload struct {
	Warning string `json:"warning"`
	Context string `json:"context,omitempty"`
}
