package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

// Actions tracked on data routes
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// EventContext is filled in by handlers while a tracked request runs.
type EventContext struct {
	Resource   string
	Operation  string
	ResourceID string
	OldData    interface{}
	NewData    interface{}
	Additional map[string]interface{}
}

// Event describes one successful record change.
type Event struct {
	ID         uuid.UUID              `json:"id"`
	Type       EventType              `json:"type"`
	Resource   string                 `json:"resource"`
	Action     string                 `json:"action"`
	ResourceID string                 `json:"resourceId"`
	Payload    json.RawMessage        `json:"payload,omitempty"`
	Changes    map[string]interface{} `json:"changes,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

type EventService interface {
	Emit(ctx context.Context, event *Event) error
}

type FieldExtractor interface {
	ExtractFields(obj interface{}, fields []string) map[string]interface{}
	ExtractChanges(old, new interface{}, fields []string) map[string]interface{}
}
