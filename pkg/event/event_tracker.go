package event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const contextKey = "eventCtx"

type EventTracker struct {
	eventService EventService
	extractor    FieldExtractor
	now          func() time.Time
}

func NewEventTracker(eventSvc EventService) *EventTracker {
	return &EventTracker{
		eventService: eventSvc,
		extractor:    &DefaultFieldExtractor{},
		now:          time.Now,
	}
}

// FromContext returns the event context opened by TrackEvent, or nil when
// the route is not tracked.
func FromContext(c *gin.Context) *EventContext {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	eventCtx, _ := v.(*EventContext)
	return eventCtx
}

// TrackEvent emits one event per successful request. Handlers record what
// changed on the context returned by FromContext.
func (t *EventTracker) TrackEvent(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventCtx := &EventContext{
			Resource:  resource,
			Operation: action,
		}
		c.Set(contextKey, eventCtx)

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest || len(c.Errors) > 0 {
			return
		}
		if eventCtx.NewData == nil && eventCtx.OldData == nil {
			return
		}

		event, err := t.build(eventCtx)
		if err != nil {
			log.Error().Err(err).Str("resource", resource).Msg("Failed to build event")
			return
		}
		if rid, ok := c.Get("request_id"); ok {
			if event.Metadata == nil {
				event.Metadata = make(map[string]interface{})
			}
			event.Metadata["requestId"] = rid
		}

		// The response is already written; the emit must outlive request cancellation.
		if err := t.eventService.Emit(context.WithoutCancel(c.Request.Context()), event); err != nil {
			log.Error().
				Err(err).
				Str("event_type", string(event.Type)).
				Str("resource_id", event.ResourceID).
				Msg("Failed to emit event")
		}
	}
}

func (t *EventTracker) build(eventCtx *EventContext) (*Event, error) {
	data := eventCtx.NewData
	if data == nil {
		data = eventCtx.OldData
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	event := &Event{
		ID:         uuid.New(),
		Type:       EventType(fmt.Sprintf("%s_%s", strings.ToUpper(eventCtx.Resource), strings.ToUpper(eventCtx.Operation))),
		Resource:   eventCtx.Resource,
		Action:     eventCtx.Operation,
		ResourceID: eventCtx.ResourceID,
		Payload:    payload,
		Metadata:   eventCtx.Additional,
		OccurredAt: t.now().UTC(),
	}
	if eventCtx.OldData != nil && eventCtx.NewData != nil {
		if changes := t.extractor.ExtractChanges(eventCtx.OldData, eventCtx.NewData, nil); len(changes) > 0 {
			delete(changes, "updatedAt")
			event.Changes = changes
		}
	}
	return event, nil
}
