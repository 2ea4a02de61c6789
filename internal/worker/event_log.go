package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/logger"
	"github.com/jwalitptl/baseline-api/pkg/messaging"
)

// EventLogWorker tails the record-change channel and writes one log entry
// per event.
type EventLogWorker struct {
	broker   messaging.Broker
	channel  string
	logger   *logger.Logger
	workerID string

	mu     sync.Mutex
	counts map[event.EventType]int
}

func NewEventLogWorker(broker messaging.Broker, channel string, log *logger.Logger) *EventLogWorker {
	if log == nil {
		log = logger.Nop()
	}
	workerID := fmt.Sprintf("worker-%s", generateWorkerID())
	return &EventLogWorker{
		broker:   broker,
		channel:  channel,
		logger:   log.WithFields(map[string]interface{}{"worker_id": workerID}),
		workerID: workerID,
		counts:   make(map[event.EventType]int),
	}
}

// Start blocks until ctx is done or the subscription ends.
func (w *EventLogWorker) Start(ctx context.Context) error {
	w.logger.Info("Worker started", "channel", w.channel)
	defer w.logger.Info("Worker shutting down")

	return messaging.Consume(ctx, w.broker, w.channel, w.handle, w.logger.Zerolog())
}

func (w *EventLogWorker) handle(msg []byte) error {
	var ev event.Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		return fmt.Errorf("failed to decode event: %w", err)
	}

	w.mu.Lock()
	w.counts[ev.Type]++
	w.mu.Unlock()

	fields := []interface{}{
		"event_id", ev.ID.String(),
		"event_type", string(ev.Type),
		"resource", ev.Resource,
		"resource_id", ev.ResourceID,
		"lag", time.Since(ev.OccurredAt).String(),
	}
	if len(ev.Changes) > 0 {
		changed := make([]string, 0, len(ev.Changes))
		for k := range ev.Changes {
			changed = append(changed, k)
		}
		fields = append(fields, "changed", changed)
	}
	w.logger.Info("Record event", fields...)
	return nil
}

// Counts returns how many events of each type have been handled.
func (w *EventLogWorker) Counts() map[event.EventType]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[event.EventType]int, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

func generateWorkerID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d", hostname, time.Now().UnixNano())
}
