package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/messaging"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

type failingBroker struct{ messaging.Broker }

func (failingBroker) Publish(context.Context, string, interface{}) error {
	return errors.New("unavailable")
}

func TestEmitPublishesToChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := messaging.NewMemoryBroker(4)
	sub, err := broker.Subscribe(ctx, DefaultChannel)
	require.NoError(t, err)

	svc := NewService(broker, "", nil, metrics.NewMetrics(prometheus.NewRegistry(), "test"))
	assert.Equal(t, DefaultChannel, svc.Channel())

	ev := &event.Event{
		ID:         uuid.New(),
		Type:       "PATIENT_CREATE",
		Resource:   "patient",
		Action:     event.ActionCreate,
		ResourceID: "5",
		Payload:    json.RawMessage(`{"id":"5"}`),
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, svc.Emit(ctx, ev))

	select {
	case msg := <-sub:
		var got event.Event
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, ev.ID, got.ID)
		assert.Equal(t, ev.Type, got.Type)
		assert.Equal(t, "5", got.ResourceID)
		assert.JSONEq(t, `{"id":"5"}`, string(got.Payload))
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestEmitReportsBrokerFailure(t *testing.T) {
	svc := NewService(failingBroker{}, "custom", nil, nil)

	err := svc.Emit(context.Background(), &event.Event{ID: uuid.New(), Type: "PATIENT_DELETE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PATIENT_DELETE")
}
