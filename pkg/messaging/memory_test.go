package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestMemoryBrokerFanOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewMemoryBroker(4)
	first, err := b.Subscribe(ctx, "records.events")
	require.NoError(t, err)
	second, err := b.Subscribe(ctx, "records.events")
	require.NoError(t, err)
	other, err := b.Subscribe(ctx, "other")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "records.events", map[string]string{"type": "PATIENT_CREATE"}))

	assert.JSONEq(t, `{"type":"PATIENT_CREATE"}`, string(receive(t, first)))
	assert.JSONEq(t, `{"type":"PATIENT_CREATE"}`, string(receive(t, second)))
	assert.Empty(t, other)
}

func TestMemoryBrokerRawPayload(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker(1)
	ch, err := b.Subscribe(ctx, "c")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "c", json.RawMessage(`{"a":1}`)))
	assert.Equal(t, `{"a":1}`, string(receive(t, ch)))
}

func TestMemoryBrokerSlowSubscriber(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker(1)
	_, err := b.Subscribe(ctx, "c")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "c", "one"))
	err = b.Publish(ctx, "c", "two")
	assert.ErrorIs(t, err, ErrSlowSubscriber)
}

func TestMemoryBrokerUnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewMemoryBroker(1)
	ch, err := b.Subscribe(ctx, "c")
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}

	assert.NoError(t, b.Publish(context.Background(), "c", "after"))
}

func TestMemoryBrokerClose(t *testing.T) {
	b := NewMemoryBroker(1)
	ch, err := b.Subscribe(context.Background(), "c")
	require.NoError(t, err)

	require.NoError(t, b.Close())
	_, ok := <-ch
	assert.False(t, ok)

	assert.ErrorIs(t, b.Publish(context.Background(), "c", "x"), ErrBrokerClosed)
	_, err = b.Subscribe(context.Background(), "c")
	assert.ErrorIs(t, err, ErrBrokerClosed)
	assert.NoError(t, b.Close())
}

func TestConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewMemoryBroker(4)
	got := make(chan string, 4)
	done := make(chan error, 1)

	go func() {
		done <- Consume(ctx, b, "c", func(msg []byte) error {
			got <- string(msg)
			if string(msg) == `"bad"` {
				return errors.New("rejected")
			}
			return nil
		}, zerolog.Nop())
	}()

	require.Eventually(t, func() bool {
		b.mu.RLock()
		defer b.mu.RUnlock()
		return len(b.subs["c"]) == 1
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, b.Publish(ctx, "c", "bad"))
	require.NoError(t, b.Publish(ctx, "c", "good"))

	assert.Equal(t, `"bad"`, <-got)
	assert.Equal(t, `"good"`, <-got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}
