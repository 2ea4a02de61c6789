package messaging

import (
	"context"

	"github.com/rs/zerolog"
)

// Handler processes one raw message.
type Handler func([]byte) error

// Consume drains channel on broker and hands every message to handler until
// ctx is done or the subscription closes. Handler errors are logged and do
// not stop consumption.
func Consume(ctx context.Context, broker Broker, channel string, handler Handler, logger zerolog.Logger) error {
	msgChan, err := broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgChan:
			if !ok {
				return nil
			}
			if err := handler(msg); err != nil {
				logger.Error().Err(err).Str("channel", channel).Msg("Failed to handle message")
			}
		}
	}
}
