package event

import (
	"context"
	"fmt"

	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/logger"
	"github.com/jwalitptl/baseline-api/pkg/messaging"
	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

const DefaultChannel = "records.events"

// Service publishes record-change events to a broker channel.
type Service struct {
	broker  messaging.Broker
	channel string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(broker messaging.Broker, channel string, log *logger.Logger, m *metrics.Metrics) *Service {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		broker:  broker,
		channel: channel,
		logger:  log.WithComponent("event-service"),
		metrics: m,
	}
}

func (s *Service) Channel() string {
	return s.channel
}

func (s *Service) Emit(ctx context.Context, ev *event.Event) error {
	if err := s.broker.Publish(ctx, s.channel, ev); err != nil {
		s.metrics.EventFailed(string(ev.Type))
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}

	s.metrics.EventPublished(string(ev.Type))
	s.logger.Debug("Event published",
		"event_id", ev.ID.String(),
		"event_type", string(ev.Type),
		"resource_id", ev.ResourceID,
		"channel", s.channel,
	)
	return nil
}

var _ event.EventService = (*Service)(nil)
