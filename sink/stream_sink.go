package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"travelmate/domain/event"
	"travelmate/errors"
)

// StreamSink buffers events for one connected client (a gRPC stream or a
// websocket). The connection handler drains Events.
type StreamSink struct {
	events          chan event.DomainEvent
	deliveryTimeout time.Duration
	log             *slog.Logger
}

func NewStreamSink(log *slog.Logger, bufferSize int, deliveryTimeout time.Duration) *StreamSink {
	return &StreamSink{
		events:          make(chan event.DomainEvent, bufferSize),
		deliveryTimeout: deliveryTimeout,
		log:             log,
	}
}

func (s *StreamSink) Events() <-chan event.DomainEvent { return s.events }

// Consume waits at most deliveryTimeout for room in the buffer, so a stalled
// client can't hold the publisher.
func (s *StreamSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.events <- e:
		return nil
	default:
	}

	timer := time.NewTimer(s.deliveryTimeout)
	defer timer.Stop()
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		s.log.Warn("Client too slow, event dropped")
		return fmt.Errorf("%w: sink buffer full", errors.ErrTransientDelivery)
	}
}
