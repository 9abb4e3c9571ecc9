package sink

import (
	"context"
	"time"

	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/session"
)

// RoomCallbacks turns the callbacks of a live room into events on the sink,
// so the connection handler stays the only writer of its connection.
func (s *StreamSink) RoomCallbacks(ctx context.Context, roomID chat.RoomID) session.Callbacks {
	consume := func(e event.DomainEvent) {
		if err := s.Consume(ctx, e); err != nil {
			s.log.Warn("Room event dropped", "room_id", roomID, "error", err)
		}
	}
	return session.Callbacks{
		OnMessages: func(messages []chat.Message) {
			consume(event.RoomSnapshot{RoomID: roomID, Messages: messages, At: time.Now().UTC()})
		},
		OnState: func(state chat.SubscriptionState) {
			consume(event.SubscriptionStateChanged{RoomID: roomID, State: state, At: time.Now().UTC()})
		},
		OnError: func(failedCount int, err error) {
			consume(event.SubscriptionFailed{RoomID: roomID, FailedCount: failedCount, Err: err, At: time.Now().UTC()})
		},
	}
}

// Leftover returns what the connection still owes its client once the handle
// is done. After a FAILED subscription that is the buffered events followed by
// the failure, which is added when a full buffer dropped it.
func (s *StreamSink) Leftover(handle *session.Handle) []event.DomainEvent {
	if handle.State() != chat.StateFailed {
		return nil
	}
	var pending []event.DomainEvent
	for {
		select {
		case e := <-s.events:
			pending = append(pending, e)
			if _, ok := e.(event.SubscriptionFailed); ok {
				return pending
			}
		default:
			count, err := handle.Failure()
			return append(pending, event.SubscriptionFailed{
				RoomID:      handle.RoomID(),
				FailedCount: count,
				Err:         err,
				At:          time.Now().UTC(),
			})
		}
	}
}
