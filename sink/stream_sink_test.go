package sink

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

func TestStreamSink_Consume(t *testing.T) {
	req := require.New(t)
	s := NewStreamSink(slog.Default(), 1, 20*time.Millisecond)
	ctx := context.Background()
	changed := event.RoomListChanged{UserID: "alice"}

	// Given a buffer of one
	req.NoError(s.Consume(ctx, changed))

	// When the client doesn't drain it
	err := s.Consume(ctx, changed)

	// Then the second event is refused after the delivery timeout
	req.ErrorIs(err, errors.ErrTransientDelivery)
	req.Equal(changed, <-s.Events())
}

func TestStreamSink_Cancelled(t *testing.T) {
	s := NewStreamSink(slog.Default(), 0, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Consume(ctx, event.RoomListChanged{}), context.Canceled)
}

func TestStreamSink_RoomCallbacks(t *testing.T) {
	req := require.New(t)
	s := NewStreamSink(slog.Default(), 4, time.Second)
	callbacks := s.RoomCallbacks(context.Background(), "room1")

	// When the live room reports a sequence, a state and a failure
	callbacks.OnMessages([]chat.Message{{ID: "m1"}})
	callbacks.OnState(chat.StateReconnecting)
	callbacks.OnError(3, errors.ErrDeliveryFailure)

	// Then the sink carries them in order
	snapshot := (<-s.Events()).(event.RoomSnapshot)
	req.Equal(chat.RoomID("room1"), snapshot.RoomID)
	req.Len(snapshot.Messages, 1)
	req.Equal(chat.StateReconnecting, (<-s.Events()).(event.SubscriptionStateChanged).State)
	failed := (<-s.Events()).(event.SubscriptionFailed)
	req.Equal(3, failed.FailedCount)
}
