package delivery

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

func insert(room chat.RoomID, id string) event.ChangeEvent {
	return event.ChangeEvent{
		Type:    chat.EventInsert,
		Message: chat.Message{ID: id, RoomID: room, SenderID: "u1", Content: id, Timestamp: time.Now()},
		At:      time.Now(),
	}
}

func nextStatus(t *testing.T, feed contract.Feed) event.StatusChange {
	t.Helper()
	select {
	case s := <-feed.Status():
		return s
	case <-time.After(time.Second):
		t.Fatal("no status reported")
		return event.StatusChange{}
	}
}

func Test_Hub_Delivers_To_Matching_Feeds_Only(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	hub := NewHub(logs.GetLoggerFromLevel(slog.LevelDebug), 10)

	// Given one feed on room1 restricted to inserts
	feed, err := hub.Subscribe(ctx, contract.Filter{Table: contract.MessagesTable, RoomID: "room1", Events: []chat.EventType{chat.EventInsert}})
	req.NoError(err)
	req.Equal(chat.StatusSubscribed, nextStatus(t, feed).Status)

	// When changes of several rooms and kinds are published
	req.NoError(hub.Publish(ctx, insert("room2", "a")))
	update := insert("room1", "b")
	update.Type = chat.EventUpdate
	req.NoError(hub.Publish(ctx, update))
	req.NoError(hub.Publish(ctx, insert("room1", "c")))

	// Then only the room1 insert is received
	e := <-feed.Events()
	req.Equal("c", e.Message.ID)
	req.Empty(feed.Events())
}

func Test_Hub_Overflow_Reports_Channel_Error(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	hub := NewHub(slog.Default(), 1)

	feed, err := hub.Subscribe(ctx, contract.Filter{RoomID: "room1"})
	req.NoError(err)
	nextStatus(t, feed)

	req.NoError(hub.Publish(ctx, insert("room1", "a")))
	req.NoError(hub.Publish(ctx, insert("room1", "b")))

	status := nextStatus(t, feed)
	req.Equal(chat.StatusChannelError, status.Status)
	req.ErrorIs(status.Err, errors.ErrTransientDelivery)
}

func Test_Unsubscribe_Closes_The_Feed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	hub := NewHub(slog.Default(), 4)

	feed, err := hub.Subscribe(ctx, contract.Filter{RoomID: "room1"})
	req.NoError(err)
	nextStatus(t, feed)

	feed.Unsubscribe()
	feed.Unsubscribe()

	req.Equal(chat.StatusClosed, nextStatus(t, feed).Status)
	_, open := <-feed.Events()
	req.False(open)
	// publishing after the feed left must not panic
	req.NoError(hub.Publish(ctx, insert("room1", "a")))
}

func Test_Hub_Close_Ends_Every_Feed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	hub := NewHub(slog.Default(), 4)

	feed, err := hub.Subscribe(ctx, contract.Filter{})
	req.NoError(err)
	nextStatus(t, feed)

	hub.Close()

	req.Equal(chat.StatusClosed, nextStatus(t, feed).Status)
	_, err = hub.Subscribe(ctx, contract.Filter{})
	req.ErrorIs(err, errors.ErrTransientDelivery)
}

func Test_Disrupt_Targets_One_Room(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	hub := NewHub(slog.Default(), 4)

	room1, err := hub.Subscribe(ctx, contract.Filter{RoomID: "room1"})
	req.NoError(err)
	room2, err := hub.Subscribe(ctx, contract.Filter{RoomID: "room2"})
	req.NoError(err)
	nextStatus(t, room1)
	nextStatus(t, room2)

	hub.Disrupt("room1", errors.ErrTransientDelivery)

	req.Equal(chat.StatusChannelError, nextStatus(t, room1).Status)
	req.Empty(room2.Status())
}
