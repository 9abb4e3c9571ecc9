package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"travelmate/domain/chat"
	"travelmate/errors"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Recent_Returns_The_Most_Recent_Messages_Ascending(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openDB(t), logs.GetLoggerFromLevel(slog.LevelDebug))
	room := chat.RoomID("room1")
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Given a room with 75 messages
	for i := range 75 {
		_, err := repository.Insert(ctx, chat.Message{
			RoomID:    room,
			SenderID:  "u1",
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: at.Add(time.Duration(i) * time.Second),
		})
		req.NoError(err)
	}

	// When the last 50 are fetched
	messages, err := repository.Recent(ctx, room, 50)

	// Then exactly the 50 most recent come back in ascending order
	req.NoError(err)
	req.Len(messages, 50)
	req.Equal("message 25", messages[0].Content)
	req.Equal("message 74", messages[49].Content)
	req.True(slices.IsSortedFunc(messages, chat.Compare))
}

func Test_Recent_Without_Limit_Returns_Everything(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	for i := range 3 {
		_, err := repository.Insert(ctx, chat.Message{RoomID: "room1", SenderID: "u1", Content: "hi", Timestamp: at.Add(time.Duration(i) * time.Minute)})
		req.NoError(err)
	}
	_, err := repository.Insert(ctx, chat.Message{RoomID: "room2", SenderID: "u1", Content: "elsewhere", Timestamp: at})
	req.NoError(err)

	messages, err := repository.Recent(ctx, "room1", 0)
	req.NoError(err)
	req.Len(messages, 3)
	for _, m := range messages {
		req.Equal(chat.RoomID("room1"), m.RoomID)
	}
}

func Test_Insert_Then_Fetch_Returns_The_Message_Unread(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openDB(t), slog.Default())

	stored, err := repository.Insert(ctx, chat.Message{RoomID: "room1", SenderID: "u1", Content: "hi"})
	req.NoError(err)
	req.NotEmpty(stored.ID)
	req.False(stored.Timestamp.IsZero())

	messages, err := repository.Recent(ctx, "room1", 50)
	req.NoError(err)
	req.Len(messages, 1)
	last := messages[len(messages)-1]
	req.Equal("hi", last.Content)
	req.Equal("u1", last.SenderID)
	req.False(last.Read)
	req.Equal(stored, last)
}

func Test_MarkRead_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Given two messages from alice and one from bob
	for i, sender := range []string{"alice", "alice", "bob"} {
		_, err := repository.Insert(ctx, chat.Message{RoomID: "room1", SenderID: sender, Content: "hey", Timestamp: at.Add(time.Duration(i) * time.Second)})
		req.NoError(err)
	}

	// When bob reads twice with the same cutoff
	first, err := repository.MarkRead(ctx, "room1", "bob", at.Add(time.Minute))
	req.NoError(err)
	afterFirst, err := repository.Recent(ctx, "room1", 0)
	req.NoError(err)
	second, err := repository.MarkRead(ctx, "room1", "bob", at.Add(time.Minute))
	req.NoError(err)
	afterSecond, err := repository.Recent(ctx, "room1", 0)
	req.NoError(err)

	// Then only the first call mutates, and his own message stays unread
	req.Equal(2, first)
	req.Equal(0, second)
	req.Equal(afterFirst, afterSecond)
	req.True(afterSecond[0].Read)
	req.True(afterSecond[1].Read)
	req.False(afterSecond[2].Read)
}

func Test_MarkRead_Stops_At_The_Cutoff(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openDB(t), slog.Default())
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := range 4 {
		_, err := repository.Insert(ctx, chat.Message{RoomID: "room1", SenderID: "alice", Content: "hey", Timestamp: at.Add(time.Duration(i) * time.Minute)})
		req.NoError(err)
	}

	// The cutoff is inclusive
	updated, err := repository.MarkRead(ctx, "room1", "bob", at.Add(time.Minute))
	req.NoError(err)
	req.Equal(2, updated)

	unread, err := repository.CountUnread(ctx, "room1", "bob")
	req.NoError(err)
	req.Equal(2, unread)

	// A zero cutoff reads everything
	updated, err = repository.MarkRead(ctx, "room1", "bob", time.Time{})
	req.NoError(err)
	req.Equal(2, updated)
}

func Test_CountUnread_Ignores_Own_Messages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMessageRepository(openDB(t), slog.Default())

	for _, sender := range []string{"alice", "bob", "bob"} {
		_, err := repository.Insert(ctx, chat.Message{RoomID: "room1", SenderID: sender, Content: "yo"})
		req.NoError(err)
	}

	count, err := repository.CountUnread(ctx, "room1", "alice")
	req.NoError(err)
	req.Equal(2, count)
}

func Test_Cancelled_Context_Is_Reported(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openDB(t), slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repository.Recent(ctx, "room1", 10)
	req.ErrorIs(err, context.Canceled)
}

func Test_StoreError_Maps_Badger_Failures(t *testing.T) {
	req := require.New(t)
	req.ErrorIs(storeError(badger.ErrKeyNotFound), errors.ErrNotFound)
	req.ErrorIs(storeError(badger.ErrConflict), errors.ErrTransientDelivery)
	req.True(errors.IsTransient(storeError(badger.ErrConflict)))
	req.NoError(storeError(nil))
}
