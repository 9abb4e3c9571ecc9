package delivery

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"travelmate/contract"
	"travelmate/domain/chat"
)

func Test_Change_Payload_Keeps_Nanoseconds(t *testing.T) {
	req := require.New(t)
	e := insert("room1", "m1")
	e.Message.Timestamp = time.Date(2025, 6, 1, 10, 0, 0, 123456789, time.UTC)

	data, err := encodeChange(e)
	req.NoError(err)
	req.Contains(string(data), `"timestamp":"2025-06-01T10:00:00.123456789Z"`)

	decoded, err := decodeChange(data)
	req.NoError(err)
	req.True(e.Message.Timestamp.Equal(decoded.Message.Timestamp))
	req.Equal(e.Message.RoomID, decoded.Message.RoomID)
}

// Runs against a live server, e.g. NATS_URL=nats://localhost:4222
func Test_Nats_Round_Trip(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set")
	}
	req := require.New(t)
	ctx := context.Background()
	channel, err := NewNatsChannel(url, "test-"+uuid.NewString()[:8], slog.Default(), 16)
	req.NoError(err)
	defer channel.Close()

	feed, err := channel.Subscribe(ctx, contract.Filter{RoomID: "room1", Events: []chat.EventType{chat.EventInsert}})
	req.NoError(err)
	defer feed.Unsubscribe()
	req.Equal(chat.StatusSubscribed, nextStatus(t, feed).Status)

	req.NoError(channel.Publish(ctx, insert("room2", "ignored")))
	req.NoError(channel.Publish(ctx, insert("room1", "m1")))

	select {
	case e := <-feed.Events():
		req.Equal("m1", e.Message.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}
