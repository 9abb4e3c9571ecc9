package delivery

import (
	"context"
	"log/slog"
	"time"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
)

// ChangeFeed decorates a message store so that every committed mutation is
// published on a delivery channel, the way a managed database streams its
// row-level changes.
//
// Publication happens after the commit and its failure is only logged: the
// row is durable, subscribers get it back with their catch-up fetch.
type ChangeFeed struct {
	contract.MessageStore
	channel contract.DeliveryChannel
	log     *slog.Logger
}

func NewChangeFeed(store contract.MessageStore, channel contract.DeliveryChannel, log *slog.Logger) *ChangeFeed {
	return &ChangeFeed{MessageStore: store, channel: channel, log: log}
}

func (c *ChangeFeed) Insert(ctx context.Context, message chat.Message) (chat.Message, error) {
	stored, err := c.MessageStore.Insert(ctx, message)
	if err != nil {
		return chat.Message{}, err
	}
	c.publish(ctx, event.ChangeEvent{Type: chat.EventInsert, Message: stored, At: time.Now()})
	return stored, nil
}

// MarkRead publishes a single UPDATE carrying the room, the reader as sender
// and the cutoff as timestamp, instead of one event per flipped row.
func (c *ChangeFeed) MarkRead(ctx context.Context, roomID chat.RoomID, readerID chat.UserID, upTo time.Time) (int, error) {
	updated, err := c.MessageStore.MarkRead(ctx, roomID, readerID, upTo)
	if err != nil || updated == 0 {
		return updated, err
	}
	c.publish(ctx, event.ChangeEvent{
		Type:    chat.EventUpdate,
		Message: chat.Message{RoomID: roomID, SenderID: readerID, Timestamp: upTo, Read: true},
		At:      time.Now(),
	})
	return updated, nil
}

func (c *ChangeFeed) publish(ctx context.Context, e event.ChangeEvent) {
	if err := c.channel.Publish(ctx, e); err != nil {
		c.log.Warn("Change not published", "room_id", e.RoomID(), "type", e.Type, "error", err)
	}
}
