// Package session turns the message store and a delivery channel into live,
// ordered room views that survive transient channel failures.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

// ReadReceipt tells the caller whether its read acknowledgement is durable.
// When Flushed is false the local read state must not be trusted.
type ReadReceipt struct {
	Updated  int
	Attempts int
	Flushed  bool
}

type Controller struct {
	messages contract.MessageStore
	rooms    contract.RoomStore
	channel  contract.DeliveryChannel
	notifier contract.Notifier
	log      *slog.Logger
	cfg      Config
	now      func() time.Time
}

func NewController(
	messages contract.MessageStore,
	rooms contract.RoomStore,
	channel contract.DeliveryChannel,
	notifier contract.Notifier,
	log *slog.Logger,
	cfg Config,
) *Controller {
	return &Controller{
		messages: messages,
		rooms:    rooms,
		channel:  channel,
		notifier: notifier,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Open subscribes to the room, fetches its most recent limit messages and
// keeps the view live through the returned handle. A limit of zero uses the configured
// window. The initial sequence is returned, callbacks only see what follows.
func (c *Controller) Open(ctx context.Context, roomID chat.RoomID, limit int, callbacks Callbacks) (*Handle, []chat.Message, error) {
	if limit <= 0 {
		limit = c.cfg.HistoryLimit
	}
	if _, err := c.rooms.Get(ctx, roomID); err != nil {
		return nil, nil, err
	}

	// Subscribe before loading: an insert landing in between is then queued
	// on the feed and merged by id, instead of being missed by both.
	filter := contract.Filter{
		Table:  contract.MessagesTable,
		RoomID: roomID,
		Events: []chat.EventType{chat.EventInsert},
	}
	feed, err := c.channel.Subscribe(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: subscribe: %w", errors.ErrDeliveryFailure, err)
	}
	initial, err := c.messages.Recent(ctx, roomID, limit)
	if err != nil {
		feed.Unsubscribe()
		return nil, nil, fmt.Errorf("%w: initial load: %w", errors.ErrDeliveryFailure, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	handle := &Handle{roomID: roomID, cancel: cancel, done: make(chan struct{})}
	handle.subscribed.Store(true)
	handle.state.Store(int32(chat.StateConnecting))

	sub := &subscription{
		handle:    handle,
		channel:   c.channel,
		messages:  c.messages,
		filter:    filter,
		callbacks: callbacks,
		cfg:       c.cfg,
		limit:     limit,
		log:       c.log.With("room_id", roomID),
		seq:       newSequence(initial),
		feed:      feed,
	}
	go sub.run(subCtx)

	c.log.Debug("Room opened", "room_id", roomID, "messages", sub.seq.len())
	return handle, sub.seq.snapshot(), nil
}

// History is a one-shot read of the last limit messages, ascending.
func (c *Controller) History(ctx context.Context, roomID chat.RoomID, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = c.cfg.HistoryLimit
	}
	return c.messages.Recent(ctx, roomID, limit)
}

// SendMessage appends an unread message and then moves the room summary.
// The two writes are not atomic: when the second fails the message stays
// persisted while the summary lags, and the caller gets a DeliveryFailure.
// No dedup key is assigned, resending may duplicate the message.
func (c *Controller) SendMessage(ctx context.Context, roomID chat.RoomID, senderID chat.UserID, content string) (chat.Message, error) {
	room, err := c.rooms.Get(ctx, roomID)
	if err != nil {
		return chat.Message{}, err
	}

	message, err := c.messages.Insert(ctx, chat.Message{
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: c.now().UTC(),
		Read:      false,
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("%w: message insert: %w", errors.ErrDeliveryFailure, err)
	}

	if err := c.rooms.UpdateSummary(ctx, roomID, message.Content, message.Timestamp); err != nil {
		c.log.Warn("Room summary is stale", "room_id", roomID, "message_id", message.ID, "error", err)
		return message, fmt.Errorf("%w: room summary: %w", errors.ErrDeliveryFailure, err)
	}

	c.notifier.Publish(event.RoomActivity{
		RoomID:       roomID,
		Participants: room.Participants,
		Kind:         event.ActivityMessage,
		At:           message.Timestamp,
	})
	return message, nil
}

// MarkRead flags the messages of the room not sent by readerID, up to upTo
// (zero means all of them). Transient store failures are retried with a
// fixed backoff.
func (c *Controller) MarkRead(ctx context.Context, roomID chat.RoomID, readerID chat.UserID, upTo time.Time) (ReadReceipt, error) {
	room, err := c.rooms.Get(ctx, roomID)
	if err != nil {
		return ReadReceipt{}, err
	}

	receipt := ReadReceipt{}
	for {
		receipt.Attempts++
		updated, err := c.messages.MarkRead(ctx, roomID, readerID, upTo)
		if err == nil {
			receipt.Updated = updated
			receipt.Flushed = true
			break
		}
		if !errors.IsTransient(err) {
			return receipt, fmt.Errorf("%w: mark read: %w", errors.ErrDeliveryFailure, err)
		}
		if receipt.Attempts > c.cfg.ReadRetries {
			c.log.Warn("Read state not flushed", "room_id", roomID, "attempts", receipt.Attempts, "error", err)
			return receipt, fmt.Errorf("%w: mark read after %d attempts: %w", errors.ErrDeliveryFailure, receipt.Attempts, err)
		}
		select {
		case <-ctx.Done():
			return receipt, ctx.Err()
		case <-time.After(c.cfg.ReadBackoff):
		}
	}

	if receipt.Updated > 0 {
		c.notifier.Publish(event.RoomActivity{
			RoomID:       roomID,
			Participants: room.Participants,
			Kind:         event.ActivityRead,
			At:           c.now().UTC(),
		})
	}
	return receipt, nil
}
