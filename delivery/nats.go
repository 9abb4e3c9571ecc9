package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

// NatsChannel spreads change events over NATS so every server process sees
// the inserts of the others. Connection health is reported on every feed:
// a disconnect is CHANNEL_ERROR, a reconnect SUBSCRIBED, a close CLOSED.
type NatsChannel struct {
	nc         *nats.Conn
	prefix     string
	log        *slog.Logger
	bufferSize int

	mu    sync.Mutex
	feeds map[*nats.Subscription]*stream
}

func NewNatsChannel(url, prefix string, log *slog.Logger, bufferSize int) (*NatsChannel, error) {
	n := &NatsChannel{
		prefix:     prefix,
		log:        log,
		bufferSize: bufferSize,
		feeds:      make(map[*nats.Subscription]*stream),
	}
	nc, err := nats.Connect(url,
		nats.Name("travelmate"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(n.onDisconnect),
		nats.ReconnectHandler(n.onReconnect),
		nats.ClosedHandler(n.onClosed),
		nats.ErrorHandler(n.onError),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	n.nc = nc
	return n, nil
}

// subject is "{prefix}.messages.{room}", or a wildcard over every room.
func (n *NatsChannel) subject(roomID chat.RoomID) string {
	if roomID == "" {
		return fmt.Sprintf("%s.%s.*", n.prefix, contract.MessagesTable)
	}
	return fmt.Sprintf("%s.%s.%s", n.prefix, contract.MessagesTable, roomID)
}

func (n *NatsChannel) Subscribe(ctx context.Context, filter contract.Filter) (contract.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var s *stream
	var sub *nats.Subscription
	s = newStream(filter, n.bufferSize, func() { n.release(sub) })

	n.mu.Lock()
	defer n.mu.Unlock()
	sub, err := n.nc.Subscribe(n.subject(filter.RoomID), func(msg *nats.Msg) {
		e, err := decodeChange(msg.Data)
		if err != nil {
			n.log.Error("Unreadable change event", "subject", msg.Subject, "error", err)
			return
		}
		s.offer(e)
	})
	if err != nil {
		return nil, errors.Transient(fmt.Errorf("failed to subscribe to '%s': %w", n.subject(filter.RoomID), err))
	}
	n.feeds[sub] = s
	s.report(chat.StatusSubscribed, nil)
	n.log.Debug("Subscribed", "subject", sub.Subject)
	return s, nil
}

func (n *NatsChannel) Publish(ctx context.Context, e event.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeChange(e)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	subject := n.subject(e.RoomID())
	if err := n.nc.Publish(subject, data); err != nil {
		return errors.Transient(fmt.Errorf("failed to publish to '%s': %w", subject, err))
	}
	return nil
}

// Close drains pending publications and closes the connection; the closed
// handler reports CLOSED on the remaining feeds.
func (n *NatsChannel) Close() error {
	return n.nc.Drain()
}

func (n *NatsChannel) release(sub *nats.Subscription) {
	if sub == nil {
		return
	}
	n.mu.Lock()
	delete(n.feeds, sub)
	n.mu.Unlock()
	if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		n.log.Debug("Unsubscribe failed", "subject", sub.Subject, "error", err)
	}
}

func (n *NatsChannel) broadcast(status chat.ChannelStatus, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.feeds {
		s.report(status, err)
	}
}

func (n *NatsChannel) onDisconnect(_ *nats.Conn, err error) {
	n.log.Warn("NATS disconnected", "error", err)
	n.broadcast(chat.StatusChannelError, errors.Transient(fmt.Errorf("nats disconnected: %v", err)))
}

func (n *NatsChannel) onReconnect(nc *nats.Conn) {
	n.log.Info("NATS reconnected", "url", nc.ConnectedUrl())
	n.broadcast(chat.StatusSubscribed, nil)
}

func (n *NatsChannel) onClosed(_ *nats.Conn) {
	n.log.Info("NATS connection closed")
	n.broadcast(chat.StatusClosed, nil)
}

// onError only concerns the subscription it names, typically a slow consumer.
func (n *NatsChannel) onError(_ *nats.Conn, sub *nats.Subscription, err error) {
	if sub == nil {
		n.log.Error("NATS async error", "error", err)
		return
	}
	n.mu.Lock()
	s, ok := n.feeds[sub]
	n.mu.Unlock()
	if ok {
		n.log.Warn("NATS subscription error", "subject", sub.Subject, "error", err)
		s.report(chat.StatusChannelError, errors.Transient(err))
	}
}

type changePayload struct {
	Type    chat.EventType `json:"type"`
	Message messagePayload `json:"message"`
	At      string         `json:"at"`
}

type messagePayload struct {
	ID        string `json:"id"`
	RoomID    string `json:"roomId"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

func encodeChange(e event.ChangeEvent) ([]byte, error) {
	return json.Marshal(changePayload{
		Type: e.Type,
		Message: messagePayload{
			ID:        e.Message.ID,
			RoomID:    string(e.Message.RoomID),
			SenderID:  e.Message.SenderID,
			Content:   e.Message.Content,
			Timestamp: chat.FormatTimestamp(e.Message.Timestamp),
			Read:      e.Message.Read,
		},
		At: chat.FormatTimestamp(e.At),
	})
}

func decodeChange(data []byte) (event.ChangeEvent, error) {
	var p changePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return event.ChangeEvent{}, err
	}
	timestamp, err := chat.ParseTimestamp(p.Message.Timestamp)
	if err != nil {
		return event.ChangeEvent{}, err
	}
	at, err := chat.ParseTimestamp(p.At)
	if err != nil {
		return event.ChangeEvent{}, err
	}
	return event.ChangeEvent{
		Type: p.Type,
		Message: chat.Message{
			ID:        p.Message.ID,
			RoomID:    chat.RoomID(p.Message.RoomID),
			SenderID:  p.Message.SenderID,
			Content:   p.Message.Content,
			Timestamp: timestamp,
			Read:      p.Message.Read,
		},
		At: at,
	}, nil
}

// Feeds is the number of live subscriptions.
func (n *NatsChannel) Feeds() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.feeds)
}
