package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

// Hub is the in-process delivery channel. Every subscriber owns a buffered
// feed; a subscriber that can't keep up gets CHANNEL_ERROR instead of
// slowing the publisher down.
type Hub struct {
	log        *slog.Logger
	bufferSize int

	mu     sync.RWMutex
	feeds  map[*stream]struct{}
	closed bool
}

func NewHub(log *slog.Logger, bufferSize int) *Hub {
	return &Hub{
		log:        log,
		bufferSize: bufferSize,
		feeds:      make(map[*stream]struct{}),
	}
}

func (h *Hub) Subscribe(ctx context.Context, filter contract.Filter) (contract.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, fmt.Errorf("%w: hub is shut down", errors.ErrTransientDelivery)
	}
	var s *stream
	s = newStream(filter, h.bufferSize, func() { h.remove(s) })
	h.feeds[s] = struct{}{}
	s.report(chat.StatusSubscribed, nil)
	h.log.Debug("Feed subscribed", "room_id", filter.RoomID, "feeds", len(h.feeds))
	return s, nil
}

func (h *Hub) Publish(ctx context.Context, e event.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.feeds {
		if !s.offer(e) {
			h.log.Warn("Feed overflow, subscriber notified", "room_id", e.RoomID())
		}
	}
	return nil
}

// Close ends every feed. Subscribers receive CLOSED.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	feeds := make([]*stream, 0, len(h.feeds))
	for s := range h.feeds {
		feeds = append(feeds, s)
	}
	h.mu.Unlock()

	for _, s := range feeds {
		s.Unsubscribe()
	}
}

func (h *Hub) remove(s *stream) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.feeds, s)
}

// Feeds is the number of live subscriptions.
func (h *Hub) Feeds() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds)
}
