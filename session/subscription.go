package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

var errFeedEnded = fmt.Errorf("%w: feed ended", errors.ErrTransientDelivery)

// Callbacks receive the live view of a room. They are always invoked from
// the subscription's own goroutine, one at a time, and never after Close.
type Callbacks struct {
	// OnMessages receives the full ordered sequence after every change.
	OnMessages func(messages []chat.Message)
	// OnError is called once, when the subscription gives up.
	OnError func(failedCount int, err error)
	// OnState is optional and follows every state transition.
	OnState func(state chat.SubscriptionState)
}

// Handle is the caller's side of a live room subscription.
type Handle struct {
	roomID     chat.RoomID
	subscribed atomic.Bool
	state      atomic.Int32
	cancel     context.CancelFunc
	done       chan struct{}

	// written by the run goroutine before done is closed
	failedCount int
	failure     error
}

func (h *Handle) RoomID() chat.RoomID { return h.roomID }

func (h *Handle) State() chat.SubscriptionState {
	return chat.SubscriptionState(h.state.Load())
}

// Done is closed once the subscription released its feed, either after
// Close or after reaching FAILED.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Failure reports why the subscription gave up. It is only meaningful once
// Done is closed and State is FAILED.
func (h *Handle) Failure() (int, error) {
	select {
	case <-h.done:
		return h.failedCount, h.failure
	default:
		return 0, nil
	}
}

// Close stops the subscription. No callback starts after Close returns and
// any scheduled reconnection is dropped. It doesn't wait for the feed to be
// released, see Done.
func (h *Handle) Close() {
	h.subscribed.Store(false)
	h.cancel()
}

// subscription runs the reconnection state machine of one handle. All of its
// fields are owned by the run goroutine.
type subscription struct {
	handle    *Handle
	channel   contract.DeliveryChannel
	messages  contract.MessageStore
	filter    contract.Filter
	callbacks Callbacks
	cfg       Config
	limit     int
	log       *slog.Logger

	seq      *sequence
	feed     contract.Feed
	attempts int
	retry    *time.Timer
}

func (s *subscription) run(ctx context.Context) {
	defer close(s.handle.done)
	defer s.release()

	for {
		var events <-chan event.ChangeEvent
		var status <-chan event.StatusChange
		if s.feed != nil {
			events = s.feed.Events()
			status = s.feed.Status()
		}
		var retry <-chan time.Time
		if s.retry != nil {
			retry = s.retry.C
		}

		select {
		case <-ctx.Done():
			s.setState(chat.StateClosed)
			return
		case e, ok := <-events:
			if !ok {
				s.channelError(errFeedEnded)
				break
			}
			s.onInsert(e)
		case st, ok := <-status:
			if !ok {
				s.channelError(errFeedEnded)
				break
			}
			s.onStatus(st)
		case <-retry:
			s.retry = nil
			s.reconnect(ctx)
		}

		if s.handle.State().Terminal() {
			return
		}
	}
}

func (s *subscription) onInsert(e event.ChangeEvent) {
	if !s.handle.subscribed.Load() {
		return
	}
	if e.Type != chat.EventInsert || e.Message.RoomID != s.handle.roomID {
		return
	}
	if s.seq.insert(e.Message) {
		s.emit()
	}
}

func (s *subscription) onStatus(st event.StatusChange) {
	switch st.Status {
	case chat.StatusSubscribed:
		s.setState(chat.StateActive)
	case chat.StatusChannelError:
		s.channelError(st.Err)
	case chat.StatusClosed:
		// the feed is going away, its channels closing is what matters
		s.log.Debug("Channel reported closed", "room_id", s.handle.roomID)
	}
}

// channelError drops the current feed and either schedules a reconnection
// after a linear backoff or gives up once MaxRetries failures were counted.
func (s *subscription) channelError(cause error) {
	if !s.handle.subscribed.Load() {
		return
	}
	s.setState(chat.StateErrored)
	s.release()
	s.attempts++

	if s.attempts < s.cfg.MaxRetries {
		backoff := s.cfg.ReconnectBackoff * time.Duration(s.attempts)
		s.log.Warn("Channel error, reconnecting",
			"room_id", s.handle.roomID, "attempt", s.attempts, "backoff", backoff, "error", cause)
		s.setState(chat.StateReconnecting)
		s.retry = time.NewTimer(backoff)
		return
	}

	s.log.Error("Max retries reached, stopping reconnection attempts",
		"room_id", s.handle.roomID, "attempts", s.attempts, "error", cause)
	s.handle.failedCount = s.attempts
	s.handle.failure = fmt.Errorf("%w: %d failed attempts: %v", errors.ErrDeliveryFailure, s.attempts, cause)
	s.setState(chat.StateFailed)
	if s.handle.subscribed.Load() && s.callbacks.OnError != nil {
		s.callbacks.OnError(s.attempts, s.handle.failure)
	}
}

// reconnect subscribes again, then fetches the last window so that whatever
// was inserted while the feed was down still reaches the view.
func (s *subscription) reconnect(ctx context.Context) {
	if !s.handle.subscribed.Load() {
		return
	}
	feed, err := s.channel.Subscribe(ctx, s.filter)
	if ctx.Err() != nil {
		if feed != nil {
			feed.Unsubscribe()
		}
		return
	}
	if err != nil {
		s.channelError(err)
		return
	}
	s.feed = feed

	missed, err := s.messages.Recent(ctx, s.handle.roomID, s.limit)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.channelError(err)
		return
	}
	if s.seq.merge(missed) {
		s.emit()
	}
}

func (s *subscription) emit() {
	if s.handle.subscribed.Load() && s.callbacks.OnMessages != nil {
		s.callbacks.OnMessages(s.seq.snapshot())
	}
}

func (s *subscription) setState(state chat.SubscriptionState) {
	if s.handle.State() == state {
		return
	}
	s.handle.state.Store(int32(state))
	if s.handle.subscribed.Load() && s.callbacks.OnState != nil {
		s.callbacks.OnState(state)
	}
}

func (s *subscription) release() {
	if s.retry != nil {
		s.retry.Stop()
		s.retry = nil
	}
	if s.feed != nil {
		s.feed.Unsubscribe()
		s.feed = nil
	}
}
