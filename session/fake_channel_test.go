package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
)

// fakeChannel is a delivery channel the test drives by hand.
type fakeChannel struct {
	mu           sync.Mutex
	feeds        []*fakeFeed
	subscribeErr error
	subscribed   chan *fakeFeed
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{subscribed: make(chan *fakeFeed, 16)}
}

func (c *fakeChannel) Subscribe(ctx context.Context, filter contract.Filter) (contract.Feed, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribeErr != nil {
		return nil, c.subscribeErr
	}
	feed := &fakeFeed{
		filter: filter,
		events: make(chan event.ChangeEvent, 64),
		status: make(chan event.StatusChange, 8),
	}
	c.feeds = append(c.feeds, feed)
	c.subscribed <- feed
	return feed, nil
}

func (c *fakeChannel) Publish(context.Context, event.ChangeEvent) error { return nil }

func (c *fakeChannel) subscriptions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.feeds)
}

// broadcast hands an insert to every live feed whose filter accepts it.
func (c *fakeChannel) broadcast(m chat.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := event.ChangeEvent{Type: chat.EventInsert, Message: m, At: time.Now()}
	for _, feed := range c.feeds {
		if !feed.unsubscribed.Load() && feed.filter.Matches(e) {
			feed.events <- e
		}
	}
}

type fakeFeed struct {
	filter       contract.Filter
	events       chan event.ChangeEvent
	status       chan event.StatusChange
	unsubscribed atomic.Bool
}

func (f *fakeFeed) Events() <-chan event.ChangeEvent  { return f.events }
func (f *fakeFeed) Status() <-chan event.StatusChange { return f.status }
func (f *fakeFeed) Unsubscribe()                      { f.unsubscribed.Store(true) }

func (f *fakeFeed) report(status chat.ChannelStatus) {
	f.status <- event.StatusChange{Status: status, At: time.Now()}
}

func (f *fakeFeed) insert(m chat.Message) {
	f.events <- event.ChangeEvent{Type: chat.EventInsert, Message: m, At: time.Now()}
}

// spy records every callback invocation.
type spy struct {
	mu          sync.Mutex
	sequences   [][]chat.Message
	errors      []int
	states      []chat.SubscriptionState
	failedCause error
}

func (s *spy) callbacks() Callbacks {
	return Callbacks{
		OnMessages: func(messages []chat.Message) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.sequences = append(s.sequences, messages)
		},
		OnError: func(failedCount int, err error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.errors = append(s.errors, failedCount)
			s.failedCause = err
		},
		OnState: func(state chat.SubscriptionState) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.states = append(s.states, state)
		},
	}
}

func (s *spy) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sequences) + len(s.errors) + len(s.states)
}

func (s *spy) lastSequence() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sequences) == 0 {
		return nil
	}
	return s.sequences[len(s.sequences)-1]
}

func (s *spy) errorCounts() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.errors...)
}

type recordingNotifier struct {
	mu       sync.Mutex
	activity []event.RoomActivity
}

func (n *recordingNotifier) Publish(e event.RoomActivity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activity = append(n.activity, e)
}

func (n *recordingNotifier) published() []event.RoomActivity {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]event.RoomActivity(nil), n.activity...)
}
