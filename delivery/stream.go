// Package delivery pushes message store changes to live subscribers.
package delivery

import (
	"fmt"
	"sync"
	"time"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
)

const statusBufferSize = 8

var errOverflow = fmt.Errorf("%w: feed buffer overflow", errors.ErrTransientDelivery)

// stream is the Feed handed out by every channel implementation.
// Sends happen under mu so Unsubscribe can close the channels safely.
type stream struct {
	filter  contract.Filter
	events  chan event.ChangeEvent
	status  chan event.StatusChange
	release func()

	mu     sync.Mutex
	closed bool
}

func newStream(filter contract.Filter, bufferSize int, release func()) *stream {
	return &stream{
		filter:  filter,
		events:  make(chan event.ChangeEvent, bufferSize),
		status:  make(chan event.StatusChange, statusBufferSize),
		release: release,
	}
}

func (s *stream) Events() <-chan event.ChangeEvent { return s.events }

func (s *stream) Status() <-chan event.StatusChange { return s.status }

// offer never blocks the producer. A full buffer means the subscriber has
// lost events, which it learns through CHANNEL_ERROR.
func (s *stream) offer(e event.ChangeEvent) bool {
	if !s.filter.Matches(e) {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.events <- e:
		return true
	default:
		s.reportLocked(chat.StatusChannelError, errOverflow)
		return false
	}
}

func (s *stream) report(status chat.ChannelStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.reportLocked(status, err)
	}
}

func (s *stream) reportLocked(status chat.ChannelStatus, err error) {
	select {
	case s.status <- event.StatusChange{Status: status, Err: err, At: time.Now()}:
	default:
	}
}

// Unsubscribe detaches the feed from its channel, reports CLOSED and closes
// both channels. It is safe to call more than once.
func (s *stream) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.reportLocked(chat.StatusClosed, nil)
	s.closed = true
	close(s.events)
	close(s.status)
	s.mu.Unlock()

	if s.release != nil {
		s.release()
	}
}
