package event

import (
	"time"

	"travelmate/domain/chat"
)

type DomainEvent interface {
	OccurredAt() time.Time
}

// ChangeEvent is a row-level change of the message store as pushed by a
// delivery channel.
type ChangeEvent struct {
	Type    chat.EventType
	Message chat.Message
	At      time.Time
}

func (e ChangeEvent) OccurredAt() time.Time { return e.At }

func (e ChangeEvent) RoomID() chat.RoomID { return e.Message.RoomID }

// StatusChange is a delivery channel health report for one feed.
type StatusChange struct {
	Status chat.ChannelStatus
	Err    error
	At     time.Time
}

func (e StatusChange) OccurredAt() time.Time { return e.At }

type ActivityKind string

const (
	ActivityMessage ActivityKind = "message"
	ActivityRead    ActivityKind = "read"
)

// RoomActivity is emitted by the session controller whenever a room summary
// or its unread counters may have changed.
type RoomActivity struct {
	RoomID       chat.RoomID
	Participants [2]chat.UserID
	Kind         ActivityKind
	At           time.Time
}

func (e RoomActivity) OccurredAt() time.Time { return e.At }

// RoomListChanged tells one participant that its room list is stale.
// Several activities within the debounce window collapse into one.
type RoomListChanged struct {
	UserID  chat.UserID
	RoomIDs []chat.RoomID
	At      time.Time
}

func (e RoomListChanged) OccurredAt() time.Time { return e.At }

// RoomSnapshot is the full ordered sequence of a live room after a change.
type RoomSnapshot struct {
	RoomID   chat.RoomID
	Messages []chat.Message
	At       time.Time
}

func (e RoomSnapshot) OccurredAt() time.Time { return e.At }

// SubscriptionStateChanged follows the reconnection state of a live room.
type SubscriptionStateChanged struct {
	RoomID chat.RoomID
	State  chat.SubscriptionState
	At     time.Time
}

func (e SubscriptionStateChanged) OccurredAt() time.Time { return e.At }

// SubscriptionFailed is the last event of a live room that gave up reconnecting.
type SubscriptionFailed struct {
	RoomID      chat.RoomID
	FailedCount int
	Err         error
	At          time.Time
}

func (e SubscriptionFailed) OccurredAt() time.Time { return e.At }
