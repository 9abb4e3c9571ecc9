// Package chat contains the core concepts of the two-participant chat:
// messages, rooms, and the lifecycle of a live room subscription.
package chat

import (
	"strings"
	"time"
)

type RoomID string

type UserID = string

// Message is one entry of a room's ordered log.
// Only Read is ever mutated after insertion, and only by the recipient.
type Message struct {
	ID        string
	RoomID    RoomID
	SenderID  UserID
	Content   string
	Timestamp time.Time
	Read      bool
}

// Compare orders messages by timestamp, ties broken by store-assigned id.
func Compare(a, b Message) int {
	if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// FormatTimestamp renders t the way it travels on the wire (ISO-8601).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Latest returns the most recent message of an ordered slice.
func Latest(messages []Message) (Message, bool) {
	if len(messages) == 0 {
		return Message{}, false
	}
	return messages[len(messages)-1], true
}
