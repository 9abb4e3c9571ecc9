package chat

import (
	"slices"
	"time"
)

// ChatRoom holds a denormalized summary of its last message.
// The summary is eventually consistent with the message log.
type ChatRoom struct {
	ID              RoomID
	Participants    [2]UserID
	LastMessage     string
	LastMessageTime time.Time
	CreatedAt       time.Time
}

func (r ChatRoom) HasParticipant(userID UserID) bool {
	return slices.Contains(r.Participants[:], userID)
}

// Counterpart returns the other participant of the room.
func (r ChatRoom) Counterpart(userID UserID) UserID {
	if r.Participants[0] == userID {
		return r.Participants[1]
	}
	return r.Participants[0]
}

// PairKey is the participant pair in a stable order, so (a, b) and (b, a)
// address the same room.
func PairKey(a, b UserID) [2]UserID {
	if b < a {
		return [2]UserID{b, a}
	}
	return [2]UserID{a, b}
}

type RoomListItem struct {
	ChatRoom
	UnreadCount int
}
