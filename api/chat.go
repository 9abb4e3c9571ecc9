package api

import (
	"time"

	"github.com/samber/lo"

	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/session"
)

type Message struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

func FromMessage(m chat.Message) Message {
	return Message{
		ID:        m.ID,
		RoomID:    string(m.RoomID),
		SenderID:  m.SenderID,
		Content:   m.Content,
		Timestamp: chat.FormatTimestamp(m.Timestamp),
		Read:      m.Read,
	}
}

func FromMessages(messages []chat.Message) []Message {
	return lo.Map(messages, func(m chat.Message, _ int) Message { return FromMessage(m) })
}

type Room struct {
	ID              string    `json:"id"`
	Participants    [2]string `json:"participants"`
	LastMessage     string    `json:"last_message,omitempty"`
	LastMessageTime string    `json:"last_message_time,omitempty"`
	CreatedAt       string    `json:"created_at"`
	UnreadCount     int       `json:"unread_count"`
}

func FromRoom(room chat.ChatRoom) Room {
	return Room{
		ID:              string(room.ID),
		Participants:    room.Participants,
		LastMessage:     room.LastMessage,
		LastMessageTime: optionalTimestamp(room.LastMessageTime),
		CreatedAt:       chat.FormatTimestamp(room.CreatedAt),
	}
}

func FromRoomListItem(item chat.RoomListItem) Room {
	room := FromRoom(item.ChatRoom)
	room.UnreadCount = item.UnreadCount
	return room
}

func optionalTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return chat.FormatTimestamp(t)
}

type OpenRoomRequest struct {
	RoomID string `json:"room_id"`
	Limit  int    `json:"limit,omitempty"`
}

// RoomFrame is one message of a live room stream. The first frame holds the
// initial window; each following one the full sequence, a state change, or
// the error that ended the stream.
type RoomFrame struct {
	Messages []Message   `json:"messages,omitempty"`
	State    string      `json:"state,omitempty"`
	Error    *FrameError `json:"error,omitempty"`
}

type FrameError struct {
	FailedCount int    `json:"failed_count"`
	Message     string `json:"message"`
}

// FrameFromEvent converts what a live room sink carries into a frame. The
// second result is false for events a room stream doesn't forward.
func FrameFromEvent(e event.DomainEvent) (RoomFrame, bool) {
	switch evt := e.(type) {
	case event.RoomSnapshot:
		return RoomFrame{Messages: FromMessages(evt.Messages)}, true
	case event.SubscriptionStateChanged:
		return RoomFrame{State: evt.State.String()}, true
	case event.SubscriptionFailed:
		return RoomFrame{
			State: chat.StateFailed.String(),
			Error: &FrameError{FailedCount: evt.FailedCount, Message: evt.Err.Error()},
		}, true
	default:
		return RoomFrame{}, false
	}
}

type SendMessageRequest struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}

type MarkReadRequest struct {
	RoomID string `json:"room_id"`
	// UpTo is an ISO-8601 cutoff, empty for every message.
	UpTo string `json:"up_to,omitempty"`
}

type MarkReadResponse struct {
	Updated  int  `json:"updated"`
	Attempts int  `json:"attempts"`
	Flushed  bool `json:"flushed"`
}

func FromReceipt(r session.ReadReceipt) MarkReadResponse {
	return MarkReadResponse{Updated: r.Updated, Attempts: r.Attempts, Flushed: r.Flushed}
}

type ListRoomsRequest struct{}

type ListRoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

type CreateRoomRequest struct {
	Participants []string `json:"participants"`
}

type WatchRoomsRequest struct{}

type RoomListChanged struct {
	RoomIDs []string `json:"room_ids"`
	At      string   `json:"at"`
}

func FromRoomListChanged(e event.RoomListChanged) RoomListChanged {
	return RoomListChanged{
		RoomIDs: lo.Map(e.RoomIDs, func(id chat.RoomID, _ int) string { return string(id) }),
		At:      chat.FormatTimestamp(e.At),
	}
}
