//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"travelmate/auth"
	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/errors"
	"travelmate/session"
)

// RoomController is the part of the session controller the chat service drives.
type RoomController interface {
	Open(ctx context.Context, roomID chat.RoomID, limit int, callbacks session.Callbacks) (*session.Handle, []chat.Message, error)
	History(ctx context.Context, roomID chat.RoomID, limit int) ([]chat.Message, error)
	SendMessage(ctx context.Context, roomID chat.RoomID, senderID chat.UserID, content string) (chat.Message, error)
	MarkRead(ctx context.Context, roomID chat.RoomID, readerID chat.UserID, upTo time.Time) (session.ReadReceipt, error)
}

type IChatService interface {
	OpenRoom(ctx context.Context, cmd chat.OpenRoomCommand, callbacks session.Callbacks) (*session.Handle, []chat.Message, error)
	History(ctx context.Context, callerID chat.UserID, roomID chat.RoomID, limit int) ([]chat.Message, error)
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	MarkRead(ctx context.Context, cmd chat.MarkReadCommand) (session.ReadReceipt, error)
	ListRooms(ctx context.Context, userID chat.UserID) ([]chat.RoomListItem, error)
	GetRoom(ctx context.Context, callerID chat.UserID, roomID chat.RoomID) (chat.ChatRoom, error)
	CreateRoom(ctx context.Context, callerID chat.UserID, cmd chat.CreateRoomCommand) (chat.ChatRoom, error)
	WatchRooms(sessionID string, userID chat.UserID, sink contract.EventSink)
	UnwatchRooms(sessionID string, userID chat.UserID)
}

type ChatService struct {
	controller RoomController
	rooms      contract.RoomStore
	messages   contract.MessageStore
	moderator  contract.Moderator
	registry   contract.IRegistry
	log        *slog.Logger
}

// NewChatService wires the chat use cases. A nil moderator disables moderation.
func NewChatService(
	controller RoomController,
	rooms contract.RoomStore,
	messages contract.MessageStore,
	moderator contract.Moderator,
	registry contract.IRegistry,
	log *slog.Logger,
) *ChatService {
	return &ChatService{
		controller: controller,
		rooms:      rooms,
		messages:   messages,
		moderator:  moderator,
		registry:   registry,
		log:        log,
	}
}

func (s *ChatService) OpenRoom(ctx context.Context, cmd chat.OpenRoomCommand, callbacks session.Callbacks) (*session.Handle, []chat.Message, error) {
	if err := auth.ValidateCommand(cmd); err != nil {
		return nil, nil, err
	}
	if _, err := s.GetRoom(ctx, cmd.CallerID, cmd.RoomID); err != nil {
		return nil, nil, err
	}
	return s.controller.Open(ctx, cmd.RoomID, cmd.Limit, callbacks)
}

func (s *ChatService) History(ctx context.Context, callerID chat.UserID, roomID chat.RoomID, limit int) ([]chat.Message, error) {
	if err := auth.ValidateCommand(chat.HistoryQuery{RoomID: roomID, CallerID: callerID, Limit: limit}); err != nil {
		return nil, err
	}
	if _, err := s.GetRoom(ctx, callerID, roomID); err != nil {
		return nil, err
	}
	return s.controller.History(ctx, roomID, limit)
}

func (s *ChatService) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if err := auth.ValidateCommand(cmd); err != nil {
		return chat.Message{}, err
	}
	if _, err := s.GetRoom(ctx, cmd.SenderID, cmd.RoomID); err != nil {
		return chat.Message{}, err
	}

	content := cmd.Content
	if s.moderator != nil {
		sanitized, found := s.moderator.Censor(content)
		if len(found) > 0 {
			s.log.Info("Message censored", "room_id", cmd.RoomID, "sender_id", cmd.SenderID, "words", len(found))
		}
		content = sanitized
	}
	return s.controller.SendMessage(ctx, cmd.RoomID, cmd.SenderID, content)
}

func (s *ChatService) MarkRead(ctx context.Context, cmd chat.MarkReadCommand) (session.ReadReceipt, error) {
	if err := auth.ValidateCommand(cmd); err != nil {
		return session.ReadReceipt{}, err
	}
	if _, err := s.GetRoom(ctx, cmd.ReaderID, cmd.RoomID); err != nil {
		return session.ReadReceipt{}, err
	}
	return s.controller.MarkRead(ctx, cmd.RoomID, cmd.ReaderID, cmd.UpTo)
}

// ListRooms returns the rooms of the user, most recently active first, with
// the number of messages the user hasn't read yet.
func (s *ChatService) ListRooms(ctx context.Context, userID chat.UserID) ([]chat.RoomListItem, error) {
	rooms, err := s.rooms.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]chat.RoomListItem, 0, len(rooms))
	for _, room := range rooms {
		unread, err := s.messages.CountUnread(ctx, room.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("unread count of room %s: %w", room.ID, err)
		}
		items = append(items, chat.RoomListItem{ChatRoom: room, UnreadCount: unread})
	}
	return items, nil
}

func (s *ChatService) GetRoom(ctx context.Context, callerID chat.UserID, roomID chat.RoomID) (chat.ChatRoom, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return chat.ChatRoom{}, err
	}
	if !room.HasParticipant(callerID) {
		return chat.ChatRoom{}, errors.ErrUnauthorized
	}
	return room, nil
}

// CreateRoom returns the pair's room, creating it on first use. The caller
// must be one of the two participants.
func (s *ChatService) CreateRoom(ctx context.Context, callerID chat.UserID, cmd chat.CreateRoomCommand) (chat.ChatRoom, error) {
	if err := auth.ValidateCommand(cmd); err != nil {
		return chat.ChatRoom{}, err
	}
	pair := chat.PairKey(cmd.Participants[0], cmd.Participants[1])
	if pair[0] != callerID && pair[1] != callerID {
		return chat.ChatRoom{}, errors.ErrUnauthorized
	}
	room, created, err := s.rooms.Create(ctx, pair)
	if err != nil {
		return chat.ChatRoom{}, err
	}
	if created {
		s.log.Info("Room created", "room_id", room.ID)
	}
	return room, nil
}

// WatchRooms registers a sink that receives RoomListChanged events for the user.
func (s *ChatService) WatchRooms(sessionID string, userID chat.UserID, sink contract.EventSink) {
	s.registry.Subscribe(sessionID, userID, sink)
}

func (s *ChatService) UnwatchRooms(sessionID string, userID chat.UserID) {
	s.registry.Unsubscribe(sessionID, userID)
}
