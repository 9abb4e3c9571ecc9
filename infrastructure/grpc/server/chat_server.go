package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/grpc"

	"travelmate/api"
	"travelmate/auth"
	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/errors"
	"travelmate/services"
	"travelmate/sink"
)

type ChatServer struct {
	chatService          services.IChatService
	connectionBufferSize int
	deliveryTimeout      time.Duration
	log                  *slog.Logger
}

func NewChatServer(log *slog.Logger, chatService services.IChatService,
	connectionBufferSize int, deliveryTimeout time.Duration) *ChatServer {
	return &ChatServer{chatService: chatService,
		connectionBufferSize: connectionBufferSize, log: log,
		deliveryTimeout: deliveryTimeout,
	}
}

func callerID(ctx context.Context) (string, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return "", errors.MapToGRPCError(errors.ErrInvalidToken)
	}
	return userID, nil
}

// OpenRoom streams the live view of a room. The first frame is the initial
// window, then one frame per change until the client leaves or the
// subscription gives up, in which case the last frame carries the error.
func (s *ChatServer) OpenRoom(req *api.OpenRoomRequest, stream grpc.ServerStreamingServer[api.RoomFrame]) error {
	ctx := stream.Context()
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	roomID := chat.RoomID(req.RoomID)
	roomSink := sink.NewStreamSink(s.log, s.connectionBufferSize, s.deliveryTimeout)

	handle, initial, err := s.chatService.OpenRoom(ctx,
		chat.OpenRoomCommand{RoomID: roomID, CallerID: userID, Limit: req.Limit},
		roomSink.RoomCallbacks(ctx, roomID))
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	defer handle.Close()

	first := api.RoomFrame{Messages: api.FromMessages(initial), State: handle.State().String()}
	if err := stream.Send(&first); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Client left the room", "user_id", userID, "room_id", roomID)
			return nil
		case <-handle.Done():
			for _, e := range roomSink.Leftover(handle) {
				if frame, ok := api.FrameFromEvent(e); ok {
					if err := stream.Send(&frame); err != nil {
						return err
					}
				}
			}
			return nil
		case e := <-roomSink.Events():
			frame, ok := api.FrameFromEvent(e)
			if !ok {
				continue
			}
			if err := stream.Send(&frame); err != nil {
				s.log.Error("failed to push frame to stream",
					"user_id", userID,
					"room_id", roomID,
					"error", err)
				return err
			}
			if frame.Error != nil {
				return nil
			}
		}
	}
}

func (s *ChatServer) SendMessage(ctx context.Context, req *api.SendMessageRequest) (*api.Message, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	message, err := s.chatService.SendMessage(ctx, chat.SendMessageCommand{
		RoomID:   chat.RoomID(req.RoomID),
		SenderID: userID,
		Content:  req.Content,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return lo.ToPtr(api.FromMessage(message)), nil
}

func (s *ChatServer) MarkRead(ctx context.Context, req *api.MarkReadRequest) (*api.MarkReadResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	cmd := chat.MarkReadCommand{RoomID: chat.RoomID(req.RoomID), ReaderID: userID}
	if req.UpTo != "" {
		if cmd.UpTo, err = chat.ParseTimestamp(req.UpTo); err != nil {
			return nil, errors.MapToGRPCError(fmt.Errorf("%w: up_to: %v", errors.ErrInvalidCommand, err))
		}
	}
	receipt, err := s.chatService.MarkRead(ctx, cmd)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return lo.ToPtr(api.FromReceipt(receipt)), nil
}

func (s *ChatServer) ListRooms(ctx context.Context, _ *api.ListRoomsRequest) (*api.ListRoomsResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.chatService.ListRooms(ctx, userID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	rooms := make([]api.Room, 0, len(items))
	for _, item := range items {
		rooms = append(rooms, api.FromRoomListItem(item))
	}
	return &api.ListRoomsResponse{Rooms: rooms}, nil
}

func (s *ChatServer) CreateRoom(ctx context.Context, req *api.CreateRoomRequest) (*api.Room, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	room, err := s.chatService.CreateRoom(ctx, userID, chat.CreateRoomCommand{Participants: req.Participants})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return lo.ToPtr(api.FromRoom(room)), nil
}

// WatchRooms pushes a notice every time the caller's room list changes.
// It registers a dedicated sink in the registry for the stream's lifetime.
func (s *ChatServer) WatchRooms(_ *api.WatchRoomsRequest, stream grpc.ServerStreamingServer[api.RoomListChanged]) error {
	ctx := stream.Context()
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	watchSink := sink.NewStreamSink(s.log, s.connectionBufferSize, s.deliveryTimeout)
	sessionID := uuid.NewString()
	s.chatService.WatchRooms(sessionID, userID, watchSink)
	defer s.chatService.UnwatchRooms(sessionID, userID)

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Client stopped watching rooms", "user_id", userID)
			return nil
		case e := <-watchSink.Events():
			changed, ok := e.(event.RoomListChanged)
			if !ok {
				continue
			}
			if err := stream.Send(lo.ToPtr(api.FromRoomListChanged(changed))); err != nil {
				return err
			}
		}
	}
}
