package e2e

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"travelmate/api"
)

type testChatSuite struct {
	BaseGrpcSuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

func (s *testChatSuite) TestLiveRoomFlow() {
	alice, bob := "alice-"+uuid.NewString(), "bob-"+uuid.NewString()
	var roomID string

	s.Run("Step 1: Create the room of the pair", func() {
		s.WithChat("Alice creates a room with Bob", func(ctx context.Context, client api.ChatServiceClient) {
			room, err := client.CreateRoom(s.As(ctx, alice), &api.CreateRoomRequest{Participants: []string{alice, bob}})
			s.Require().NoError(err)
			s.Require().ElementsMatch([2]string{alice, bob}, room.Participants)

			again, err := client.CreateRoom(s.As(ctx, bob), &api.CreateRoomRequest{Participants: []string{bob, alice}})
			s.Require().NoError(err)
			s.Require().Equal(room.ID, again.ID, "a pair must share a single room")
			roomID = room.ID
		})
	})

	s.Run("Step 2: Live stream receives the other side's message", func() {
		s.WithChat("Alice opens the room, Bob writes", func(ctx context.Context, client api.ChatServiceClient) {
			streamCtx, cancel := context.WithCancel(s.As(ctx, alice))
			defer cancel()
			stream, err := client.OpenRoom(streamCtx, &api.OpenRoomRequest{RoomID: roomID})
			s.Require().NoError(err)
			first, err := stream.Recv()
			s.Require().NoError(err)
			s.Require().Empty(first.Messages)

			sent, err := client.SendMessage(s.As(ctx, bob), &api.SendMessageRequest{RoomID: roomID, Content: "hello from e2e"})
			s.Require().NoError(err)

			for {
				frame, err := stream.Recv()
				s.Require().NoError(err)
				s.Require().Nil(frame.Error)
				if len(frame.Messages) == 0 {
					continue
				}
				s.Require().Equal(sent.ID, frame.Messages[len(frame.Messages)-1].ID)
				return
			}
		})
	})

	s.Run("Step 3: Reading clears the unread count", func() {
		s.WithChat("Alice reads the room", func(ctx context.Context, client api.ChatServiceClient) {
			receipt, err := client.MarkRead(s.As(ctx, alice), &api.MarkReadRequest{RoomID: roomID})
			s.Require().NoError(err)
			s.Require().True(receipt.Flushed)
			s.Require().Equal(1, receipt.Updated)

			rooms, err := client.ListRooms(s.As(ctx, alice), &api.ListRoomsRequest{})
			s.Require().NoError(err)
			s.Require().Len(rooms.Rooms, 1)
			s.Require().Zero(rooms.Rooms[0].UnreadCount)
		})
	})

	s.Run("Step 4: A stranger is refused", func() {
		s.WithChat("Mallory sends into the room", func(ctx context.Context, client api.ChatServiceClient) {
			_, err := client.SendMessage(s.As(ctx, "mallory-"+uuid.NewString()), &api.SendMessageRequest{RoomID: roomID, Content: "hi"})
			s.Require().Equal(codes.PermissionDenied, status.Code(err))
		})
	})

	s.Run("Step 5: Pending requests of a new traveler are empty", func() {
		s.WithTravel("Bob lists his requests", func(ctx context.Context, client api.TravelServiceClient) {
			pending, err := client.PendingRequests(s.As(ctx, bob), &api.PendingRequestsRequest{})
			s.Require().NoError(err)
			s.Require().Empty(pending.Requests)
		})
	})
}
