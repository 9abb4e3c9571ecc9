package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"travelmate/api"
	"travelmate/auth"
	"travelmate/domain/chat"
	"travelmate/domain/travel"
	"travelmate/errors"
	"travelmate/infrastructure/gateway"
	"travelmate/mocks"
	"travelmate/session"
)

const secret = "a_long_enough_test_secret"

type fixture struct {
	gateway *gateway.Gateway
	chat    *mocks.MockIChatService
	travel  *mocks.MockITravelService
	token   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	verifier := auth.NewVerifier(secret)
	token, err := verifier.Issue("alice", []string{"traveler"}, time.Hour)
	require.NoError(t, err)
	chatService := mocks.NewMockIChatService(ctrl)
	travelService := mocks.NewMockITravelService(ctrl)
	g := gateway.NewGateway(logs.GetLoggerFromLevel(slog.LevelDebug), ":0", verifier,
		chatService, travelService, nil, 8, time.Second)
	return fixture{gateway: g, chat: chatService, travel: travelService, token: token}
}

func (f fixture) do(t *testing.T, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	r.Header.Set("Authorization", "Bearer "+f.token)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.gateway.App().Test(r, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestGateway_Requires_A_Token(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	resp, err := f.gateway.App().Test(httptest.NewRequest(http.MethodGet, "/api/rooms", nil), -1)

	req.NoError(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestGateway_ListRooms(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	room := chat.ChatRoom{ID: "room1", Participants: [2]chat.UserID{"alice", "bob"}, LastMessage: "hi", LastMessageTime: at, CreatedAt: at}

	f.chat.EXPECT().ListRooms(gomock.Any(), "alice").Return([]chat.RoomListItem{{ChatRoom: room, UnreadCount: 2}}, nil)

	resp, body := f.do(t, http.MethodGet, "/api/rooms", "")

	req.Equal(http.StatusOK, resp.StatusCode)
	var list api.ListRoomsResponse
	req.NoError(json.Unmarshal(body, &list))
	req.Len(list.Rooms, 1)
	req.Equal(2, list.Rooms[0].UnreadCount)
	req.Equal("2025-06-01T10:00:00Z", list.Rooms[0].LastMessageTime)
}

func TestGateway_SendMessage(t *testing.T) {
	f := newFixture(t)

	t.Run("should create the message as the caller", func(t *testing.T) {
		req := require.New(t)
		f.chat.EXPECT().
			SendMessage(gomock.Any(), chat.SendMessageCommand{RoomID: "room1", SenderID: "alice", Content: "hi"}).
			Return(chat.Message{ID: "m1", RoomID: "room1", SenderID: "alice", Content: "hi", Timestamp: time.Now()}, nil)

		resp, body := f.do(t, http.MethodPost, "/api/rooms/room1/messages", `{"content":"hi"}`)

		req.Equal(http.StatusCreated, resp.StatusCode)
		var message api.Message
		req.NoError(json.Unmarshal(body, &message))
		req.Equal("alice", message.SenderID)
		req.False(message.Read)
	})

	t.Run("should map a stranger to forbidden", func(t *testing.T) {
		req := require.New(t)
		f.chat.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(chat.Message{}, errors.ErrUnauthorized)

		resp, _ := f.do(t, http.MethodPost, "/api/rooms/room2/messages", `{"content":"hi"}`)

		req.Equal(http.StatusForbidden, resp.StatusCode)
	})

	t.Run("should map a delivery failure to bad gateway", func(t *testing.T) {
		req := require.New(t)
		f.chat.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Return(chat.Message{}, errors.ErrDeliveryFailure)

		resp, _ := f.do(t, http.MethodPost, "/api/rooms/room1/messages", `{"content":"hi"}`)

		req.Equal(http.StatusBadGateway, resp.StatusCode)
	})
}

func TestGateway_SendMessage_Room_Outlives_The_Request(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	first := "01a154ba-3c3e-4c8a-9d2f-5b1e7f0cb610"
	other := strings.Repeat("z", len(first))
	var commands []chat.SendMessageCommand
	f.chat.EXPECT().SendMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
			commands = append(commands, cmd)
			return chat.Message{ID: "m1", RoomID: cmd.RoomID, SenderID: cmd.SenderID, Content: cmd.Content, Timestamp: time.Now()}, nil
		}).Times(2)

	// Given a message sent to a room, and then another request on a room id of the same length
	f.do(t, http.MethodPost, "/api/rooms/"+first+"/messages", `{"content":"hi"}`)
	f.do(t, http.MethodPost, "/api/rooms/"+other+"/messages", `{"content":"hi"}`)

	// Then the room id kept from the first request is untouched
	req.Len(commands, 2)
	req.Equal(chat.RoomID(first), commands[0].RoomID)
	req.Equal(chat.RoomID(other), commands[1].RoomID)
}

func TestGateway_MarkRead(t *testing.T) {
	f := newFixture(t)

	t.Run("should pass the cutoff", func(t *testing.T) {
		req := require.New(t)
		upTo := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		f.chat.EXPECT().
			MarkRead(gomock.Any(), chat.MarkReadCommand{RoomID: "room1", ReaderID: "alice", UpTo: upTo}).
			Return(session.ReadReceipt{Updated: 3, Attempts: 1, Flushed: true}, nil)

		resp, body := f.do(t, http.MethodPost, "/api/rooms/room1/read", `{"up_to":"2025-06-01T10:00:00Z"}`)

		req.Equal(http.StatusOK, resp.StatusCode)
		req.JSONEq(`{"updated":3,"attempts":1,"flushed":true}`, string(body))
	})

	t.Run("should accept an empty body", func(t *testing.T) {
		req := require.New(t)
		f.chat.EXPECT().
			MarkRead(gomock.Any(), chat.MarkReadCommand{RoomID: "room1", ReaderID: "alice"}).
			Return(session.ReadReceipt{Attempts: 1, Flushed: true}, nil)

		resp, _ := f.do(t, http.MethodPost, "/api/rooms/room1/read", "")

		req.Equal(http.StatusOK, resp.StatusCode)
	})

	t.Run("should reject a malformed cutoff", func(t *testing.T) {
		req := require.New(t)

		resp, _ := f.do(t, http.MethodPost, "/api/rooms/room1/read", `{"up_to":"yesterday"}`)

		req.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGateway_Nearby(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	distance := 1.5

	f.travel.EXPECT().
		Nearby(gomock.Any(), travel.NearbyQuery{CallerID: "alice", City: "Seoul", State: "Seoul", RadiusKm: 5}).
		Return([]travel.NearbyTraveler{{Profile: travel.Profile{ID: "bob", Name: "Bob"}, DistanceKm: &distance}}, nil)

	resp, body := f.do(t, http.MethodGet, "/api/users/nearby?city=Seoul&state=Seoul&radius_km=5", "")

	req.Equal(http.StatusOK, resp.StatusCode)
	var nearby api.NearbyResponse
	req.NoError(json.Unmarshal(body, &nearby))
	req.Len(nearby.Travelers, 1)
	req.Equal("bob", nearby.Travelers[0].ID)
	req.InDelta(1.5, *nearby.Travelers[0].DistanceKm, 1e-9)
}

func TestGateway_Requests(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should list the requests between two users", func(t *testing.T) {
		req := require.New(t)
		f.travel.EXPECT().RequestsBetween(gomock.Any(), "alice", "bob").
			Return([]travel.Request{{ID: "r1", SenderID: "alice", ReceiverID: "bob", Status: travel.StatusDeclined, CreatedAt: at}}, nil)

		resp, body := f.do(t, http.MethodGet, "/api/requests/between-users?user_id=bob", "")

		req.Equal(http.StatusOK, resp.StatusCode)
		var requests api.RequestsResponse
		req.NoError(json.Unmarshal(body, &requests))
		req.Equal("declined", requests.Requests[0].Status)
	})

	t.Run("should report a duplicate as a conflict", func(t *testing.T) {
		req := require.New(t)
		f.travel.EXPECT().
			SendRequest(gomock.Any(), travel.SendRequestCommand{SenderID: "alice", ReceiverID: "bob", Message: "coffee?"}).
			Return(travel.Request{}, errors.ErrRequestExists)

		resp, _ := f.do(t, http.MethodPost, "/api/requests", `{"receiver_id":"bob","message":"coffee?"}`)

		req.Equal(http.StatusConflict, resp.StatusCode)
	})

	t.Run("should return the room of an accepted request", func(t *testing.T) {
		req := require.New(t)
		f.travel.EXPECT().AcceptRequest(gomock.Any(), "alice", "r1").Return(
			travel.Request{ID: "r1", Status: travel.StatusAccepted, CreatedAt: at},
			chat.ChatRoom{ID: "room1", Participants: [2]chat.UserID{"alice", "bob"}, CreatedAt: at},
			nil)

		resp, body := f.do(t, http.MethodPost, "/api/requests/r1/accept", "")

		req.Equal(http.StatusOK, resp.StatusCode)
		var accepted api.AcceptResponse
		req.NoError(json.Unmarshal(body, &accepted))
		req.Equal("room1", accepted.Room.ID)
		req.Equal("accepted", accepted.Request.Status)
	})
}

func TestGateway_Health(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	resp, err := f.gateway.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)

	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
}
