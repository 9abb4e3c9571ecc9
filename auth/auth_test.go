package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travelmate/domain/chat"
	"travelmate/domain/travel"
	"travelmate/errors"
)

func TestIssueAndValidate(t *testing.T) {
	req := require.New(t)
	verifier := NewVerifier("a_long_enough_test_secret")

	token, err := verifier.Issue("u1", []string{"traveler"}, time.Hour)
	req.NoError(err)

	claims, err := verifier.Validate(token)
	req.NoError(err)
	req.Equal("u1", claims.UserID)
	req.Equal([]string{"traveler"}, claims.Roles)
}

func TestValidate_Rejects(t *testing.T) {
	verifier := NewVerifier("a_long_enough_test_secret")
	expired, err := verifier.Issue("u1", nil, -time.Minute)
	require.NoError(t, err)
	foreign, err := NewVerifier("another_secret").Issue("u1", nil, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired token", expired},
		{"signed with another secret", foreign},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Validate(tt.token)
			require.ErrorIs(t, err, errors.ErrInvalidToken)
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := require.New(t)
	token, ok := BearerToken("Bearer abc")
	req.True(ok)
	req.Equal("abc", token)

	_, ok = BearerToken("Basic abc")
	req.False(ok)
	_, ok = BearerToken("Bearer ")
	req.False(ok)
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		cmd     any
		wantErr bool
	}{
		{"valid message", chat.SendMessageCommand{RoomID: "r1", SenderID: "u1", Content: "hi"}, false},
		{"empty content", chat.SendMessageCommand{RoomID: "r1", SenderID: "u1"}, true},
		{"content too long", chat.SendMessageCommand{RoomID: "r1", SenderID: "u1", Content: string(make([]rune, 2001))}, true},
		{"valid pair", chat.CreateRoomCommand{Participants: []string{"u1", "u2"}}, false},
		{"same participant twice", chat.CreateRoomCommand{Participants: []string{"u1", "u1"}}, true},
		{"three participants", chat.CreateRoomCommand{Participants: []string{"u1", "u2", "u3"}}, true},
		{"limit too large", chat.OpenRoomCommand{RoomID: "r1", CallerID: "u1", Limit: 501}, true},
		{"request to self", travel.SendRequestCommand{SenderID: "u1", ReceiverID: "u1"}, true},
		{"request", travel.SendRequestCommand{SenderID: "u1", ReceiverID: "u2", Message: "hello"}, false},
		{"nearby without city", travel.NearbyQuery{CallerID: "u1", State: "Seoul"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.cmd)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrInvalidCommand)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
