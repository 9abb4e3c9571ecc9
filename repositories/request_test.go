package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travelmate/domain/travel"
	"travelmate/errors"
)

func Test_Create_Request_Rejects_Open_Duplicates(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewRequestRepository(openDB(t), slog.Default())

	// Given a pending request from alice to bob
	sent, err := repository.Create(ctx, travel.Request{SenderID: "alice", ReceiverID: "bob", Message: "coffee?"})
	req.NoError(err)
	req.Equal(travel.StatusPending, sent.Status)

	// When bob sends one back
	_, err = repository.Create(ctx, travel.Request{SenderID: "bob", ReceiverID: "alice"})

	// Then it is refused
	req.ErrorIs(err, errors.ErrRequestExists)
}

func Test_Declined_Request_Can_Be_Sent_Again(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewRequestRepository(openDB(t), slog.Default())

	sent, err := repository.Create(ctx, travel.Request{SenderID: "alice", ReceiverID: "bob"})
	req.NoError(err)
	_, err = repository.UpdateStatus(ctx, sent.ID, travel.StatusDeclined)
	req.NoError(err)

	_, err = repository.Create(ctx, travel.Request{SenderID: "alice", ReceiverID: "bob"})
	req.NoError(err)
}

func Test_Pending_Lists_Received_Requests(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewRequestRepository(openDB(t), slog.Default())
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repository.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	fromAlice, err := repository.Create(ctx, travel.Request{SenderID: "alice", ReceiverID: "carol"})
	req.NoError(err)
	fromBob, err := repository.Create(ctx, travel.Request{SenderID: "bob", ReceiverID: "carol"})
	req.NoError(err)
	_, err = repository.Create(ctx, travel.Request{SenderID: "carol", ReceiverID: "dave"})
	req.NoError(err)
	_, err = repository.UpdateStatus(ctx, fromBob.ID, travel.StatusAccepted)
	req.NoError(err)

	pending, err := repository.Pending(ctx, "carol")
	req.NoError(err)
	req.Len(pending, 1)
	req.Equal(fromAlice.ID, pending[0].ID)
}

func Test_Between_And_Counterparts(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewRequestRepository(openDB(t), slog.Default())

	toBob, err := repository.Create(ctx, travel.Request{SenderID: "alice", ReceiverID: "bob"})
	req.NoError(err)
	_, err = repository.Create(ctx, travel.Request{SenderID: "carol", ReceiverID: "alice"})
	req.NoError(err)
	_, err = repository.Create(ctx, travel.Request{SenderID: "dave", ReceiverID: "erin"})
	req.NoError(err)
	_, err = repository.UpdateStatus(ctx, toBob.ID, travel.StatusAccepted)
	req.NoError(err)

	between, err := repository.Between(ctx, "bob", "alice", []travel.RequestStatus{travel.StatusAccepted})
	req.NoError(err)
	req.Len(between, 1)
	req.Equal(toBob.ID, between[0].ID)

	none, err := repository.Between(ctx, "alice", "bob", []travel.RequestStatus{travel.StatusDeclined})
	req.NoError(err)
	req.Empty(none)

	counterparts, err := repository.Counterparts(ctx, "alice", travel.Settled)
	req.NoError(err)
	req.Equal(map[string]struct{}{"bob": {}, "carol": {}}, counterparts)
}

func Test_UpdateStatus_Unknown_Request(t *testing.T) {
	repository := NewRequestRepository(openDB(t), slog.Default())
	_, err := repository.UpdateStatus(context.Background(), "missing", travel.StatusAccepted)
	require.ErrorIs(t, err, errors.ErrNotFound)
}
