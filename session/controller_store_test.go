package session_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"travelmate/domain/chat"
	"travelmate/errors"
	"travelmate/mocks"
	"travelmate/session"
)

type storeFixture struct {
	messages   *mocks.MockMessageStore
	rooms      *mocks.MockRoomStore
	notifier   *mocks.MockNotifier
	controller *session.Controller
}

func newStoreFixture(t *testing.T) storeFixture {
	ctrl := gomock.NewController(t)
	cfg := session.DefaultConfig()
	cfg.ReadBackoff = time.Millisecond
	f := storeFixture{
		messages: mocks.NewMockMessageStore(ctrl),
		rooms:    mocks.NewMockRoomStore(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}
	f.controller = session.NewController(f.messages, f.rooms, mocks.NewMockDeliveryChannel(ctrl), f.notifier, slog.Default(), cfg)
	return f
}

func Test_SendMessage_Keeps_The_Message_When_The_Summary_Fails(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newStoreFixture(t)
	room := chat.ChatRoom{ID: "room1", Participants: [2]chat.UserID{"u1", "u2"}}
	stored := chat.Message{ID: "m1", RoomID: "room1", SenderID: "u1", Content: "hi", Timestamp: time.Now()}

	f.rooms.EXPECT().Get(ctx, chat.RoomID("room1")).Return(room, nil)
	f.messages.EXPECT().Insert(ctx, gomock.Any()).Return(stored, nil)
	f.rooms.EXPECT().UpdateSummary(ctx, chat.RoomID("room1"), "hi", stored.Timestamp).Return(errors.ErrTransientDelivery)
	f.notifier.EXPECT().Publish(gomock.Any()).Times(0)

	sent, err := f.controller.SendMessage(ctx, "room1", "u1", "hi")

	req.ErrorIs(err, errors.ErrDeliveryFailure)
	req.Equal(stored, sent)
}

func Test_SendMessage_Insert_Failure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newStoreFixture(t)

	f.rooms.EXPECT().Get(ctx, chat.RoomID("room1")).Return(chat.ChatRoom{ID: "room1"}, nil)
	f.messages.EXPECT().Insert(ctx, gomock.Any()).Return(chat.Message{}, badger.ErrConflict)
	f.rooms.EXPECT().UpdateSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.controller.SendMessage(ctx, "room1", "u1", "hi")
	req.ErrorIs(err, errors.ErrDeliveryFailure)
}

func Test_MarkRead_Retries_Transient_Failures(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newStoreFixture(t)
	room := chat.ChatRoom{ID: "room1", Participants: [2]chat.UserID{"u1", "u2"}}

	t.Run("should flush after two transient failures", func(t *testing.T) {
		f.rooms.EXPECT().Get(ctx, room.ID).Return(room, nil)
		gomock.InOrder(
			f.messages.EXPECT().MarkRead(ctx, room.ID, "u1", time.Time{}).Return(0, errors.Transient(badger.ErrConflict)).Times(2),
			f.messages.EXPECT().MarkRead(ctx, room.ID, "u1", time.Time{}).Return(3, nil),
		)
		f.notifier.EXPECT().Publish(gomock.Any())

		receipt, err := f.controller.MarkRead(ctx, room.ID, "u1", time.Time{})

		req.NoError(err)
		req.Equal(session.ReadReceipt{Updated: 3, Attempts: 3, Flushed: true}, receipt)
	})

	t.Run("should report un-flushed state after exhausting retries", func(t *testing.T) {
		f.rooms.EXPECT().Get(ctx, room.ID).Return(room, nil)
		f.messages.EXPECT().MarkRead(ctx, room.ID, "u1", time.Time{}).Return(0, badger.ErrConflict).Times(4)

		receipt, err := f.controller.MarkRead(ctx, room.ID, "u1", time.Time{})

		req.ErrorIs(err, errors.ErrDeliveryFailure)
		req.False(receipt.Flushed)
		req.Equal(4, receipt.Attempts)
	})

	t.Run("should not retry a permanent failure", func(t *testing.T) {
		f.rooms.EXPECT().Get(ctx, room.ID).Return(room, nil)
		f.messages.EXPECT().MarkRead(ctx, room.ID, "u1", time.Time{}).Return(0, fmt.Errorf("disk full")).Times(1)

		receipt, err := f.controller.MarkRead(ctx, room.ID, "u1", time.Time{})

		req.ErrorIs(err, errors.ErrDeliveryFailure)
		req.Equal(1, receipt.Attempts)
	})
}
