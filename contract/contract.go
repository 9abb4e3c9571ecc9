//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"slices"
	"time"

	"travelmate/domain/chat"
	"travelmate/domain/event"
	"travelmate/domain/travel"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// MessageStore is the persisted, ordered log of chat messages per room.
type MessageStore interface {
	// Insert assigns the id and persists the message.
	Insert(ctx context.Context, message chat.Message) (chat.Message, error)
	// Recent returns the most recent limit messages of the room, ascending.
	Recent(ctx context.Context, roomID chat.RoomID, limit int) ([]chat.Message, error)
	// MarkRead flags unread messages not sent by readerID, up to the cutoff.
	MarkRead(ctx context.Context, roomID chat.RoomID, readerID chat.UserID, upTo time.Time) (int, error)
	CountUnread(ctx context.Context, roomID chat.RoomID, readerID chat.UserID) (int, error)
}

// RoomStore is the chat room registry.
type RoomStore interface {
	// Create returns the existing room of the pair when there is one.
	Create(ctx context.Context, participants [2]chat.UserID) (chat.ChatRoom, bool, error)
	Get(ctx context.Context, roomID chat.RoomID) (chat.ChatRoom, error)
	UpdateSummary(ctx context.Context, roomID chat.RoomID, lastMessage string, at time.Time) error
	ListForUser(ctx context.Context, userID chat.UserID) ([]chat.ChatRoom, error)
}

const MessagesTable = "messages"

// Filter selects the change events a feed receives.
// An empty RoomID matches every room, empty Events every change kind.
type Filter struct {
	Table  string
	RoomID chat.RoomID
	Events []chat.EventType
}

func (f Filter) Matches(e event.ChangeEvent) bool {
	if f.Table != "" && f.Table != MessagesTable {
		return false
	}
	if f.RoomID != "" && f.RoomID != e.Message.RoomID {
		return false
	}
	return len(f.Events) == 0 || slices.Contains(f.Events, e.Type)
}

// Feed is a cancellable stream of change events and channel health reports.
// Both channels are closed once Unsubscribe returns.
type Feed interface {
	Events() <-chan event.ChangeEvent
	Status() <-chan event.StatusChange
	Unsubscribe()
}

// DeliveryChannel pushes row-level changes of the message store to subscribers.
// It makes no ordering guarantee.
type DeliveryChannel interface {
	Subscribe(ctx context.Context, filter Filter) (Feed, error)
	Publish(ctx context.Context, e event.ChangeEvent) error
}

// Notifier receives room activity for fan-out to interested participants.
type Notifier interface {
	Publish(e event.RoomActivity)
}

// Moderator masks forbidden words and reports the ones it found.
type Moderator interface {
	Censor(content string) (string, []string)
}

type IRegistry interface {
	GetSinksForUser(userID chat.UserID) []EventSink
	Subscribe(sessionID string, userID chat.UserID, sink EventSink)
	Unsubscribe(sessionID string, userID chat.UserID)
}

type ProfileStore interface {
	Upsert(ctx context.Context, profile travel.Profile) error
	Get(ctx context.Context, userID string) (travel.Profile, error)
	FindInCity(ctx context.Context, query travel.NearbyQuery, origin *travel.Location) ([]travel.Profile, error)
}

type RequestStore interface {
	Create(ctx context.Context, request travel.Request) (travel.Request, error)
	Get(ctx context.Context, requestID string) (travel.Request, error)
	UpdateStatus(ctx context.Context, requestID string, status travel.RequestStatus) (travel.Request, error)
	Pending(ctx context.Context, receiverID string) ([]travel.Request, error)
	Between(ctx context.Context, a, b string, statuses []travel.RequestStatus) ([]travel.Request, error)
	Counterparts(ctx context.Context, userID string, statuses []travel.RequestStatus) (map[string]struct{}, error)
}
