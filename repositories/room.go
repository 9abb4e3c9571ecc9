package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"travelmate/domain/chat"
	"travelmate/errors"
)

const (
	roomFieldID protowire.Number = iota + 1
	roomFieldFirst
	roomFieldSecond
	roomFieldLastMessage
	roomFieldLastMessageTime
	roomFieldCreatedAt
)

const createAttempts = 3

// RoomRepository is the chat room registry.
// Keys:
//   - room:{id}            the room record
//   - pair:{a}:{b}         the room id of a participant pair, a < b
//   - member:{user}:{id}   membership index for room lists
type RoomRepository struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewRoomRepository(db *badger.DB, log *slog.Logger) *RoomRepository {
	return &RoomRepository{db: db, log: log, now: time.Now}
}

func roomKey(id chat.RoomID) []byte { return []byte("room:" + string(id)) }

func pairKey(pair [2]chat.UserID) []byte {
	return []byte(fmt.Sprintf("pair:%s:%s", pair[0], pair[1]))
}

func memberKey(userID chat.UserID, id chat.RoomID) []byte {
	return []byte(fmt.Sprintf("member:%s:%s", userID, id))
}

// Create opens the room of a participant pair, or returns the one that
// already exists. The boolean is true when a room was created.
func (r *RoomRepository) Create(ctx context.Context, participants [2]chat.UserID) (chat.ChatRoom, bool, error) {
	pair := chat.PairKey(participants[0], participants[1])
	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return chat.ChatRoom{}, false, err
		}
		var room chat.ChatRoom
		var created bool
		room, created, err = r.create(pair)
		if err == nil {
			return room, created, nil
		}
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		// another writer raced us on the pair key, the next attempt reads its room
		r.log.Debug("Room creation conflict, retrying", "pair", pair, "attempt", attempt+1)
	}
	return chat.ChatRoom{}, false, storeError(err)
}

func (r *RoomRepository) create(pair [2]chat.UserID) (chat.ChatRoom, bool, error) {
	var room chat.ChatRoom
	created := false
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(pair))
		switch {
		case err == nil:
			id, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			room, err = getRoom(txn, chat.RoomID(id))
			return err
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		now := r.now().UTC()
		room = chat.ChatRoom{
			ID:              chat.RoomID(id.String()),
			Participants:    pair,
			LastMessageTime: now,
			CreatedAt:       now,
		}
		created = true
		if err := txn.Set(roomKey(room.ID), encodeRoom(room)); err != nil {
			return err
		}
		if err := txn.Set(pairKey(pair), []byte(room.ID)); err != nil {
			return err
		}
		for _, p := range pair {
			if err := txn.Set(memberKey(p, room.ID), nil); err != nil {
				return err
			}
		}
		return nil
	})
	return room, created, err
}

func (r *RoomRepository) Get(ctx context.Context, roomID chat.RoomID) (chat.ChatRoom, error) {
	if err := ctx.Err(); err != nil {
		return chat.ChatRoom{}, err
	}
	var room chat.ChatRoom
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		room, err = getRoom(txn, roomID)
		return err
	})
	if err != nil {
		return chat.ChatRoom{}, storeError(err)
	}
	return room, nil
}

// UpdateSummary moves the denormalized last message forward. A summary older
// than the stored one is ignored so late writers can't roll it back.
func (r *RoomRepository) UpdateSummary(ctx context.Context, roomID chat.RoomID, lastMessage string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		room, err := getRoom(txn, roomID)
		if err != nil {
			return err
		}
		if at.Before(room.LastMessageTime) {
			return nil
		}
		room.LastMessage = lastMessage
		room.LastMessageTime = at.UTC()
		return txn.Set(roomKey(roomID), encodeRoom(room))
	})
	return storeError(err)
}

// ListForUser returns the rooms of a participant, most recently active first.
func (r *RoomRepository) ListForUser(ctx context.Context, userID chat.UserID) ([]chat.ChatRoom, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rooms []chat.ChatRoom
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("member:%s:", userID))
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		var ids []chat.RoomID
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, chat.RoomID(strings.TrimPrefix(string(it.Item().Key()), string(prefix))))
		}
		for _, id := range ids {
			room, err := getRoom(txn, id)
			if err != nil {
				return err
			}
			rooms = append(rooms, room)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	slices.SortFunc(rooms, func(a, b chat.ChatRoom) int {
		return b.LastMessageTime.Compare(a.LastMessageTime)
	})
	return rooms, nil
}

func getRoom(txn *badger.Txn, roomID chat.RoomID) (chat.ChatRoom, error) {
	item, err := txn.Get(roomKey(roomID))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return chat.ChatRoom{}, fmt.Errorf("%w: room %s", errors.ErrNotFound, roomID)
		}
		return chat.ChatRoom{}, err
	}
	var room chat.ChatRoom
	err = item.Value(func(value []byte) error {
		room, err = decodeRoom(value)
		return err
	})
	return room, err
}

func encodeRoom(room chat.ChatRoom) []byte {
	var w recordWriter
	w.text(roomFieldID, string(room.ID))
	w.text(roomFieldFirst, room.Participants[0])
	w.text(roomFieldSecond, room.Participants[1])
	w.text(roomFieldLastMessage, room.LastMessage)
	w.time(roomFieldLastMessageTime, room.LastMessageTime)
	w.time(roomFieldCreatedAt, room.CreatedAt)
	return w.bytes()
}

func decodeRoom(b []byte) (chat.ChatRoom, error) {
	var room chat.ChatRoom
	err := decodeRecord(b, func(f wireField) {
		switch f.num {
		case roomFieldID:
			room.ID = chat.RoomID(f.text())
		case roomFieldFirst:
			room.Participants[0] = f.text()
		case roomFieldSecond:
			room.Participants[1] = f.text()
		case roomFieldLastMessage:
			room.LastMessage = f.text()
		case roomFieldLastMessageTime:
			room.LastMessageTime = f.time()
		case roomFieldCreatedAt:
			room.CreatedAt = f.time()
		}
	})
	return room, err
}
