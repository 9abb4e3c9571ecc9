package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"travelmate/domain/chat"
	"travelmate/errors"
)

const (
	messageFieldID protowire.Number = iota + 1
	messageFieldRoom
	messageFieldSender
	messageFieldContent
	messageFieldTimestamp
	messageFieldRead
)

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// messageKey is "msg:{room}:{unixnano padded to 19 digits}:{id}".
// The padding keeps lexicographical order chronological and the time-ordered
// id breaks ties between messages of the same nanosecond.
func messageKey(m chat.Message) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s", m.RoomID, m.Timestamp.UnixNano(), m.ID))
}

func messagePrefix(roomID chat.RoomID) []byte {
	return []byte(fmt.Sprintf("msg:%s:", roomID))
}

// Insert assigns a time-ordered id and persists the message.
func (m *MessageRepository) Insert(ctx context.Context, message chat.Message) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return chat.Message{}, err
	}
	message.ID = id.String()
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	message.Timestamp = message.Timestamp.UTC()

	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message), encodeMessage(message))
	})
	if err != nil {
		return chat.Message{}, storeError(err)
	}
	return message, nil
}

// Recent scans the room backwards and returns the last limit messages in
// ascending order. A limit of zero or less returns the whole room.
func (m *MessageRepository) Recent(ctx context.Context, roomID chat.RoomID, limit int) ([]chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var messages []chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := messagePrefix(roomID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(append(slices.Clone(prefix), 0xff)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", limit))
				break
			}
			message, err := readMessage(it.Item())
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	slices.Reverse(messages)
	return messages, nil
}

// MarkRead flips the read flag of every unread message of the room authored
// by someone else than readerID, with a timestamp up to upTo (inclusive).
// All flips happen in a single transaction. It returns how many were flipped.
func (m *MessageRepository) MarkRead(ctx context.Context, roomID chat.RoomID, readerID chat.UserID, upTo time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	updated := 0
	err := m.db.Update(func(txn *badger.Txn) error {
		pending, err := m.collectUnread(txn, roomID, readerID, upTo)
		if err != nil {
			return err
		}
		for _, message := range pending {
			message.Read = true
			if err := txn.Set(messageKey(message), encodeMessage(message)); err != nil {
				return err
			}
		}
		updated = len(pending)
		return nil
	})
	if err != nil {
		return 0, storeError(err)
	}
	return updated, nil
}

func (m *MessageRepository) CountUnread(ctx context.Context, roomID chat.RoomID, readerID chat.UserID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := m.db.View(func(txn *badger.Txn) error {
		pending, err := m.collectUnread(txn, roomID, readerID, time.Time{})
		count = len(pending)
		return err
	})
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}

func (m *MessageRepository) collectUnread(txn *badger.Txn, roomID chat.RoomID, readerID chat.UserID, upTo time.Time) ([]chat.Message, error) {
	prefix := messagePrefix(roomID)
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var pending []chat.Message
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		message, err := readMessage(it.Item())
		if err != nil {
			return nil, err
		}
		if !upTo.IsZero() && message.Timestamp.After(upTo) {
			// keys are chronological, nothing after this one qualifies
			break
		}
		if message.Read || message.SenderID == readerID {
			continue
		}
		pending = append(pending, message)
	}
	return pending, nil
}

func readMessage(item *badger.Item) (chat.Message, error) {
	var message chat.Message
	err := item.Value(func(value []byte) error {
		var err error
		message, err = decodeMessage(value)
		return err
	})
	return message, err
}

func encodeMessage(m chat.Message) []byte {
	var w recordWriter
	w.text(messageFieldID, m.ID)
	w.text(messageFieldRoom, string(m.RoomID))
	w.text(messageFieldSender, m.SenderID)
	w.text(messageFieldContent, m.Content)
	w.time(messageFieldTimestamp, m.Timestamp)
	w.boolean(messageFieldRead, m.Read)
	return w.bytes()
}

func decodeMessage(b []byte) (chat.Message, error) {
	var m chat.Message
	err := decodeRecord(b, func(f wireField) {
		switch f.num {
		case messageFieldID:
			m.ID = f.text()
		case messageFieldRoom:
			m.RoomID = chat.RoomID(f.text())
		case messageFieldSender:
			m.SenderID = f.text()
		case messageFieldContent:
			m.Content = f.text()
		case messageFieldTimestamp:
			m.Timestamp = f.time()
		case messageFieldRead:
			m.Read = f.boolean()
		}
	})
	return m, err
}

// storeError folds badger failures into the domain taxonomy.
func storeError(err error) error {
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return fmt.Errorf("%w: %v", errors.ErrNotFound, err)
	case errors.IsTransient(err):
		return errors.Transient(err)
	default:
		return err
	}
}
