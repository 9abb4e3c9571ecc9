package repositories

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Record is one decoded primary row: a chat.ChatRoom, chat.Message,
// travel.Request or travel.Profile. Index keys are never returned.
type Record struct {
	Key   string
	Value any
}

var decoders = map[string]func([]byte) (any, error){
	"room:":    func(b []byte) (any, error) { return decodeRoom(b) },
	"msg:":     func(b []byte) (any, error) { return decodeMessage(b) },
	"request:": func(b []byte) (any, error) { return decodeRequest(b) },
	"profile:": func(b []byte) (any, error) { return decodeProfile(b) },
}

// Kinds lists the prefixes Scan understands.
func Kinds() []string {
	return []string{"room:", "msg:", "request:", "profile:"}
}

// Scan walks every primary row under prefix in key order. A row that fails to
// decode is reported to visit with the error as value and the walk goes on.
func Scan(db *badger.DB, prefix string, visit func(Record) error) error {
	decode, err := decoderFor(prefix)
	if err != nil {
		return err
	}
	return db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			var value any
			if err := item.Value(func(v []byte) error {
				decoded, err := decode(v)
				if err != nil {
					value = fmt.Errorf("decode %s: %w", key, err)
					return nil
				}
				value = decoded
				return nil
			}); err != nil {
				return err
			}
			if err := visit(Record{Key: key, Value: value}); err != nil {
				return err
			}
		}
		return nil
	})
}

// decoderFor accepts any prefix narrowing one of Kinds, "msg:room1:" for
// the messages of a single room.
func decoderFor(prefix string) (func([]byte) (any, error), error) {
	for kind, decode := range decoders {
		if strings.HasPrefix(prefix, kind) {
			return decode, nil
		}
	}
	return nil, fmt.Errorf("unknown prefix %q, expected one of %v", prefix, Kinds())
}
