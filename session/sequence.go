package session

import (
	"slices"

	"travelmate/domain/chat"
)

// sequence is the ordered, de-duplicated view of a room held by one
// subscription. It only grows.
type sequence struct {
	messages []chat.Message
	seen     map[string]struct{}
}

func newSequence(initial []chat.Message) *sequence {
	s := &sequence{seen: make(map[string]struct{}, len(initial))}
	s.merge(initial)
	return s
}

// insert places m at its (timestamp, id) position. Delivery channels don't
// order their events, so appending is never assumed to be correct.
func (s *sequence) insert(m chat.Message) bool {
	if _, ok := s.seen[m.ID]; ok {
		return false
	}
	s.seen[m.ID] = struct{}{}
	i, _ := slices.BinarySearchFunc(s.messages, m, chat.Compare)
	s.messages = slices.Insert(s.messages, i, m)
	return true
}

func (s *sequence) merge(batch []chat.Message) bool {
	changed := false
	for _, m := range batch {
		if s.insert(m) {
			changed = true
		}
	}
	return changed
}

// snapshot is handed to subscribers, who may keep or mutate it.
func (s *sequence) snapshot() []chat.Message {
	return slices.Clone(s.messages)
}

func (s *sequence) len() int { return len(s.messages) }
