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

	"travelmate/domain/travel"
	"travelmate/errors"
)

const (
	requestFieldID protowire.Number = iota + 1
	requestFieldSender
	requestFieldReceiver
	requestFieldMessage
	requestFieldStatus
	requestFieldCreatedAt
)

// RequestRepository stores connection requests.
// Keys:
//   - request:{id}
//   - request-to:{receiver}:{id}
//   - request-from:{sender}:{id}
type RequestRepository struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewRequestRepository(db *badger.DB, log *slog.Logger) *RequestRepository {
	return &RequestRepository{db: db, log: log, now: time.Now}
}

func requestKey(id string) []byte { return []byte("request:" + id) }

func requestToKey(receiver, id string) []byte {
	return []byte(fmt.Sprintf("request-to:%s:%s", receiver, id))
}

func requestFromKey(sender, id string) []byte {
	return []byte(fmt.Sprintf("request-from:%s:%s", sender, id))
}

// Create persists a new pending request, unless a pending or accepted one
// already links the two users in either direction.
func (r *RequestRepository) Create(ctx context.Context, request travel.Request) (travel.Request, error) {
	if err := ctx.Err(); err != nil {
		return travel.Request{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return travel.Request{}, err
	}
	request.ID = id.String()
	request.Status = travel.StatusPending
	request.CreatedAt = r.now().UTC()

	err = r.db.Update(func(txn *badger.Txn) error {
		existing, err := requestsOf(txn, request.SenderID)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if !other.Involves(request.SenderID, request.ReceiverID) {
				continue
			}
			if other.Status == travel.StatusPending || other.Status == travel.StatusAccepted {
				return fmt.Errorf("%w: %s", errors.ErrRequestExists, other.ID)
			}
		}
		if err := txn.Set(requestKey(request.ID), encodeRequest(request)); err != nil {
			return err
		}
		if err := txn.Set(requestToKey(request.ReceiverID, request.ID), nil); err != nil {
			return err
		}
		return txn.Set(requestFromKey(request.SenderID, request.ID), nil)
	})
	if err != nil {
		return travel.Request{}, storeError(err)
	}
	r.log.Debug("Request created", "request_id", request.ID, "sender", request.SenderID, "receiver", request.ReceiverID)
	return request, nil
}

func (r *RequestRepository) Get(ctx context.Context, requestID string) (travel.Request, error) {
	if err := ctx.Err(); err != nil {
		return travel.Request{}, err
	}
	var request travel.Request
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		request, err = getRequest(txn, requestID)
		return err
	})
	if err != nil {
		return travel.Request{}, storeError(err)
	}
	return request, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, requestID string, status travel.RequestStatus) (travel.Request, error) {
	if err := ctx.Err(); err != nil {
		return travel.Request{}, err
	}
	var request travel.Request
	err := r.db.Update(func(txn *badger.Txn) error {
		var err error
		request, err = getRequest(txn, requestID)
		if err != nil {
			return err
		}
		request.Status = status
		return txn.Set(requestKey(request.ID), encodeRequest(request))
	})
	if err != nil {
		return travel.Request{}, storeError(err)
	}
	return request, nil
}

// Pending returns the pending requests received by receiverID, oldest first.
func (r *RequestRepository) Pending(ctx context.Context, receiverID string) ([]travel.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var pending []travel.Request
	err := r.db.View(func(txn *badger.Txn) error {
		ids := indexedIDs(txn, "request-to:"+receiverID+":")
		for _, id := range ids {
			request, err := getRequest(txn, id)
			if err != nil {
				return err
			}
			if request.Status == travel.StatusPending {
				pending = append(pending, request)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	sortRequests(pending)
	return pending, nil
}

// Between returns the requests exchanged by a and b in either direction whose
// status is one of statuses. No statuses means any.
func (r *RequestRepository) Between(ctx context.Context, a, b string, statuses []travel.RequestStatus) ([]travel.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var between []travel.Request
	err := r.db.View(func(txn *badger.Txn) error {
		all, err := requestsOf(txn, a)
		if err != nil {
			return err
		}
		for _, request := range all {
			if request.Involves(a, b) && matchesStatus(request, statuses) {
				between = append(between, request)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	sortRequests(between)
	return between, nil
}

// Counterparts returns every user userID has exchanged a request with,
// restricted to the given statuses.
func (r *RequestRepository) Counterparts(ctx context.Context, userID string, statuses []travel.RequestStatus) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	counterparts := make(map[string]struct{})
	err := r.db.View(func(txn *badger.Txn) error {
		all, err := requestsOf(txn, userID)
		if err != nil {
			return err
		}
		for _, request := range all {
			if !matchesStatus(request, statuses) {
				continue
			}
			if request.SenderID == userID {
				counterparts[request.ReceiverID] = struct{}{}
			} else {
				counterparts[request.SenderID] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return counterparts, nil
}

// requestsOf loads every request sent or received by userID.
func requestsOf(txn *badger.Txn, userID string) ([]travel.Request, error) {
	ids := append(
		indexedIDs(txn, "request-from:"+userID+":"),
		indexedIDs(txn, "request-to:"+userID+":")...,
	)
	requests := make([]travel.Request, 0, len(ids))
	for _, id := range ids {
		request, err := getRequest(txn, id)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// indexedIDs returns the trailing id segment of every key under prefix.
func indexedIDs(txn *badger.Txn, prefix string) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	for it.Rewind(); it.Valid(); it.Next() {
		ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), prefix))
	}
	return ids
}

func matchesStatus(request travel.Request, statuses []travel.RequestStatus) bool {
	return len(statuses) == 0 || slices.Contains(statuses, request.Status)
}

func sortRequests(requests []travel.Request) {
	slices.SortFunc(requests, func(a, b travel.Request) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func getRequest(txn *badger.Txn, id string) (travel.Request, error) {
	item, err := txn.Get(requestKey(id))
	if err != nil {
		return travel.Request{}, err
	}
	var request travel.Request
	err = item.Value(func(value []byte) error {
		request, err = decodeRequest(value)
		return err
	})
	return request, err
}

func encodeRequest(request travel.Request) []byte {
	var w recordWriter
	w.text(requestFieldID, request.ID)
	w.text(requestFieldSender, request.SenderID)
	w.text(requestFieldReceiver, request.ReceiverID)
	w.text(requestFieldMessage, request.Message)
	w.text(requestFieldStatus, string(request.Status))
	w.time(requestFieldCreatedAt, request.CreatedAt)
	return w.bytes()
}

func decodeRequest(b []byte) (travel.Request, error) {
	var request travel.Request
	err := decodeRecord(b, func(f wireField) {
		switch f.num {
		case requestFieldID:
			request.ID = f.text()
		case requestFieldSender:
			request.SenderID = f.text()
		case requestFieldReceiver:
			request.ReceiverID = f.text()
		case requestFieldMessage:
			request.Message = f.text()
		case requestFieldStatus:
			request.Status = travel.RequestStatus(f.text())
		case requestFieldCreatedAt:
			request.CreatedAt = f.time()
		}
	})
	return request, err
}
