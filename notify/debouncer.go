package notify

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"

	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/event"
)

// Debouncer collects room activity and, one window after the first activity
// of a burst, tells each concerned participant once that its room list
// changed. It is both the controller's Notifier and a supervised worker.
type Debouncer struct {
	registry    contract.IRegistry
	activities  chan event.RoomActivity
	window      time.Duration
	sinkTimeout time.Duration
	log         *slog.Logger
}

func NewDebouncer(registry contract.IRegistry, log *slog.Logger, window, sinkTimeout time.Duration, bufferSize int) *Debouncer {
	return &Debouncer{
		registry:    registry,
		activities:  make(chan event.RoomActivity, bufferSize),
		window:      window,
		sinkTimeout: sinkTimeout,
		log:         log,
	}
}

// Publish never blocks the sender. Activity dropped on a full buffer only
// delays a room list refresh until the next one.
func (d *Debouncer) Publish(e event.RoomActivity) {
	select {
	case d.activities <- e:
	default:
		d.log.Warn("Notifier buffer full, activity dropped", "room_id", e.RoomID)
	}
}

// Backlog is the number of activities waiting to be coalesced.
func (d *Debouncer) Backlog() int { return len(d.activities) }

func (d *Debouncer) Run(ctx context.Context) error {
	pending := make(map[chat.UserID]map[chat.RoomID]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			d.log.Debug("Stopping debouncer")
			return ctx.Err()
		case a := <-d.activities:
			for _, userID := range a.Participants {
				if userID == "" {
					continue
				}
				if _, ok := pending[userID]; !ok {
					pending[userID] = make(map[chat.RoomID]struct{})
				}
				pending[userID][a.RoomID] = struct{}{}
			}
			if timer == nil {
				timer = time.NewTimer(d.window)
				fire = timer.C
			}
		case <-fire:
			timer, fire = nil, nil
			d.flush(ctx, pending)
			pending = make(map[chat.UserID]map[chat.RoomID]struct{})
		}
	}
}

func (d *Debouncer) flush(ctx context.Context, pending map[chat.UserID]map[chat.RoomID]struct{}) {
	now := time.Now().UTC()
	for userID, rooms := range pending {
		sinks := d.registry.GetSinksForUser(userID)
		if len(sinks) == 0 {
			continue
		}
		roomIDs := lo.Keys(rooms)
		slices.Sort(roomIDs)
		changed := event.RoomListChanged{UserID: userID, RoomIDs: roomIDs, At: now}

		for _, sink := range sinks {
			sinkCtx, cancel := context.WithTimeout(ctx, d.sinkTimeout)
			if err := sink.Consume(sinkCtx, changed); err != nil {
				d.log.Warn("Room list change not delivered", "user_id", userID, "error", err)
			}
			cancel()
		}
	}
}
