//go:generate go run go.uber.org/mock/mockgen -source=travel_service.go -destination=../mocks/mock_travel_service.go -package=mocks
package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"travelmate/auth"
	"travelmate/contract"
	"travelmate/domain/chat"
	"travelmate/domain/travel"
	"travelmate/errors"
)

type ITravelService interface {
	UpsertProfile(ctx context.Context, profile travel.Profile) error
	Nearby(ctx context.Context, query travel.NearbyQuery) ([]travel.NearbyTraveler, error)
	SendRequest(ctx context.Context, cmd travel.SendRequestCommand) (travel.Request, error)
	AcceptRequest(ctx context.Context, callerID, requestID string) (travel.Request, chat.ChatRoom, error)
	DeclineRequest(ctx context.Context, callerID, requestID string) (travel.Request, error)
	PendingRequests(ctx context.Context, userID string) ([]travel.Request, error)
	RequestsBetween(ctx context.Context, callerID, otherID string) ([]travel.Request, error)
}

type TravelService struct {
	profiles contract.ProfileStore
	requests contract.RequestStore
	rooms    contract.RoomStore
	log      *slog.Logger
}

func NewTravelService(profiles contract.ProfileStore, requests contract.RequestStore, rooms contract.RoomStore, log *slog.Logger) *TravelService {
	return &TravelService{profiles: profiles, requests: requests, rooms: rooms, log: log}
}

func (s *TravelService) UpsertProfile(ctx context.Context, profile travel.Profile) error {
	if profile.ID == "" {
		return fmt.Errorf("%w: profile without id", errors.ErrInvalidCommand)
	}
	return s.profiles.Upsert(ctx, profile)
}

// Nearby lists the travelers of the query's city the caller has never
// exchanged a request with, closest first. Travelers without coordinates
// come last, without a distance.
func (s *TravelService) Nearby(ctx context.Context, query travel.NearbyQuery) ([]travel.NearbyTraveler, error) {
	if err := auth.ValidateCommand(query); err != nil {
		return nil, err
	}

	var origin *travel.Location
	caller, err := s.profiles.Get(ctx, query.CallerID)
	switch {
	case err == nil:
		if caller.Location.HasCoordinates() {
			origin = &caller.Location
		}
	case errors.Is(err, errors.ErrNotFound):
	default:
		return nil, err
	}

	known, err := s.requests.Counterparts(ctx, query.CallerID, travel.Settled)
	if err != nil {
		return nil, err
	}
	query.Exclude = lo.Keys(known)
	slices.Sort(query.Exclude)
	profiles, err := s.profiles.FindInCity(ctx, query, origin)
	if err != nil {
		return nil, err
	}

	travelers := lo.FilterMap(profiles, func(p travel.Profile, _ int) (travel.NearbyTraveler, bool) {
		if _, ok := known[p.ID]; ok || p.ID == query.CallerID {
			return travel.NearbyTraveler{}, false
		}
		traveler := travel.NearbyTraveler{Profile: p}
		if origin != nil && p.Location.HasCoordinates() {
			d := travel.DistanceKm(origin.Lat, origin.Lng, p.Location.Lat, p.Location.Lng)
			traveler.DistanceKm = &d
		}
		return traveler, true
	})
	slices.SortStableFunc(travelers, func(a, b travel.NearbyTraveler) int {
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return 0
		case a.DistanceKm == nil:
			return 1
		case b.DistanceKm == nil:
			return -1
		default:
			return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
		}
	})
	return travelers, nil
}

func (s *TravelService) SendRequest(ctx context.Context, cmd travel.SendRequestCommand) (travel.Request, error) {
	if err := auth.ValidateCommand(cmd); err != nil {
		return travel.Request{}, err
	}
	if _, err := s.profiles.Get(ctx, cmd.ReceiverID); err != nil {
		return travel.Request{}, err
	}
	request, err := s.requests.Create(ctx, travel.Request{
		SenderID:   cmd.SenderID,
		ReceiverID: cmd.ReceiverID,
		Message:    cmd.Message,
	})
	if err != nil {
		return travel.Request{}, err
	}
	s.log.Info("Request sent", "request_id", request.ID, "sender_id", request.SenderID, "receiver_id", request.ReceiverID)
	return request, nil
}

// AcceptRequest marks the request accepted and opens the pair's chat room.
// When the room can't be created the request goes back to pending so it can
// be accepted again.
func (s *TravelService) AcceptRequest(ctx context.Context, callerID, requestID string) (travel.Request, chat.ChatRoom, error) {
	request, err := s.pendingFor(ctx, callerID, requestID)
	if err != nil {
		return travel.Request{}, chat.ChatRoom{}, err
	}

	accepted, err := s.requests.UpdateStatus(ctx, requestID, travel.StatusAccepted)
	if err != nil {
		return travel.Request{}, chat.ChatRoom{}, err
	}

	room, _, err := s.rooms.Create(ctx, chat.PairKey(request.SenderID, request.ReceiverID))
	if err != nil {
		if _, revertErr := s.requests.UpdateStatus(ctx, requestID, travel.StatusPending); revertErr != nil {
			s.log.Error("Accepted request left without a room", "request_id", requestID, "error", revertErr)
		}
		return travel.Request{}, chat.ChatRoom{}, fmt.Errorf("room for request %s: %w", requestID, err)
	}

	s.log.Info("Request accepted", "request_id", requestID, "room_id", room.ID)
	return accepted, room, nil
}

func (s *TravelService) DeclineRequest(ctx context.Context, callerID, requestID string) (travel.Request, error) {
	if _, err := s.pendingFor(ctx, callerID, requestID); err != nil {
		return travel.Request{}, err
	}
	return s.requests.UpdateStatus(ctx, requestID, travel.StatusDeclined)
}

func (s *TravelService) PendingRequests(ctx context.Context, userID string) ([]travel.Request, error) {
	return s.requests.Pending(ctx, userID)
}

// RequestsBetween returns every request exchanged by the two users, whatever
// its status, oldest first.
func (s *TravelService) RequestsBetween(ctx context.Context, callerID, otherID string) ([]travel.Request, error) {
	if callerID == "" || otherID == "" {
		return nil, fmt.Errorf("%w: both users are required", errors.ErrInvalidCommand)
	}
	return s.requests.Between(ctx, callerID, otherID, nil)
}

// pendingFor loads a request only its receiver may answer.
func (s *TravelService) pendingFor(ctx context.Context, callerID, requestID string) (travel.Request, error) {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return travel.Request{}, err
	}
	if request.ReceiverID != callerID {
		return travel.Request{}, errors.ErrUnauthorized
	}
	if request.Status != travel.StatusPending {
		return travel.Request{}, errors.ErrRequestNotPending
	}
	return request, nil
}
