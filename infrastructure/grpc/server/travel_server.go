package server

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"travelmate/api"
	"travelmate/domain/travel"
	"travelmate/errors"
	"travelmate/services"
)

type TravelServer struct {
	travelService services.ITravelService
	log           *slog.Logger
}

func NewTravelServer(log *slog.Logger, travelService services.ITravelService) *TravelServer {
	return &TravelServer{travelService: travelService, log: log}
}

func (s *TravelServer) Nearby(ctx context.Context, req *api.NearbyRequest) (*api.NearbyResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	travelers, err := s.travelService.Nearby(ctx, travel.NearbyQuery{
		CallerID: userID,
		City:     req.City,
		State:    req.State,
		RadiusKm: req.RadiusKm,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.NearbyResponse{
		Travelers: lo.Map(travelers, func(t travel.NearbyTraveler, _ int) api.Traveler { return api.FromTraveler(t) }),
	}, nil
}

func (s *TravelServer) SendRequest(ctx context.Context, req *api.SendRequestRequest) (*api.Request, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	request, err := s.travelService.SendRequest(ctx, travel.SendRequestCommand{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return lo.ToPtr(api.FromRequest(request)), nil
}

func (s *TravelServer) AcceptRequest(ctx context.Context, req *api.AnswerRequest) (*api.AcceptResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	request, room, err := s.travelService.AcceptRequest(ctx, userID, req.RequestID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.AcceptResponse{Request: api.FromRequest(request), Room: api.FromRoom(room)}, nil
}

func (s *TravelServer) DeclineRequest(ctx context.Context, req *api.AnswerRequest) (*api.Request, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	request, err := s.travelService.DeclineRequest(ctx, userID, req.RequestID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return lo.ToPtr(api.FromRequest(request)), nil
}

func (s *TravelServer) PendingRequests(ctx context.Context, _ *api.PendingRequestsRequest) (*api.RequestsResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.travelService.PendingRequests(ctx, userID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.RequestsResponse{Requests: api.FromRequests(requests)}, nil
}
