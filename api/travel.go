package api

import (
	"github.com/samber/lo"

	"travelmate/domain/chat"
	"travelmate/domain/travel"
)

type Location struct {
	Lat   float64 `json:"lat,omitempty"`
	Lng   float64 `json:"lng,omitempty"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

type Traveler struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Location   Location `json:"location"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func FromTraveler(t travel.NearbyTraveler) Traveler {
	return Traveler{
		ID:        t.ID,
		Name:      t.Name,
		Bio:       t.Bio,
		Languages: t.Languages,
		Location: Location{
			Lat:   t.Location.Lat,
			Lng:   t.Location.Lng,
			City:  t.Location.City,
			State: t.Location.State,
		},
		DistanceKm: t.DistanceKm,
	}
}

type Request struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func FromRequest(r travel.Request) Request {
	return Request{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  chat.FormatTimestamp(r.CreatedAt),
	}
}

func FromRequests(requests []travel.Request) []Request {
	return lo.Map(requests, func(r travel.Request, _ int) Request { return FromRequest(r) })
}

type NearbyRequest struct {
	City     string  `json:"city"`
	State    string  `json:"state"`
	RadiusKm float64 `json:"radius_km,omitempty"`
}

type NearbyResponse struct {
	Travelers []Traveler `json:"travelers"`
}

type SendRequestRequest struct {
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message,omitempty"`
}

type AnswerRequest struct {
	RequestID string `json:"request_id"`
}

type AcceptResponse struct {
	Request Request `json:"request"`
	Room    Room    `json:"room"`
}

type PendingRequestsRequest struct{}

type RequestsResponse struct {
	Requests []Request `json:"requests"`
}
