package travel

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

// Settled are the statuses that hide a traveler from discovery.
var Settled = []RequestStatus{StatusPending, StatusAccepted, StatusDeclined}

// Request is a connection request. Accepting it opens the pair's chat room.
type Request struct {
	ID         string
	SenderID   string
	ReceiverID string
	Message    string
	Status     RequestStatus
	CreatedAt  time.Time
}

// Involves reports whether the request is between a and b, in either direction.
func (r Request) Involves(a, b string) bool {
	return (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a)
}

type SendRequestCommand struct {
	SenderID   string `validate:"required"`
	ReceiverID string `validate:"required,nefield=SenderID"`
	Message    string `validate:"max=500"`
}
