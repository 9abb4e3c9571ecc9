package chat

// SubscriptionState is the reconnection state of a live room subscription.
type SubscriptionState int

const (
	StateConnecting SubscriptionState = iota
	StateActive
	StateErrored
	StateReconnecting
	StateFailed
	StateClosed
)

func (s SubscriptionState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateActive:
		return "ACTIVE"
	case StateErrored:
		return "ERRORED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateFailed:
		return "FAILED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further automatic transition can happen.
func (s SubscriptionState) Terminal() bool {
	return s == StateFailed || s == StateClosed
}

// ChannelStatus is what a delivery channel reports about a subscription.
type ChannelStatus string

const (
	StatusSubscribed   ChannelStatus = "SUBSCRIBED"
	StatusChannelError ChannelStatus = "CHANNEL_ERROR"
	StatusClosed       ChannelStatus = "CLOSED"
)

// EventType is the row-level change kind a delivery channel carries.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
)
