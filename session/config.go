package session

import "time"

type Config struct {
	// HistoryLimit is the window used when Open is called without a limit.
	HistoryLimit int
	// MaxRetries bounds the reconnections of a subscription, counted over its
	// whole lifetime.
	MaxRetries int
	// ReconnectBackoff is multiplied by the failure count (linear backoff).
	ReconnectBackoff time.Duration
	ReadRetries      int
	ReadBackoff      time.Duration
}

func DefaultConfig() Config {
	return Config{
		HistoryLimit:     50,
		MaxRetries:       3,
		ReconnectBackoff: time.Second,
		ReadRetries:      3,
		ReadBackoff:      500 * time.Millisecond,
	}
}
