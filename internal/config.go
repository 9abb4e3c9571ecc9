package internal

import (
	"fmt"
	"time"

	"travelmate/session"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL,default=INFO"`
	Host     string `env:"HOST,default=localhost"`
	GrpcPort int    `env:"GRPC_PORT,default=8080"`
	HttpPort int    `env:"HTTP_PORT,default=8081"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	// NatsURL selects the NATS delivery channel; empty keeps delivery in process.
	NatsURL           string `env:"NATS_URL"`
	NatsSubjectPrefix string `env:"NATS_SUBJECT_PREFIX,default=travelmate"`

	JwtSecret string `env:"JWT_SECRET,required=true"`

	HistoryLimit     int           `env:"HISTORY_LIMIT,default=50"`
	MaxRetries       int           `env:"MAX_RETRIES,default=3"`
	ReconnectBackoff time.Duration `env:"RECONNECT_BACKOFF,default=1s"`
	ReadRetries      int           `env:"READ_RETRIES,default=3"`
	ReadBackoff      time.Duration `env:"READ_BACKOFF,default=500ms"`

	NotifyDebounce       time.Duration `env:"NOTIFY_DEBOUNCE,default=300ms"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	BufferSize           int           `env:"BUFFER_SIZE,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,required=true"`
	MaxNearbyResults     int           `env:"MAX_NEARBY_RESULTS,default=100"`

	EnableModeration bool   `env:"ENABLE_MODERATION,default=true"`
	CharReplacement  string `env:"CHARACTER_REPLACEMENT,default=*"`
}

func (c Config) GrpcAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.GrpcPort) }

func (c Config) HttpAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.HttpPort) }

func (c Config) Session() session.Config {
	return session.Config{
		HistoryLimit:     c.HistoryLimit,
		MaxRetries:       c.MaxRetries,
		ReconnectBackoff: c.ReconnectBackoff,
		ReadRetries:      c.ReadRetries,
		ReadBackoff:      c.ReadBackoff,
	}
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
