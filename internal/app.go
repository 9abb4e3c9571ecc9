package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"google.golang.org/grpc"

	"travelmate/auth"
	"travelmate/contract"
	"travelmate/delivery"
	"travelmate/infrastructure/gateway"
	"travelmate/infrastructure/grpc/server"
	"travelmate/moderation"
	"travelmate/notify"
	"travelmate/repositories"
	"travelmate/runtime"
	"travelmate/runtime/workers"
	"travelmate/services"
	"travelmate/session"
)

// App holds every long-lived component of the server. NewApp opens the
// stores and wires the graph, Run blocks under supervision until ctx ends.
type App struct {
	Config     Config
	Log        *slog.Logger
	DB         *badger.DB
	Index      *bluge.Writer
	Channel    contract.DeliveryChannel
	Registry   *notify.Registry
	Debouncer  *notify.Debouncer
	Controller *session.Controller
	Chat       *services.ChatService
	Travel     *services.TravelService
	Verifier   *auth.Verifier
	GRPC       *grpc.Server
	Gateway    *gateway.Gateway
	Health     *workers.HealthWorker
	Supervisor *workers.Supervisor

	closers []func() error
}

func NewApp(cfg Config, log *slog.Logger) (_ *App, err error) {
	app := &App{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	app.DB, err = badger.Open(badger.DefaultOptions(cfg.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	app.closers = append(app.closers, app.DB.Close)

	app.Index, err = bluge.OpenWriter(bluge.DefaultConfig(cfg.BlugeFilepath))
	if err != nil {
		return nil, fmt.Errorf("index opening failed: %w", err)
	}
	app.closers = append(app.closers, app.Index.Close)

	gauges, err := app.openChannel()
	if err != nil {
		return nil, err
	}

	moderator, err := app.moderator()
	if err != nil {
		return nil, err
	}

	messages := repositories.NewMessageRepository(app.DB, log)
	rooms := repositories.NewRoomRepository(app.DB, log)
	profiles := repositories.NewProfileRepository(app.DB, app.Index, log, cfg.MaxNearbyResults)
	requests := repositories.NewRequestRepository(app.DB, log)
	feed := delivery.NewChangeFeed(messages, app.Channel, log)

	app.Registry = notify.NewRegistry()
	app.Debouncer = notify.NewDebouncer(app.Registry, log, cfg.NotifyDebounce, cfg.SinkTimeout, cfg.BufferSize)
	app.Controller = session.NewController(feed, rooms, app.Channel, app.Debouncer, log, cfg.Session())
	app.Chat = services.NewChatService(app.Controller, rooms, feed, moderator, app.Registry, log)
	app.Travel = services.NewTravelService(profiles, requests, rooms, log)
	app.Verifier = auth.NewVerifier(cfg.JwtSecret)

	app.GRPC = server.NewServer(app.Verifier,
		server.NewChatServer(log, app.Chat, cfg.ConnectionBufferSize, cfg.SinkTimeout),
		server.NewTravelServer(log, app.Travel),
	)

	app.Supervisor = workers.NewSupervisor(log, cfg.RestartInterval)
	gauges = append(gauges,
		workers.Gauge{Name: "pending_notifications", Value: app.Debouncer.Backlog},
		workers.Gauge{Name: "worker_restarts", Value: app.Supervisor.Restarts},
	)
	app.Health = workers.NewHealthWorker(log, cfg.MetricInterval, gauges...)
	app.Gateway = gateway.NewGateway(log, cfg.HttpAddress(), app.Verifier,
		app.Chat, app.Travel, app.Health, cfg.ConnectionBufferSize, cfg.SinkTimeout)

	app.Supervisor.Add(
		app.Debouncer,
		app.Health,
		server.NewWorker(log, cfg.GrpcAddress(), app.GRPC),
		app.Gateway,
	)
	return app, nil
}

// openChannel picks NATS when a URL is configured and the in-process hub
// otherwise.
func (a *App) openChannel() ([]workers.Gauge, error) {
	if a.Config.NatsURL == "" {
		hub := delivery.NewHub(a.Log, a.Config.BufferSize)
		a.Channel = hub
		a.closers = append(a.closers, func() error { hub.Close(); return nil })
		return []workers.Gauge{{Name: "live_feeds", Value: hub.Feeds}}, nil
	}
	nc, err := delivery.NewNatsChannel(a.Config.NatsURL, a.Config.NatsSubjectPrefix, a.Log, a.Config.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("nats connection failed: %w", err)
	}
	a.Channel = nc
	a.closers = append(a.closers, nc.Close)
	return []workers.Gauge{{Name: "live_feeds", Value: nc.Feeds}}, nil
}

func (a *App) moderator() (contract.Moderator, error) {
	if !a.Config.EnableModeration {
		a.Log.Info("Moderation disabled")
		return nil, nil
	}
	char, err := CharacterRune(a.Config.CharReplacement)
	if err != nil {
		return nil, err
	}
	data, err := runtime.NewCensoredLoader(runtime.Censored).LoadAll(runtime.CensoredDir)
	if err != nil {
		return nil, fmt.Errorf("censored words loading failed: %w", err)
	}
	a.Log.Info("Censored words loaded", "languages", data.Languages, "words", len(data.Words))
	return moderation.NewMultilingualModerator(data.ByLanguage, char, a.Log)
}

func (a *App) Run(ctx context.Context) {
	a.Log.Info("Starting travelmate",
		"grpc", a.Config.GrpcAddress(), "http", a.Config.HttpAddress())
	a.Supervisor.Run(ctx)
}

// Close releases the stores in reverse opening order.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
