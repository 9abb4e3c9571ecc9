// Package gateway exposes the chat and travel services to browsers: a small
// REST surface plus a websocket per live room.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"travelmate/auth"
	"travelmate/runtime/workers"
	"travelmate/services"
)

const userKey = "user_id"

type HealthReporter interface {
	Snapshot() *workers.Health
}

type Gateway struct {
	app             *fiber.App
	address         string
	chat            services.IChatService
	travel          services.ITravelService
	verifier        *auth.Verifier
	health          HealthReporter
	bufferSize      int
	deliveryTimeout time.Duration
	log             *slog.Logger
}

func NewGateway(log *slog.Logger, address string, verifier *auth.Verifier,
	chat services.IChatService, travel services.ITravelService, health HealthReporter,
	bufferSize int, deliveryTimeout time.Duration) *Gateway {
	g := &Gateway{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
			// route params end up in stored messages read by other goroutines
			Immutable: true,
		}),
		address:         address,
		chat:            chat,
		travel:          travel,
		verifier:        verifier,
		health:          health,
		bufferSize:      bufferSize,
		deliveryTimeout: deliveryTimeout,
		log:             log,
	}
	g.routes()
	return g
}

// App is the underlying fiber application, for tests.
func (g *Gateway) App() *fiber.App { return g.app }

func (g *Gateway) routes() {
	g.app.Get("/health", g.getHealth)

	api := g.app.Group("/api", g.authenticate)
	api.Get("/rooms", g.listRooms)
	api.Post("/rooms", g.createRoom)
	api.Get("/rooms/:id/messages", g.history)
	api.Post("/rooms/:id/messages", g.sendMessage)
	api.Post("/rooms/:id/read", g.markRead)
	api.Get("/users/nearby", g.nearby)
	api.Post("/requests", g.sendRequest)
	api.Get("/requests/pending", g.pendingRequests)
	api.Get("/requests/between-users", g.requestsBetween)
	api.Post("/requests/:id/accept", g.acceptRequest)
	api.Post("/requests/:id/decline", g.declineRequest)

	g.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}, g.authenticate)
	g.app.Get("/ws/rooms/:id", websocket.New(g.roomStream))
}

// authenticate accepts the token as a bearer header, or as an access_token
// query parameter since browsers can't set headers on a websocket upgrade.
func (g *Gateway) authenticate(c *fiber.Ctx) error {
	token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		token = strings.TrimSpace(c.Query("access_token"))
	}
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "authorization token is missing")
	}
	claims, err := g.verifier.Validate(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}
	c.Locals(userKey, claims.UserID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(userKey).(string)
	return id
}

func (g *Gateway) getHealth(c *fiber.Ctx) error {
	if g.health == nil {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	snapshot := g.health.Snapshot()
	if snapshot == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "starting"})
	}
	return c.JSON(fiber.Map{"status": "ok", "health": snapshot})
}

// Run serves until ctx is done, then shuts down within five seconds.
func (g *Gateway) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		g.log.Info("Starting HTTP gateway", "address", g.address, "at", time.Now().UTC())
		errChan <- g.app.Listen(g.address)
	}()

	select {
	case <-ctx.Done():
		g.log.Info("Stopping HTTP gateway")
		return g.app.ShutdownWithTimeout(5 * time.Second)
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("http gateway error: %w", err)
		}
		return nil
	}
}
