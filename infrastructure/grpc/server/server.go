package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"

	"travelmate/api"
	"travelmate/auth"
)

// Worker serves both gRPC services under supervision. A crashed listener is
// restarted by the supervisor on the same address.
type Worker struct {
	address  string
	server   *grpc.Server
	listener func() (net.Listener, error)
	log      *slog.Logger
}

// NewServer registers the services behind the bearer token interceptors.
func NewServer(verifier *auth.Verifier, chat *ChatServer, travel *TravelServer) *grpc.Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(verifier.UnaryInterceptor),
		grpc.StreamInterceptor(verifier.StreamInterceptor),
	)
	api.RegisterChatServiceServer(s, chat)
	api.RegisterTravelServiceServer(s, travel)
	return s
}

func NewWorker(log *slog.Logger, address string, server *grpc.Server) *Worker {
	return &Worker{
		address:  address,
		server:   server,
		listener: func() (net.Listener, error) { return net.Listen("tcp", address) },
		log:      log,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	listener, err := w.listener()
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", w.address, err)
	}

	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting gRPC server", "address", w.address, "at", time.Now().UTC())
		errChan <- w.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		w.log.Info("Stopping gRPC server gracefully")
		w.server.GracefulStop()
		return nil
	case err := <-errChan:
		if err != nil && err != grpc.ErrServerStopped {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	}
}
