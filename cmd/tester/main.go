// Command tester joins a room as a given user: frames of the live stream are
// printed as they arrive and every stdin line is sent as a message.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"travelmate/api"
	"travelmate/auth"
)

type Config struct {
	ServerAddr string        `envconfig:"SERVER_ADDR" default:"localhost:8080"`
	JwtSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	UserID     string        `envconfig:"TESTER_USER" required:"true"`
	RoomID     string        `envconfig:"TESTER_ROOM"`
	Peer       string        `envconfig:"TESTER_PEER"`
	TokenTTL   time.Duration `envconfig:"TESTER_TOKEN_TTL" default:"1h"`
	Colours    bool          `envconfig:"TESTER_COLOURS" default:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	token, err := auth.NewVerifier(cfg.JwtSecret).Issue(cfg.UserID, []string{"traveler"}, cfg.TokenTTL)
	if err != nil {
		return err
	}

	conn, err := grpc.NewClient(cfg.ServerAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.ServerAddr, err)
	}
	defer conn.Close()
	client := api.NewChatServiceClient(conn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

	p := printer{colours: cfg.Colours}
	roomID := cfg.RoomID
	if roomID == "" {
		if cfg.Peer == "" {
			return fmt.Errorf("TESTER_ROOM or TESTER_PEER must be set")
		}
		room, err := client.CreateRoom(ctx, &api.CreateRoomRequest{Participants: []string{cfg.UserID, cfg.Peer}})
		if err != nil {
			return fmt.Errorf("room creation failed: %w", err)
		}
		roomID = room.ID
		p.info("room %s with %s", roomID, cfg.Peer)
	}

	stream, err := client.OpenRoom(ctx, &api.OpenRoomRequest{RoomID: roomID})
	if err != nil {
		return fmt.Errorf("open room failed: %w", err)
	}

	go func() {
		defer stop()
		for {
			frame, err := stream.Recv()
			if err == io.EOF || ctx.Err() != nil {
				return
			}
			if err != nil {
				p.failure("stream: %v", err)
				return
			}
			p.frame(cfg.UserID, frame)
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if _, err := client.SendMessage(ctx, &api.SendMessageRequest{RoomID: roomID, Content: line}); err != nil {
				p.failure("send: %v", err)
			}
		}
	}
}

type printer struct {
	colours bool
	seen    int
}

func (p *printer) frame(self string, frame *api.RoomFrame) {
	if frame.Error != nil {
		p.failure("subscription failed after %d errors: %s", frame.Error.FailedCount, frame.Error.Message)
		return
	}
	if frame.State != "" {
		p.info("state %s", frame.State)
	}
	// Each frame carries the whole window, only the tail is new.
	if len(frame.Messages) < p.seen {
		p.seen = 0
	}
	for _, m := range frame.Messages[p.seen:] {
		line := fmt.Sprintf("[%s] %s: %s", m.Timestamp, m.SenderID, m.Content)
		switch {
		case !p.colours:
			fmt.Println(line)
		case m.SenderID == self:
			color.Cyan.Println(line)
		default:
			color.Green.Println(line)
		}
	}
	if frame.Messages != nil {
		p.seen = len(frame.Messages)
	}
}

func (p *printer) info(format string, args ...any) {
	if p.colours {
		color.Gray.Printf(format+"\n", args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}

func (p *printer) failure(format string, args ...any) {
	if p.colours {
		color.Red.Printf(format+"\n", args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
