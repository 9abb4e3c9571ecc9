package gateway

import (
	"context"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"travelmate/api"
	"travelmate/domain/chat"
	"travelmate/sink"
)

// roomStream writes the live room as JSON frames, the same frames the gRPC
// OpenRoom stream sends. Anything the client writes is ignored; reading only
// detects that it went away.
func (g *Gateway) roomStream(conn *websocket.Conn) {
	caller, _ := conn.Locals(userKey).(string)
	roomID := chat.RoomID(conn.Params("id"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	roomSink := sink.NewStreamSink(g.log, g.bufferSize, g.deliveryTimeout)
	handle, initial, err := g.chat.OpenRoom(ctx,
		chat.OpenRoomCommand{RoomID: roomID, CallerID: caller, Limit: queryInt(conn, "limit")},
		roomSink.RoomCallbacks(ctx, roomID))
	if err != nil {
		_ = conn.WriteJSON(fiber.Map{"error": err.Error(), "status": statusOf(err)})
		return
	}
	defer handle.Close()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					g.log.Debug("Websocket read error", "user_id", caller, "room_id", roomID, "error", err)
				}
				return
			}
		}
	}()

	if err := conn.WriteJSON(api.RoomFrame{Messages: api.FromMessages(initial), State: handle.State().String()}); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			g.log.Debug("Websocket closed", "user_id", caller, "room_id", roomID)
			return
		case <-handle.Done():
			leftover := roomSink.Leftover(handle)
			for _, e := range leftover {
				if frame, ok := api.FrameFromEvent(e); ok {
					if err := conn.WriteJSON(frame); err != nil {
						return
					}
				}
			}
			if len(leftover) > 0 {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscription failed"))
			}
			return
		case e := <-roomSink.Events():
			frame, ok := api.FrameFromEvent(e)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(frame); err != nil {
				g.log.Warn("Websocket write error", "user_id", caller, "room_id", roomID, "error", err)
				return
			}
			if frame.Error != nil {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscription failed"))
				return
			}
		}
	}
}

func queryInt(conn *websocket.Conn, key string) int {
	n, err := strconv.Atoi(conn.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
