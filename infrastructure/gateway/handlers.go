package gateway

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"travelmate/api"
	"travelmate/domain/chat"
	"travelmate/domain/travel"
	"travelmate/errors"
)

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
}

func (g *Gateway) listRooms(c *fiber.Ctx) error {
	items, err := g.chat.ListRooms(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(api.ListRoomsResponse{
		Rooms: lo.Map(items, func(item chat.RoomListItem, _ int) api.Room { return api.FromRoomListItem(item) }),
	})
}

func (g *Gateway) createRoom(c *fiber.Ctx) error {
	var body api.CreateRoomRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(err)
	}
	room, err := g.chat.CreateRoom(c.UserContext(), userID(c), chat.CreateRoomCommand{Participants: body.Participants})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(api.FromRoom(room))
}

func (g *Gateway) history(c *fiber.Ctx) error {
	messages, err := g.chat.History(c.UserContext(), userID(c), chat.RoomID(c.Params("id")), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(api.FromMessages(messages))
}

func (g *Gateway) sendMessage(c *fiber.Ctx) error {
	var body api.SendMessageRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(err)
	}
	message, err := g.chat.SendMessage(c.UserContext(), chat.SendMessageCommand{
		RoomID:   chat.RoomID(c.Params("id")),
		SenderID: userID(c),
		Content:  body.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(api.FromMessage(message))
}

func (g *Gateway) markRead(c *fiber.Ctx) error {
	var body api.MarkReadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(err)
		}
	}
	cmd := chat.MarkReadCommand{RoomID: chat.RoomID(c.Params("id")), ReaderID: userID(c)}
	if body.UpTo != "" {
		upTo, err := chat.ParseTimestamp(body.UpTo)
		if err != nil {
			return badRequest(err)
		}
		cmd.UpTo = upTo
	}
	receipt, err := g.chat.MarkRead(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(api.FromReceipt(receipt))
}

func (g *Gateway) nearby(c *fiber.Ctx) error {
	travelers, err := g.travel.Nearby(c.UserContext(), travel.NearbyQuery{
		CallerID: userID(c),
		City:     c.Query("city"),
		State:    c.Query("state"),
		RadiusKm: c.QueryFloat("radius_km", 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(api.NearbyResponse{
		Travelers: lo.Map(travelers, func(t travel.NearbyTraveler, _ int) api.Traveler { return api.FromTraveler(t) }),
	})
}

func (g *Gateway) sendRequest(c *fiber.Ctx) error {
	var body api.SendRequestRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(err)
	}
	request, err := g.travel.SendRequest(c.UserContext(), travel.SendRequestCommand{
		SenderID:   userID(c),
		ReceiverID: body.ReceiverID,
		Message:    body.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(api.FromRequest(request))
}

func (g *Gateway) pendingRequests(c *fiber.Ctx) error {
	requests, err := g.travel.PendingRequests(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(api.RequestsResponse{Requests: api.FromRequests(requests)})
}

func (g *Gateway) requestsBetween(c *fiber.Ctx) error {
	requests, err := g.travel.RequestsBetween(c.UserContext(), userID(c), c.Query("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(api.RequestsResponse{Requests: api.FromRequests(requests)})
}

func (g *Gateway) acceptRequest(c *fiber.Ctx) error {
	request, room, err := g.travel.AcceptRequest(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(api.AcceptResponse{Request: api.FromRequest(request), Room: api.FromRoom(room)})
}

func (g *Gateway) declineRequest(c *fiber.Ctx) error {
	request, err := g.travel.DeclineRequest(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(api.FromRequest(request))
}
