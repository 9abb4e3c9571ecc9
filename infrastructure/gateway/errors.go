package gateway

import (
	"github.com/gofiber/fiber/v2"

	"travelmate/errors"
)

// statusOf maps the domain taxonomy to HTTP, as MapToGRPCError does for gRPC.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, errors.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, errors.ErrInvalidCommand):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrRequestExists), errors.Is(err, errors.ErrRequestNotPending):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrTransientDelivery):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, errors.ErrDeliveryFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusOf(err)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
