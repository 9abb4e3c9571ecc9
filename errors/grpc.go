package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapToGRPCError translates the domain taxonomy into gRPC status codes.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok && !isDomainError(err) {
		return err
	}
	switch {
	case Is(err, ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case Is(err, ErrUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case Is(err, ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case Is(err, ErrInvalidCommand):
		return status.Error(codes.InvalidArgument, err.Error())
	case Is(err, ErrRequestExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case Is(err, ErrRequestNotPending):
		return status.Error(codes.FailedPrecondition, err.Error())
	case Is(err, ErrTransientDelivery):
		return status.Error(codes.Unavailable, err.Error())
	case Is(err, ErrDeliveryFailure):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUnauthorized, ErrInvalidToken, ErrInvalidCommand,
		ErrRequestExists, ErrRequestNotPending, ErrTransientDelivery, ErrDeliveryFailure,
	} {
		if Is(err, target) {
			return true
		}
	}
	return false
}
