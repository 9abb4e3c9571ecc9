package errors

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound          = fmt.Errorf("not found")
	ErrUnauthorized      = fmt.Errorf("caller is not a participant")
	ErrTransientDelivery = fmt.Errorf("transient delivery failure")
	ErrDeliveryFailure   = fmt.Errorf("delivery failure")
	ErrInvalidCommand    = fmt.Errorf("invalid command")
	ErrInvalidToken      = fmt.Errorf("invalid or expired token")
	ErrRequestExists     = fmt.Errorf("a request between these users already exists")
	ErrRequestNotPending = fmt.Errorf("request is no longer pending")
	ErrHandleClosed      = fmt.Errorf("subscription handle closed")
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
)

// IsTransient reports whether a store or channel failure is worth retrying.
func IsTransient(err error) bool {
	switch {
	case err == nil:
		return false
	case stderrors.Is(err, ErrTransientDelivery),
		stderrors.Is(err, badger.ErrConflict),
		stderrors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}

// Transient wraps err as a retryable delivery failure.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrTransientDelivery, err)
}

// Is and As re-export the standard helpers so callers importing this package
// under its own name don't need a second alias.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }
