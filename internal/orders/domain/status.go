package domain

import (
	"fmt"

	"github.com/mvidal/ordervault/internal/errors"
)

// Status is the fulfillment state of an order.
type Status string

// Order fulfillment statuses. Transitions only move forward; an order never
// returns to an earlier state.
const (
	// StatusPending is the initial status of every new order.
	StatusPending Status = "pending"
	// StatusPreparing means the order is being assembled for delivery.
	StatusPreparing Status = "preparing"
	// StatusDelivered is the terminal status.
	StatusDelivered Status = "delivered"
)

// ParseStatus converts a stored string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPreparing, StatusDelivered:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown order status %q", errors.ErrInvalidInput, s)
	}
}

// CanTransitionTo reports whether the status may move to next. Only the
// immediate forward step is allowed: pending to preparing, preparing to
// delivered.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPreparing
	case StatusPreparing:
		return next == StatusDelivered
	default:
		return false
	}
}
