package domain

import (
	"github.com/mvidal/ordervault/internal/errors"
)

// Order-specific error definitions.
var (
	// ErrOrderNotFound indicates the referenced order does not exist.
	ErrOrderNotFound = errors.Wrap(errors.ErrNotFound, "order not found")

	// ErrInvalidStatusTransition indicates a status change that moves backwards
	// or skips a step. Order statuses only advance one step at a time.
	ErrInvalidStatusTransition = errors.Wrap(errors.ErrConflict, "invalid status transition")

	// ErrNoSensitivePayload indicates a decryption request for an order that was
	// created without an encrypted payload.
	ErrNoSensitivePayload = errors.Wrap(errors.ErrNotFound, "order has no sensitive payload")
)
