package domain

import (
	"github.com/mvidal/ordervault/internal/errors"
)

// Product-specific error definitions.
var (
	// ErrProductNotFound indicates the referenced product does not exist.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrProductAlreadyExists indicates a product with the same code is already registered.
	ErrProductAlreadyExists = errors.Wrap(errors.ErrConflict, "product already exists")

	// ErrInsufficientStock indicates a reservation asked for more units than are
	// available. The available quantity is not reported back; callers only learn
	// that the reservation cannot be satisfied.
	ErrInsufficientStock = errors.Wrap(errors.ErrConflict, "insufficient stock")
)
