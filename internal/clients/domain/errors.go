package domain

import (
	"github.com/mvidal/ordervault/internal/errors"
)

// Client-specific error definitions.
var (
	// ErrClientNotFound indicates the referenced client does not exist.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrClientAlreadyExists indicates a client with the same email is already registered.
	ErrClientAlreadyExists = errors.Wrap(errors.ErrConflict, "client already exists")
)
