// Package domain defines the core domain model for clients, the buyers that
// orders are created for.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

// Client represents a registered buyer.
type Client struct {
	// ID is the unique identifier for the client.
	ID uuid.UUID
	// Name is the client's display name.
	Name string
	// Email is the client's contact address, unique per client.
	Email string
	// Phone is an optional contact number.
	Phone string
	// CreatedAt is the UTC timestamp when the client was registered.
	CreatedAt time.Time
}

// NewClient creates a Client with a generated id and creation timestamp.
func NewClient(name, email, phone string) *Client {
	return &Client{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the client fields before persistence.
func (c *Client) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Phone, validation.Length(0, 32)),
	)
}
