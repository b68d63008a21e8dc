// Package usecase implements the business logic for order creation and
// fulfillment. The use case coordinates client lookup, stock reservation,
// payload encryption, and persistence inside one unit of work: either the
// complete order is committed or nothing is.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	clientsDomain "github.com/mvidal/ordervault/internal/clients/domain"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// ClientRepository defines the interface for Client persistence operations.
type ClientRepository interface {
	Create(ctx context.Context, client *clientsDomain.Client) error
	GetByID(ctx context.Context, clientID uuid.UUID) (*clientsDomain.Client, error)
}

// OrderRepository defines the interface for Order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *ordersDomain.Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*ordersDomain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status ordersDomain.Status, updatedAt time.Time) error
}

// OrderUseCase defines the interface for order business logic.
type OrderUseCase interface {
	// Create validates the request and creates the order in one unit of work:
	// client check, stock reservations in ascending product-id order, total
	// computed from the reserved price snapshots, optional payload encryption,
	// and persistence. Any failure rolls back every reservation.
	Create(ctx context.Context, input ordersDomain.CreateOrderInput) (*ordersDomain.Order, error)

	// Get retrieves an order with its lines. The payload stays encrypted.
	Get(ctx context.Context, orderID uuid.UUID) (*ordersDomain.Order, error)

	// GetSensitivePayload decrypts an order's payload into v. Returns
	// ErrNoSensitivePayload when the order was created without one.
	GetSensitivePayload(ctx context.Context, orderID uuid.UUID, v any) error

	// UpdateStatus advances an order's status by one forward step.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status ordersDomain.Status) error
}
