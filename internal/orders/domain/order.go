// Package domain defines the core domain models for orders.
//
// An order captures a client's purchase: reserved product lines with the unit
// prices observed at reservation time, a total computed from those snapshots,
// a fulfillment status, and an optional encrypted sensitive payload. Stored
// prices never change after creation, even if the product price does.
package domain

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
)

// OrderLine is one product position in an order. UnitPrice is the price
// observed when the stock was reserved, not the product's current price.
type OrderLine struct {
	// ProductID references the reserved product.
	ProductID uuid.UUID
	// Quantity is the number of units reserved. Always at least 1.
	Quantity int
	// UnitPrice is the per-unit price snapshot taken during reservation.
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity times the unit price snapshot.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order represents a client's purchase with its reserved lines.
type Order struct {
	// ID is the unique identifier for the order.
	ID uuid.UUID
	// ClientID references the client the order belongs to.
	ClientID uuid.UUID
	// Status is the current fulfillment status.
	Status Status
	// Total is the sum of all line subtotals, computed from price snapshots.
	Total decimal.Decimal
	// Lines are the product positions, ordered by ascending product id.
	Lines []OrderLine
	// Payload is the encrypted sensitive payload. Empty when the order was
	// created without one; complete otherwise, never partial.
	Payload cryptoDomain.CipherBundle
	// CreatedAt is the UTC timestamp when the order was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last status change.
	UpdatedAt time.Time
}

// CreateOrderLine is one requested product position in a creation request.
type CreateOrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries everything needed to create an order. The sensitive
// payload is optional; when present it is encrypted before persistence and the
// plaintext is never stored.
type CreateOrderInput struct {
	ClientID uuid.UUID
	Lines    []CreateOrderLine
	// SensitivePayload is an arbitrary JSON-serializable value (payment
	// details, delivery notes). Nil means the order carries no payload.
	SensitivePayload any
}

// Validate checks the creation request: a client, at least one line, positive
// quantities, and no product repeated across lines.
func (i CreateOrderInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ClientID, validation.Required, validation.By(validUUID)),
		validation.Field(&i.Lines,
			validation.Required.Error("at least one line is required"),
			validation.By(validLines),
		),
	)
}

func validUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("required", "cannot be blank")
	}
	return nil
}

func validLines(value any) error {
	lines, ok := value.([]CreateOrderLine)
	if !ok {
		return validation.NewError("invalid_lines", "must be a list of order lines")
	}

	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return validation.NewError("product_required", "every line needs a product id")
		}
		if line.Quantity < 1 {
			return validation.NewError("quantity_min", "quantity must be at least 1")
		}
		if _, dup := seen[line.ProductID]; dup {
			return validation.NewError("product_duplicated", "a product appears in more than one line")
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// SortLinesByProductID orders the requested lines by ascending product id.
// Reserving stock in a globally consistent order prevents lock-ordering
// deadlocks between concurrent orders that share products.
func SortLinesByProductID(lines []CreateOrderLine) []CreateOrderLine {
	sorted := make([]CreateOrderLine, len(lines))
	copy(sorted, lines)
	slices.SortFunc(sorted, func(a, b CreateOrderLine) int {
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})
	return sorted
}
