// Package inventory defines the stock reservation primitive used during order
// creation, plus an in-process reference implementation for tests and demos.
//
// A Ledger performs the atomic check-and-decrement: verify that the requested
// quantity is available, take it, and report the unit price observed at that
// moment. Reservations made inside a unit of work are released when the unit
// of work fails.
package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is the check-and-decrement primitive for product stock.
//
// The database-backed implementations live in the products repository package;
// MemoryLedger provides the same semantics in process memory.
type Ledger interface {
	// Reserve atomically verifies availability, decrements the stock by
	// quantity, and returns the unit price observed during the reservation.
	// Returns ErrProductNotFound or ErrInsufficientStock from the products
	// domain; a failed reservation never changes the stock.
	Reserve(ctx context.Context, productID uuid.UUID, quantity int) (decimal.Decimal, error)
}
