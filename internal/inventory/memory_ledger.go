package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productsDomain "github.com/mvidal/ordervault/internal/products/domain"
)

// stockEntry holds the mutable state for one product. Its mutex serializes
// concurrent reservations for that product; different products never contend.
type stockEntry struct {
	mu    sync.Mutex
	price decimal.Decimal
	stock int
}

// MemoryLedger is the in-process Ledger implementation. It mirrors the
// database-backed reservation semantics: check and decrement under a
// per-product lock, and release the reservation if the enclosing unit of work
// (a MemoryTxManager WithTx call) fails.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*stockEntry
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[uuid.UUID]*stockEntry)}
}

// SetStock registers or replaces a product's price and available stock.
func (m *MemoryLedger) SetStock(productID uuid.UUID, price decimal.Decimal, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[productID] = &stockEntry{price: price, stock: stock}
}

// Stock returns the currently available stock for a product.
func (m *MemoryLedger) Stock(productID uuid.UUID) int {
	m.mu.RLock()
	entry, ok := m.entries[productID]
	m.mu.RUnlock()
	if !ok {
		return 0
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.stock
}

// Reserve atomically verifies availability, decrements the stock, and returns
// the unit price observed under the per-product lock. Inside a MemoryTxManager
// unit of work the reservation is registered for release on failure; outside
// one it is immediately durable.
func (m *MemoryLedger) Reserve(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
) (decimal.Decimal, error) {
	m.mu.RLock()
	entry, ok := m.entries[productID]
	m.mu.RUnlock()
	if !ok {
		return decimal.Decimal{}, productsDomain.ErrProductNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.stock < quantity {
		return decimal.Decimal{}, productsDomain.ErrInsufficientStock
	}
	entry.stock -= quantity

	if log := getUndoLog(ctx); log != nil {
		log.add(func() {
			entry.mu.Lock()
			defer entry.mu.Unlock()
			entry.stock += quantity
		})
	}

	return entry.price, nil
}
