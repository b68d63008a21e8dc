package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/inventory"
	productsDomain "github.com/mvidal/ordervault/internal/products/domain"
)

// Repository combines product persistence with the inventory reservation
// primitive. Both SQL implementations satisfy it.
type Repository interface {
	Create(ctx context.Context, product *productsDomain.Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*productsDomain.Product, error)
	inventory.Ledger
}
