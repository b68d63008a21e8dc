// Package domain defines the core domain model for products and their stock.
//
// Stock is the single source of truth for availability: reservations decrement
// it atomically under a row lock and are only made durable by the enclosing
// transaction commit.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item with a unit price and available stock.
type Product struct {
	// ID is the unique identifier for the product.
	ID uuid.UUID
	// Name is the product's display name.
	Name string
	// Code is the unique merchant-facing product code (SKU).
	Code string
	// Category is a free-form grouping label.
	Category string
	// Price is the current unit price. Monetary values are exact decimals;
	// binary floating point is never used for money.
	Price decimal.Decimal
	// Stock is the number of units available for reservation. Never negative.
	Stock int
	// CreatedAt is the UTC timestamp when the product was registered.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last stock or price change.
	UpdatedAt time.Time
}

// NewProduct creates a Product with a generated id and creation timestamps.
func NewProduct(name, code, category string, price decimal.Decimal, stock int) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Code:      code,
		Category:  category,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the product fields before persistence.
func (p *Product) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Code, validation.Required, validation.Length(1, 64)),
		validation.Field(&p.Category, validation.Length(0, 128)),
		validation.Field(&p.Stock, validation.Min(0)),
	)
	if err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return validation.Errors{"Price": validation.NewError("price_negative", "price must not be negative")}
	}
	return nil
}
