// Package repository implements product persistence for PostgreSQL and MySQL.
//
// Reserve is the check-and-decrement primitive of the inventory: it locks the
// product row with SELECT ... FOR UPDATE, verifies availability, decrements the
// stock, and returns the unit price observed under the lock. It must run inside
// a transaction; the lock is what serializes concurrent reservations for the
// same product.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	productsDomain "github.com/mvidal/ordervault/internal/products/domain"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgreSQLProductRepository implements Product persistence for PostgreSQL databases.
type PostgreSQLProductRepository struct {
	db *sql.DB
}

// NewPostgreSQLProductRepository creates a new PostgreSQL Product repository instance.
func NewPostgreSQLProductRepository(db *sql.DB) *PostgreSQLProductRepository {
	return &PostgreSQLProductRepository{db: db}
}

// Create inserts a new product into the PostgreSQL database.
func (p *PostgreSQLProductRepository) Create(ctx context.Context, product *productsDomain.Product) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO products (id, name, code, category, price, stock, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Code,
		product.Category,
		product.Price,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return productsDomain.ErrProductAlreadyExists
		}
		return apperrors.WrapPersistence(err, "failed to create product")
	}

	return nil
}

// GetByID retrieves a product by its identifier.
func (p *PostgreSQLProductRepository) GetByID(
	ctx context.Context,
	productID uuid.UUID,
) (*productsDomain.Product, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, code, category, price, stock, created_at, updated_at
			  FROM products
			  WHERE id = $1`

	var product productsDomain.Product
	err := querier.QueryRowContext(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Code,
		&product.Category,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productsDomain.ErrProductNotFound
		}
		return nil, apperrors.WrapPersistence(err, "failed to get product by id")
	}

	return &product, nil
}

// Reserve locks the product row, verifies that quantity units are available,
// decrements the stock, and returns the unit price read under the lock.
//
// Must be called inside a transaction (see database.TxManager); the decrement
// becomes durable only when the transaction commits.
func (p *PostgreSQLProductRepository) Reserve(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
) (decimal.Decimal, error) {
	querier := database.GetTx(ctx, p.db)

	var price decimal.Decimal
	var stock int

	query := `SELECT price, stock FROM products WHERE id = $1 FOR UPDATE`
	err := querier.QueryRowContext(ctx, query, productID).Scan(&price, &stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, productsDomain.ErrProductNotFound
		}
		return decimal.Decimal{}, apperrors.WrapPersistence(err, "failed to lock product row")
	}

	if stock < quantity {
		return decimal.Decimal{}, productsDomain.ErrInsufficientStock
	}

	update := `UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3`
	_, err = querier.ExecContext(ctx, update, quantity, time.Now().UTC(), productID)
	if err != nil {
		return decimal.Decimal{}, apperrors.WrapPersistence(err, "failed to decrement stock")
	}

	return price, nil
}
