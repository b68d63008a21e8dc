package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	productsDomain "github.com/mvidal/ordervault/internal/products/domain"
)

// mysqlDuplicateEntry is the MySQL error number for unique constraint violations.
const mysqlDuplicateEntry = 1062

// MySQLProductRepository implements Product persistence for MySQL databases.
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository creates a new MySQL Product repository instance.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

// Create inserts a new product into the MySQL database.
func (m *MySQLProductRepository) Create(ctx context.Context, product *productsDomain.Product) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO products (id, name, code, category, price, stock, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		product.ID.String(),
		product.Name,
		product.Code,
		product.Category,
		product.Price,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return productsDomain.ErrProductAlreadyExists
		}
		return apperrors.WrapPersistence(err, "failed to create product")
	}

	return nil
}

// GetByID retrieves a product by its identifier.
func (m *MySQLProductRepository) GetByID(
	ctx context.Context,
	productID uuid.UUID,
) (*productsDomain.Product, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, code, category, price, stock, created_at, updated_at
			  FROM products
			  WHERE id = ?`

	var product productsDomain.Product
	var id string

	err := querier.QueryRowContext(ctx, query, productID.String()).Scan(
		&id,
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

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse product id")
	}
	product.ID = parsed

	return &product, nil
}

// Reserve locks the product row, verifies that quantity units are available,
// decrements the stock, and returns the unit price read under the lock.
//
// Must be called inside a transaction (see database.TxManager); the decrement
// becomes durable only when the transaction commits.
func (m *MySQLProductRepository) Reserve(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
) (decimal.Decimal, error) {
	querier := database.GetTx(ctx, m.db)

	var price decimal.Decimal
	var stock int

	query := `SELECT price, stock FROM products WHERE id = ? FOR UPDATE`
	err := querier.QueryRowContext(ctx, query, productID.String()).Scan(&price, &stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, productsDomain.ErrProductNotFound
		}
		return decimal.Decimal{}, apperrors.WrapPersistence(err, "failed to lock product row")
	}

	if stock < quantity {
		return decimal.Decimal{}, productsDomain.ErrInsufficientStock
	}

	update := `UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ?`
	_, err = querier.ExecContext(ctx, update, quantity, time.Now().UTC(), productID.String())
	if err != nil {
		return decimal.Decimal{}, apperrors.WrapPersistence(err, "failed to decrement stock")
	}

	return price, nil
}
