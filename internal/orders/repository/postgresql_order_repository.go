// Package repository implements order persistence for PostgreSQL and MySQL.
//
// The encrypted payload is stored as four base64 text columns that are null or
// populated as a group; a partially populated payload is never written. Orders
// and their lines are inserted in the caller's transaction so the whole order
// commits or nothing does.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// encodePayload converts a cipher bundle into its four nullable text columns.
// An empty bundle maps to four NULLs.
func encodePayload(bundle cryptoDomain.CipherBundle) (ciphertext, nonce, authTag, encryptedKey sql.NullString) {
	if bundle.Empty() {
		return
	}
	encoded := bundle.Encode()
	ciphertext = sql.NullString{String: encoded.Ciphertext, Valid: true}
	nonce = sql.NullString{String: encoded.Nonce, Valid: true}
	authTag = sql.NullString{String: encoded.AuthTag, Valid: true}
	encryptedKey = sql.NullString{String: encoded.EncryptedKey, Valid: true}
	return
}

// decodePayload converts the four nullable text columns back into a cipher
// bundle. Four NULLs mean no payload; anything partial is rejected.
func decodePayload(ciphertext, nonce, authTag, encryptedKey sql.NullString) (cryptoDomain.CipherBundle, error) {
	if !ciphertext.Valid && !nonce.Valid && !authTag.Valid && !encryptedKey.Valid {
		return cryptoDomain.CipherBundle{}, nil
	}
	if !ciphertext.Valid || !nonce.Valid || !authTag.Valid || !encryptedKey.Valid {
		return cryptoDomain.CipherBundle{}, cryptoDomain.ErrIncompleteBundle
	}

	encoded := cryptoDomain.EncodedCipherBundle{
		Ciphertext:   ciphertext.String,
		Nonce:        nonce.String,
		AuthTag:      authTag.String,
		EncryptedKey: encryptedKey.String,
	}
	return encoded.Decode()
}

// PostgreSQLOrderRepository implements Order persistence for PostgreSQL databases.
type PostgreSQLOrderRepository struct {
	db *sql.DB
}

// NewPostgreSQLOrderRepository creates a new PostgreSQL Order repository instance.
func NewPostgreSQLOrderRepository(db *sql.DB) *PostgreSQLOrderRepository {
	return &PostgreSQLOrderRepository{db: db}
}

// Create inserts an order and all of its lines.
func (p *PostgreSQLOrderRepository) Create(ctx context.Context, order *ordersDomain.Order) error {
	querier := database.GetTx(ctx, p.db)

	ciphertext, nonce, authTag, encryptedKey := encodePayload(order.Payload)

	query := `INSERT INTO orders (id, client_id, status, total,
				payload_ciphertext, payload_nonce, payload_auth_tag, payload_encrypted_key,
				created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		order.ID,
		order.ClientID,
		string(order.Status),
		order.Total,
		ciphertext,
		nonce,
		authTag,
		encryptedKey,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return apperrors.WrapPersistence(err, "failed to create order")
	}

	lineQuery := `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
				  VALUES ($1, $2, $3, $4)`
	for _, line := range order.Lines {
		_, err := querier.ExecContext(ctx, lineQuery, order.ID, line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return apperrors.WrapPersistence(err, "failed to create order line")
		}
	}

	return nil
}

// GetByID retrieves an order with its lines.
func (p *PostgreSQLOrderRepository) GetByID(
	ctx context.Context,
	orderID uuid.UUID,
) (*ordersDomain.Order, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, client_id, status, total,
				payload_ciphertext, payload_nonce, payload_auth_tag, payload_encrypted_key,
				created_at, updated_at
			  FROM orders
			  WHERE id = $1`

	var order ordersDomain.Order
	var status string
	var ciphertext, nonce, authTag, encryptedKey sql.NullString

	err := querier.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID,
		&order.ClientID,
		&status,
		&order.Total,
		&ciphertext,
		&nonce,
		&authTag,
		&encryptedKey,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ordersDomain.ErrOrderNotFound
		}
		return nil, apperrors.WrapPersistence(err, "failed to get order by id")
	}

	order.Status, err = ordersDomain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	order.Payload, err = decodePayload(ciphertext, nonce, authTag, encryptedKey)
	if err != nil {
		return nil, err
	}

	order.Lines, err = p.linesByOrderID(ctx, querier, orderID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// linesByOrderID loads the lines of one order, ordered by ascending product id.
func (p *PostgreSQLOrderRepository) linesByOrderID(
	ctx context.Context,
	querier database.Querier,
	orderID uuid.UUID,
) ([]ordersDomain.OrderLine, error) {
	query := `SELECT product_id, quantity, unit_price
			  FROM order_items
			  WHERE order_id = $1
			  ORDER BY product_id`

	rows, err := querier.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.WrapPersistence(err, "failed to get order lines")
	}
	defer func() {
		_ = rows.Close()
	}()

	var lines []ordersDomain.OrderLine
	for rows.Next() {
		var line ordersDomain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, apperrors.WrapPersistence(err, "failed to scan order line")
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapPersistence(err, "failed to iterate order lines")
	}

	return lines, nil
}

// UpdateStatus changes an order's status. Returns ErrOrderNotFound when no row
// matches the id.
func (p *PostgreSQLOrderRepository) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status ordersDomain.Status,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := querier.ExecContext(ctx, query, string(status), updatedAt, orderID)
	if err != nil {
		return apperrors.WrapPersistence(err, "failed to update order status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapPersistence(err, "failed to read affected rows")
	}
	if affected == 0 {
		return ordersDomain.ErrOrderNotFound
	}

	return nil
}
