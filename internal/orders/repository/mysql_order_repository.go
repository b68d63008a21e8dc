package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// MySQLOrderRepository implements Order persistence for MySQL databases.
type MySQLOrderRepository struct {
	db *sql.DB
}

// NewMySQLOrderRepository creates a new MySQL Order repository instance.
func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Create inserts an order and all of its lines.
func (m *MySQLOrderRepository) Create(ctx context.Context, order *ordersDomain.Order) error {
	querier := database.GetTx(ctx, m.db)

	ciphertext, nonce, authTag, encryptedKey := encodePayload(order.Payload)

	query := `INSERT INTO orders (id, client_id, status, total,
				payload_ciphertext, payload_nonce, payload_auth_tag, payload_encrypted_key,
				created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		order.ID.String(),
		order.ClientID.String(),
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
				  VALUES (?, ?, ?, ?)`
	for _, line := range order.Lines {
		_, err := querier.ExecContext(
			ctx, lineQuery, order.ID.String(), line.ProductID.String(), line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return apperrors.WrapPersistence(err, "failed to create order line")
		}
	}

	return nil
}

// GetByID retrieves an order with its lines.
func (m *MySQLOrderRepository) GetByID(
	ctx context.Context,
	orderID uuid.UUID,
) (*ordersDomain.Order, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, client_id, status, total,
				payload_ciphertext, payload_nonce, payload_auth_tag, payload_encrypted_key,
				created_at, updated_at
			  FROM orders
			  WHERE id = ?`

	var order ordersDomain.Order
	var id, clientID, status string
	var ciphertext, nonce, authTag, encryptedKey sql.NullString

	err := querier.QueryRowContext(ctx, query, orderID.String()).Scan(
		&id,
		&clientID,
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

	if order.ID, err = uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse order id")
	}
	if order.ClientID, err = uuid.Parse(clientID); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse client id")
	}

	order.Status, err = ordersDomain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	order.Payload, err = decodePayload(ciphertext, nonce, authTag, encryptedKey)
	if err != nil {
		return nil, err
	}

	order.Lines, err = m.linesByOrderID(ctx, querier, orderID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// linesByOrderID loads the lines of one order, ordered by ascending product id.
func (m *MySQLOrderRepository) linesByOrderID(
	ctx context.Context,
	querier database.Querier,
	orderID uuid.UUID,
) ([]ordersDomain.OrderLine, error) {
	query := `SELECT product_id, quantity, unit_price
			  FROM order_items
			  WHERE order_id = ?
			  ORDER BY product_id`

	rows, err := querier.QueryContext(ctx, query, orderID.String())
	if err != nil {
		return nil, apperrors.WrapPersistence(err, "failed to get order lines")
	}
	defer func() {
		_ = rows.Close()
	}()

	var lines []ordersDomain.OrderLine
	for rows.Next() {
		var line ordersDomain.OrderLine
		var productID string
		if err := rows.Scan(&productID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, apperrors.WrapPersistence(err, "failed to scan order line")
		}
		if line.ProductID, err = uuid.Parse(productID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse product id")
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
func (m *MySQLOrderRepository) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status ordersDomain.Status,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`
	result, err := querier.ExecContext(ctx, query, string(status), updatedAt, orderID.String())
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
