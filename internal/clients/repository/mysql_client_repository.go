package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	clientsDomain "github.com/mvidal/ordervault/internal/clients/domain"
	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
)

// mysqlDuplicateEntry is the MySQL error number for unique constraint violations.
const mysqlDuplicateEntry = 1062

// MySQLClientRepository implements Client persistence for MySQL databases.
type MySQLClientRepository struct {
	db *sql.DB
}

// NewMySQLClientRepository creates a new MySQL Client repository instance.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

// Create inserts a new client into the MySQL database.
func (m *MySQLClientRepository) Create(ctx context.Context, client *clientsDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO clients (id, name, email, phone, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID.String(),
		client.Name,
		client.Email,
		client.Phone,
		client.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return clientsDomain.ErrClientAlreadyExists
		}
		return apperrors.WrapPersistence(err, "failed to create client")
	}

	return nil
}

// GetByID retrieves a client by its identifier.
func (m *MySQLClientRepository) GetByID(
	ctx context.Context,
	clientID uuid.UUID,
) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, email, phone, created_at
			  FROM clients
			  WHERE id = ?`

	var client clientsDomain.Client
	var id string

	err := querier.QueryRowContext(ctx, query, clientID.String()).Scan(
		&id,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clientsDomain.ErrClientNotFound
		}
		return nil, apperrors.WrapPersistence(err, "failed to get client by id")
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse client id")
	}
	client.ID = parsed

	return &client, nil
}
