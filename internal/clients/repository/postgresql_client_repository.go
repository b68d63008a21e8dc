// Package repository implements client persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	clientsDomain "github.com/mvidal/ordervault/internal/clients/domain"
	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgreSQLClientRepository implements Client persistence for PostgreSQL databases.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// NewPostgreSQLClientRepository creates a new PostgreSQL Client repository instance.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

// Create inserts a new client into the PostgreSQL database.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *clientsDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (id, name, email, phone, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return clientsDomain.ErrClientAlreadyExists
		}
		return apperrors.WrapPersistence(err, "failed to create client")
	}

	return nil
}

// GetByID retrieves a client by its identifier.
func (p *PostgreSQLClientRepository) GetByID(
	ctx context.Context,
	clientID uuid.UUID,
) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, phone, created_at
			  FROM clients
			  WHERE id = $1`

	var client clientsDomain.Client
	err := querier.QueryRowContext(ctx, query, clientID).Scan(
		&client.ID,
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

	return &client, nil
}
