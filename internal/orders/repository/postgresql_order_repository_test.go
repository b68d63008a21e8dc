package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
	"github.com/mvidal/ordervault/internal/testutil"
)

func testBundle() cryptoDomain.CipherBundle {
	return cryptoDomain.CipherBundle{
		Ciphertext:   []byte("ciphertext-bytes"),
		Nonce:        make([]byte, cryptoDomain.NonceSize),
		AuthTag:      make([]byte, cryptoDomain.TagSize),
		EncryptedKey: []byte("wrapped-key-bytes"),
	}
}

func testOrder(clientID, productID uuid.UUID, payload cryptoDomain.CipherBundle) *ordersDomain.Order {
	now := time.Now().UTC()
	return &ordersDomain.Order{
		ID:       uuid.Must(uuid.NewV7()),
		ClientID: clientID,
		Status:   ordersDomain.StatusPending,
		Total:    decimal.RequireFromString("39.80"),
		Lines: []ordersDomain.OrderLine{
			{ProductID: productID, Quantity: 2, UnitPrice: decimal.RequireFromString("19.90")},
		},
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLOrderRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLOrderRepository(db)
	ctx := context.Background()

	clientID := testutil.CreateTestClient(t, db, "postgres", "Ana Torres")
	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 10)

	order := testOrder(clientID, productID, testBundle())
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, clientID, found.ClientID)
	assert.Equal(t, ordersDomain.StatusPending, found.Status)
	assert.True(t, order.Total.Equal(found.Total))

	require.Len(t, found.Lines, 1)
	assert.Equal(t, productID, found.Lines[0].ProductID)
	assert.Equal(t, 2, found.Lines[0].Quantity)
	assert.True(t, found.Lines[0].UnitPrice.Equal(decimal.RequireFromString("19.90")))

	assert.True(t, found.Payload.Complete())
	assert.Equal(t, order.Payload.Ciphertext, found.Payload.Ciphertext)
	assert.Equal(t, order.Payload.EncryptedKey, found.Payload.EncryptedKey)
}

func TestPostgreSQLOrderRepository_CreateWithoutPayload(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLOrderRepository(db)
	ctx := context.Background()

	clientID := testutil.CreateTestClient(t, db, "postgres", "Ana Torres")
	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 10)

	order := testOrder(clientID, productID, cryptoDomain.CipherBundle{})
	require.NoError(t, repo.Create(ctx, order))

	// All four payload columns are NULL.
	var ciphertext, nonce, authTag, encryptedKey sql.NullString
	err := db.QueryRow(
		`SELECT payload_ciphertext, payload_nonce, payload_auth_tag, payload_encrypted_key
		 FROM orders WHERE id = $1`, order.ID,
	).Scan(&ciphertext, &nonce, &authTag, &encryptedKey)
	require.NoError(t, err)
	assert.False(t, ciphertext.Valid)
	assert.False(t, nonce.Valid)
	assert.False(t, authTag.Valid)
	assert.False(t, encryptedKey.Valid)

	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, found.Payload.Empty())
}

func TestPostgreSQLOrderRepository_GetByIDNotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLOrderRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, ordersDomain.ErrOrderNotFound)
}

func TestPostgreSQLOrderRepository_UpdateStatus(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLOrderRepository(db)
	ctx := context.Background()

	clientID := testutil.CreateTestClient(t, db, "postgres", "Ana Torres")
	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 10)

	order := testOrder(clientID, productID, cryptoDomain.CipherBundle{})
	require.NoError(t, repo.Create(ctx, order))

	err := repo.UpdateStatus(ctx, order.ID, ordersDomain.StatusPreparing, time.Now().UTC())
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordersDomain.StatusPreparing, found.Status)
}

func TestPostgreSQLOrderRepository_UpdateStatusNotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLOrderRepository(db)

	err := repo.UpdateStatus(
		context.Background(), uuid.Must(uuid.NewV7()), ordersDomain.StatusPreparing, time.Now().UTC(),
	)
	assert.ErrorIs(t, err, ordersDomain.ErrOrderNotFound)
}
