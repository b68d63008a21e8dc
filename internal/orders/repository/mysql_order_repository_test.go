package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
	"github.com/mvidal/ordervault/internal/testutil"
)

func TestMySQLOrderRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	clientID := testutil.CreateTestClient(t, db, "mysql", "Luis Romero")
	productID := testutil.CreateTestProduct(t, db, "mysql", "filter paper", "4.50", 100)

	now := time.Now().UTC()
	order := &ordersDomain.Order{
		ID:       uuid.Must(uuid.NewV7()),
		ClientID: clientID,
		Status:   ordersDomain.StatusPending,
		Total:    decimal.RequireFromString("13.50"),
		Lines: []ordersDomain.OrderLine{
			{ProductID: productID, Quantity: 3, UnitPrice: decimal.RequireFromString("4.50")},
		},
		Payload:   testBundle(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, clientID, found.ClientID)
	assert.Equal(t, ordersDomain.StatusPending, found.Status)
	assert.True(t, order.Total.Equal(found.Total))

	require.Len(t, found.Lines, 1)
	assert.Equal(t, productID, found.Lines[0].ProductID)
	assert.Equal(t, 3, found.Lines[0].Quantity)
	assert.True(t, found.Lines[0].UnitPrice.Equal(decimal.RequireFromString("4.50")))

	assert.True(t, found.Payload.Complete())
	assert.Equal(t, order.Payload.Ciphertext, found.Payload.Ciphertext)
}

func TestMySQLOrderRepository_CreateWithoutPayload(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	clientID := testutil.CreateTestClient(t, db, "mysql", "Luis Romero")
	productID := testutil.CreateTestProduct(t, db, "mysql", "filter paper", "4.50", 100)

	now := time.Now().UTC()
	order := &ordersDomain.Order{
		ID:       uuid.Must(uuid.NewV7()),
		ClientID: clientID,
		Status:   ordersDomain.StatusPending,
		Total:    decimal.RequireFromString("4.50"),
		Lines: []ordersDomain.OrderLine{
			{ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("4.50")},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, found.Payload.Empty())
}

func TestMySQLOrderRepository_GetByIDNotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLOrderRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, ordersDomain.ErrOrderNotFound)
}

func TestMySQLOrderRepository_UpdateStatus(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	clientID := testutil.CreateTestClient(t, db, "mysql", "Luis Romero")
	productID := testutil.CreateTestProduct(t, db, "mysql", "filter paper", "4.50", 100)

	now := time.Now().UTC()
	order := &ordersDomain.Order{
		ID:       uuid.Must(uuid.NewV7()),
		ClientID: clientID,
		Status:   ordersDomain.StatusPending,
		Total:    decimal.RequireFromString("4.50"),
		Lines: []ordersDomain.OrderLine{
			{ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("4.50")},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, order))

	err := repo.UpdateStatus(ctx, order.ID, ordersDomain.StatusPreparing, time.Now().UTC())
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordersDomain.StatusPreparing, found.Status)
}

func TestMySQLOrderRepository_UpdateStatusNotFound(t *testing.T) {
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLOrderRepository(db)

	err := repo.UpdateStatus(
		context.Background(), uuid.Must(uuid.NewV7()), ordersDomain.StatusPreparing, time.Now().UTC(),
	)
	assert.ErrorIs(t, err, ordersDomain.ErrOrderNotFound)
}
