package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mvidal/ordervault/internal/database"
	productsDomain "github.com/mvidal/ordervault/internal/products/domain"
	"github.com/mvidal/ordervault/internal/testutil"
)

func TestPostgreSQLProductRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)
	ctx := context.Background()

	product := productsDomain.NewProduct(
		"espresso beans", "sku-espresso", "coffee", decimal.RequireFromString("19.90"), 10,
	)
	require.NoError(t, product.Validate())
	require.NoError(t, repo.Create(ctx, product))

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, product.Name, found.Name)
	assert.Equal(t, product.Code, found.Code)
	assert.Equal(t, product.Category, found.Category)
	assert.True(t, product.Price.Equal(found.Price))
	assert.Equal(t, 10, found.Stock)
}

func TestPostgreSQLProductRepository_CreateDuplicateCode(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)
	ctx := context.Background()

	first := productsDomain.NewProduct("espresso beans", "sku-espresso", "coffee", decimal.RequireFromString("19.90"), 10)
	require.NoError(t, repo.Create(ctx, first))

	second := productsDomain.NewProduct("other beans", "sku-espresso", "coffee", decimal.RequireFromString("21.00"), 5)
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, productsDomain.ErrProductAlreadyExists)
}

func TestPostgreSQLProductRepository_GetByIDNotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, productsDomain.ErrProductNotFound)
}

func TestPostgreSQLProductRepository_Reserve(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 10)

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		price, err := repo.Reserve(ctx, productID, 3)
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.RequireFromString("19.90")))
		return nil
	})
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 7, found.Stock)
}

func TestPostgreSQLProductRepository_ReserveInsufficientStock(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 2)

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := repo.Reserve(ctx, productID, 3)
		return err
	})
	assert.ErrorIs(t, err, productsDomain.ErrInsufficientStock)

	// The failed reservation did not touch the stock.
	found, err := repo.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Stock)
}

func TestPostgreSQLProductRepository_ReserveRollback(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 10)

	failure := assert.AnError
	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := repo.Reserve(ctx, productID, 3)
		require.NoError(t, err)
		return failure
	})
	assert.ErrorIs(t, err, failure)

	// Rollback released the reservation.
	found, err := repo.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.Stock)
}

func TestPostgreSQLProductRepository_ReserveConcurrentOversell(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLProductRepository(db)
	txManager := database.NewTxManager(db)
	ctx := context.Background()

	// Stock 5 with two concurrent reservations of 3: exactly one can succeed.
	productID := testutil.CreateTestProduct(t, db, "postgres", "espresso beans", "19.90", 5)

	var g errgroup.Group
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		i := i
		g.Go(func() error {
			results[i] = txManager.WithTx(ctx, func(ctx context.Context) error {
				_, err := repo.Reserve(ctx, productID, 3)
				return err
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var failures int
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, productsDomain.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	found, err := repo.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Stock)
}
