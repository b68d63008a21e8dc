package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mvidal/ordervault/internal/app"
	clientsDomain "github.com/mvidal/ordervault/internal/clients/domain"
	"github.com/mvidal/ordervault/internal/config"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	productsDomain "github.com/mvidal/ordervault/internal/products/domain"
)

// RunSeed creates a small set of demo clients and products. Existing rows with
// the same unique keys are left alone, so the command is safe to re-run.
func RunSeed(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	clientRepo, err := container.ClientRepository()
	if err != nil {
		return err
	}

	productRepo, err := container.ProductRepository()
	if err != nil {
		return err
	}

	clients := []*clientsDomain.Client{
		clientsDomain.NewClient("Ana Torres", "ana.torres@example.com", "+34600000001"),
		clientsDomain.NewClient("Luis Romero", "luis.romero@example.com", "+34600000002"),
	}
	for _, client := range clients {
		if err := client.Validate(); err != nil {
			return err
		}
		err := clientRepo.Create(ctx, client)
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("client already seeded", slog.String("email", client.Email))
			continue
		}
		if err != nil {
			return err
		}
		logger.Info("client created",
			slog.String("id", client.ID.String()),
			slog.String("name", client.Name),
		)
	}

	products := []*productsDomain.Product{
		productsDomain.NewProduct("espresso beans 1kg", "sku-espresso-1kg", "coffee", decimal.RequireFromString("19.90"), 50),
		productsDomain.NewProduct("filter paper x100", "sku-filter-100", "accessories", decimal.RequireFromString("4.50"), 200),
		productsDomain.NewProduct("ceramic dripper", "sku-dripper", "accessories", decimal.RequireFromString("24.00"), 35),
	}
	for _, product := range products {
		if err := product.Validate(); err != nil {
			return err
		}
		err := productRepo.Create(ctx, product)
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("product already seeded", slog.String("code", product.Code))
			continue
		}
		if err != nil {
			return err
		}
		logger.Info("product created",
			slog.String("id", product.ID.String()),
			slog.String("code", product.Code),
			slog.Int("stock", product.Stock),
		)
	}

	return nil
}
