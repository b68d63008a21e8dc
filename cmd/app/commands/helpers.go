// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/app"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// parseLineSpecs converts "<product-uuid>:<quantity>" flag values into order lines.
func parseLineSpecs(specs []string) ([]ordersDomain.CreateOrderLine, error) {
	lines := make([]ordersDomain.CreateOrderLine, 0, len(specs))
	for _, spec := range specs {
		productPart, quantityPart, found := strings.Cut(spec, ":")
		if !found {
			return nil, fmt.Errorf("invalid line %q: expected <product-uuid>:<quantity>", spec)
		}

		productID, err := uuid.Parse(strings.TrimSpace(productPart))
		if err != nil {
			return nil, fmt.Errorf("invalid product id in line %q: %w", spec, err)
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(quantityPart))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in line %q: %w", spec, err)
		}

		lines = append(lines, ordersDomain.CreateOrderLine{ProductID: productID, Quantity: quantity})
	}
	return lines, nil
}
