package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/app"
	"github.com/mvidal/ordervault/internal/config"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// RunUpdateOrderStatus advances an order's status by one forward step.
func RunUpdateOrderStatus(ctx context.Context, w io.Writer, orderIDArg, statusArg string) error {
	orderID, err := uuid.Parse(orderIDArg)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderIDArg, err)
	}

	status, err := ordersDomain.ParseStatus(statusArg)
	if err != nil {
		return err
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	useCase, err := container.OrderUseCase()
	if err != nil {
		return err
	}

	if err := useCase.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	fmt.Fprintf(w, "order %s is now %s\n", orderID, status)
	return nil
}
