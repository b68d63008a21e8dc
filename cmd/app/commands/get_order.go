package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/app"
	"github.com/mvidal/ordervault/internal/config"
)

// RunGetOrder prints an order with its lines. The sensitive payload is only
// reported as present or absent; it is never decrypted here.
func RunGetOrder(ctx context.Context, w io.Writer, orderIDArg string) error {
	orderID, err := uuid.Parse(orderIDArg)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderIDArg, err)
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	useCase, err := container.OrderUseCase()
	if err != nil {
		return err
	}

	order, err := useCase.Get(ctx, orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "order %s\n", order.ID)
	fmt.Fprintf(w, "  client:  %s\n", order.ClientID)
	fmt.Fprintf(w, "  status:  %s\n", order.Status)
	fmt.Fprintf(w, "  total:   %s\n", order.Total.StringFixed(2))
	fmt.Fprintf(w, "  created: %s\n", order.CreatedAt.Format("2006-01-02 15:04:05"))
	for _, line := range order.Lines {
		fmt.Fprintf(w, "  line:    %s x%d @ %s\n", line.ProductID, line.Quantity, line.UnitPrice.StringFixed(2))
	}
	if order.Payload.Complete() {
		fmt.Fprintf(w, "  payload: encrypted (use decrypt-order to read it)\n")
	} else {
		fmt.Fprintf(w, "  payload: none\n")
	}

	return nil
}
