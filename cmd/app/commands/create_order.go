package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/app"
	"github.com/mvidal/ordervault/internal/config"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// RunCreateOrder creates an order from CLI arguments: a client id, repeated
// line specs, and an optional JSON payload that is encrypted before storage.
func RunCreateOrder(
	ctx context.Context,
	w io.Writer,
	clientIDArg string,
	lineSpecs []string,
	payloadJSON string,
) error {
	clientID, err := uuid.Parse(clientIDArg)
	if err != nil {
		return fmt.Errorf("invalid client id %q: %w", clientIDArg, err)
	}

	lines, err := parseLineSpecs(lineSpecs)
	if err != nil {
		return err
	}

	var payload any
	if payloadJSON != "" {
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
			return fmt.Errorf("invalid payload JSON: %w", err)
		}
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	useCase, err := container.OrderUseCase()
	if err != nil {
		return err
	}

	order, err := useCase.Create(ctx, ordersDomain.CreateOrderInput{
		ClientID:         clientID,
		Lines:            lines,
		SensitivePayload: payload,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "order created\n")
	fmt.Fprintf(w, "  id:      %s\n", order.ID)
	fmt.Fprintf(w, "  client:  %s\n", order.ClientID)
	fmt.Fprintf(w, "  status:  %s\n", order.Status)
	fmt.Fprintf(w, "  total:   %s\n", order.Total.StringFixed(2))
	for _, line := range order.Lines {
		fmt.Fprintf(w, "  line:    %s x%d @ %s\n", line.ProductID, line.Quantity, line.UnitPrice.StringFixed(2))
	}
	if order.Payload.Complete() {
		fmt.Fprintf(w, "  payload: encrypted\n")
	}

	return nil
}
