package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/app"
	"github.com/mvidal/ordervault/internal/config"
)

// RunDecryptOrder decrypts an order's sensitive payload with the configured
// private key and prints it as indented JSON.
func RunDecryptOrder(ctx context.Context, w io.Writer, orderIDArg string) error {
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

	var payload any
	if err := useCase.GetSensitivePayload(ctx, orderID, &payload); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}

	fmt.Fprintln(w, string(encoded))
	return nil
}
