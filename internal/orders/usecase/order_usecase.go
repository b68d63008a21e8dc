package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	cryptoService "github.com/mvidal/ordervault/internal/crypto/service"
	"github.com/mvidal/ordervault/internal/database"
	apperrors "github.com/mvidal/ordervault/internal/errors"
	"github.com/mvidal/ordervault/internal/inventory"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// orderUseCase implements the OrderUseCase interface.
type orderUseCase struct {
	txManager  database.TxManager
	clientRepo ClientRepository
	orderRepo  OrderRepository
	ledger     inventory.Ledger
	cipher     cryptoService.Hybrid
}

// NewOrderUseCase creates a new OrderUseCase instance.
func NewOrderUseCase(
	txManager database.TxManager,
	clientRepo ClientRepository,
	orderRepo OrderRepository,
	ledger inventory.Ledger,
	cipher cryptoService.Hybrid,
) OrderUseCase {
	return &orderUseCase{
		txManager:  txManager,
		clientRepo: clientRepo,
		orderRepo:  orderRepo,
		ledger:     ledger,
		cipher:     cipher,
	}
}

// Create creates an order in a single unit of work. Errors from the client
// lookup, the reservations, the encryption, and the persistence propagate to
// the caller unchanged; the rollback releases every reservation already made.
func (o *orderUseCase) Create(
	ctx context.Context,
	input ordersDomain.CreateOrderInput,
) (*ordersDomain.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}

	var order *ordersDomain.Order
	err := o.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := o.clientRepo.GetByID(txCtx, input.ClientID); err != nil {
			return err
		}

		// Reserving in ascending product-id order gives all concurrent orders
		// the same lock acquisition order.
		lines := ordersDomain.SortLinesByProductID(input.Lines)

		total := decimal.Zero
		orderLines := make([]ordersDomain.OrderLine, 0, len(lines))
		for _, line := range lines {
			price, err := o.ledger.Reserve(txCtx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			orderLine := ordersDomain.OrderLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: price,
			}
			total = total.Add(orderLine.Subtotal())
			orderLines = append(orderLines, orderLine)
		}

		var payload cryptoDomain.CipherBundle
		if input.SensitivePayload != nil {
			bundle, err := o.cipher.Encrypt(input.SensitivePayload)
			if err != nil {
				return err
			}
			payload = bundle
		}

		now := time.Now().UTC()
		order = &ordersDomain.Order{
			ID:        uuid.Must(uuid.NewV7()),
			ClientID:  input.ClientID,
			Status:    ordersDomain.StatusPending,
			Total:     total,
			Lines:     orderLines,
			Payload:   payload,
			CreatedAt: now,
			UpdatedAt: now,
		}

		return o.orderRepo.Create(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Get retrieves an order with its lines.
func (o *orderUseCase) Get(ctx context.Context, orderID uuid.UUID) (*ordersDomain.Order, error) {
	return o.orderRepo.GetByID(ctx, orderID)
}

// GetSensitivePayload decrypts the order's payload into v.
func (o *orderUseCase) GetSensitivePayload(ctx context.Context, orderID uuid.UUID, v any) error {
	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Payload.Empty() {
		return ordersDomain.ErrNoSensitivePayload
	}

	return o.cipher.Decrypt(order.Payload, v)
}

// UpdateStatus advances an order's status by one forward step.
func (o *orderUseCase) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status ordersDomain.Status,
) error {
	return o.txManager.WithTx(ctx, func(txCtx context.Context) error {
		order, err := o.orderRepo.GetByID(txCtx, orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf(
				"%w: %s to %s", ordersDomain.ErrInvalidStatusTransition, order.Status, status,
			)
		}

		return o.orderRepo.UpdateStatus(txCtx, orderID, status, time.Now().UTC())
	})
}
