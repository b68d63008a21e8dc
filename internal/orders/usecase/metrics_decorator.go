package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mvidal/ordervault/internal/metrics"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// orderUseCaseWithMetrics decorates OrderUseCase with metrics instrumentation.
type orderUseCaseWithMetrics struct {
	next    OrderUseCase
	metrics metrics.BusinessMetrics
}

// NewOrderUseCaseWithMetrics wraps an OrderUseCase with metrics recording.
func NewOrderUseCaseWithMetrics(useCase OrderUseCase, m metrics.BusinessMetrics) OrderUseCase {
	return &orderUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for order creation operations.
func (o *orderUseCaseWithMetrics) Create(
	ctx context.Context,
	input ordersDomain.CreateOrderInput,
) (*ordersDomain.Order, error) {
	start := time.Now()
	order, err := o.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "orders", "order_create", status)
	o.metrics.RecordDuration(ctx, "orders", "order_create", time.Since(start), status)

	return order, err
}

// Get records metrics for order retrieval operations.
func (o *orderUseCaseWithMetrics) Get(
	ctx context.Context,
	orderID uuid.UUID,
) (*ordersDomain.Order, error) {
	start := time.Now()
	order, err := o.next.Get(ctx, orderID)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "orders", "order_get", status)
	o.metrics.RecordDuration(ctx, "orders", "order_get", time.Since(start), status)

	return order, err
}

// GetSensitivePayload records metrics for payload decryption operations.
func (o *orderUseCaseWithMetrics) GetSensitivePayload(
	ctx context.Context,
	orderID uuid.UUID,
	v any,
) error {
	start := time.Now()
	err := o.next.GetSensitivePayload(ctx, orderID, v)

	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "orders", "order_get_payload", status)
	o.metrics.RecordDuration(ctx, "orders", "order_get_payload", time.Since(start), status)

	return err
}

// UpdateStatus records metrics for status transition operations.
func (o *orderUseCaseWithMetrics) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status ordersDomain.Status,
) error {
	start := time.Now()
	err := o.next.UpdateStatus(ctx, orderID, status)

	result := "success"
	if err != nil {
		result = "error"
	}

	o.metrics.RecordOperation(ctx, "orders", "order_update_status", result)
	o.metrics.RecordDuration(ctx, "orders", "order_update_status", time.Since(start), result)

	return err
}
