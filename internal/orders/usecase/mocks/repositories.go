// Package mocks provides mock implementations for testing the order use case.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	clientsDomain "github.com/mvidal/ordervault/internal/clients/domain"
	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	ordersDomain "github.com/mvidal/ordervault/internal/orders/domain"
)

// MockClientRepository is a mock implementation of ClientRepository for testing.
type MockClientRepository struct {
	mock.Mock
}

// Create mocks the Create method of ClientRepository.
func (m *MockClientRepository) Create(ctx context.Context, client *clientsDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// GetByID mocks the GetByID method of ClientRepository.
func (m *MockClientRepository) GetByID(
	ctx context.Context,
	clientID uuid.UUID,
) (*clientsDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientsDomain.Client), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository for testing.
type MockOrderRepository struct {
	mock.Mock
}

// Create mocks the Create method of OrderRepository.
func (m *MockOrderRepository) Create(ctx context.Context, order *ordersDomain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// GetByID mocks the GetByID method of OrderRepository.
func (m *MockOrderRepository) GetByID(
	ctx context.Context,
	orderID uuid.UUID,
) (*ordersDomain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordersDomain.Order), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method of OrderRepository.
func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status ordersDomain.Status,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, orderID, status, updatedAt)
	return args.Error(0)
}

// MockLedger is a mock implementation of inventory.Ledger for testing.
type MockLedger struct {
	mock.Mock
}

// Reserve mocks the Reserve method of Ledger.
func (m *MockLedger) Reserve(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockHybrid is a mock implementation of the hybrid cipher for testing.
type MockHybrid struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of the hybrid cipher.
func (m *MockHybrid) Encrypt(payload any) (cryptoDomain.CipherBundle, error) {
	args := m.Called(payload)
	return args.Get(0).(cryptoDomain.CipherBundle), args.Error(1)
}

// Decrypt mocks the Decrypt method of the hybrid cipher.
func (m *MockHybrid) Decrypt(bundle cryptoDomain.CipherBundle, v any) error {
	args := m.Called(bundle, v)
	return args.Error(0)
}
