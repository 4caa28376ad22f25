// Package saga содержит моки для тестирования обработчиков шагов.
package saga

import (
	"context"

	"github.com/stretchr/testify/mock"

	"example.com/fulfillment-system/pkg/streams"
	"example.com/fulfillment-system/services/fulfillment/internal/domain"
)

// =============================================================================
// MockTransport — мок транспорта stream'ов
// =============================================================================

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Publish(ctx context.Context, stream, correlationID string, payload []byte) (string, error) {
	args := m.Called(ctx, stream, correlationID, payload)
	return args.String(0), args.Error(1)
}

func (m *MockTransport) ClaimPending(ctx context.Context, stream string) ([]streams.Delivery, error) {
	args := m.Called(ctx, stream)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]streams.Delivery), args.Error(1)
}

// =============================================================================
// MockOrderRepository — мок репозитория заказов
// =============================================================================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ClaimBatch(ctx context.Context, limit int) ([]*domain.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Complete(ctx context.Context, orderID, customerID, customerBalance int64) error {
	args := m.Called(ctx, orderID, customerID, customerBalance)
	return args.Error(0)
}

func (m *MockOrderRepository) ReReserve(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// =============================================================================
// MockBalanceClient — мок клиента сервиса баланса
// =============================================================================

type MockBalanceClient struct {
	mock.Mock
}

func (m *MockBalanceClient) Decrease(ctx context.Context, userID int64, amount domain.Money) (domain.Money, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceClient) Increase(ctx context.Context, userID int64, amount domain.Money) (domain.Money, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// =============================================================================
// MockEventPublisher — мок публикации интеграционных событий
// =============================================================================

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) OrderCompleted(ctx context.Context, orderID, customerID, executorID, amount int64) error {
	args := m.Called(ctx, orderID, customerID, executorID, amount)
	return args.Error(0)
}
