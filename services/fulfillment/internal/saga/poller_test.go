package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sagamsg "example.com/fulfillment-system/pkg/saga"
	"example.com/fulfillment-system/services/fulfillment/internal/domain"
)

// testOrder возвращает заказ in_processing (как после ClaimBatch).
func testOrder(id int64) *domain.Order {
	return &domain.Order{
		ID:         id,
		CustomerID: 100 + id,
		ExecutorID: 200 + id,
		Price:      10050,
		Status:     domain.OrderStatusInProcessing,
	}
}

func TestPoller_Tick_PublishesFirstMessagePerOrder(t *testing.T) {
	orders := &MockOrderRepository{}
	transport := &MockTransport{}
	poller := NewPoller(orders, transport, testStreams.DecreaseCustomer, 10)

	orders.On("ClaimBatch", mock.Anything, 10).
		Return([]*domain.Order{testOrder(1), testOrder(2)}, nil)

	// Для каждого заказа публикуется первое сообщение с полной ценой,
	// без RetryData, с непустым correlation token.
	transport.On("Publish", mock.Anything, testStreams.DecreaseCustomer,
		mock.MatchedBy(func(corr string) bool { return corr != "" }),
		mock.MatchedBy(func(payload []byte) bool {
			msg, err := sagamsg.FromJSON(payload)
			return err == nil && msg.Amount == 10050 && msg.RetryData == nil
		})).
		Return("1-0", nil).Twice()

	poller.Tick(context.Background())

	orders.AssertExpectations(t)
	transport.AssertExpectations(t)
	orders.AssertNotCalled(t, "ReReserve", mock.Anything, mock.Anything)
}

func TestPoller_Tick_EmptyBatch(t *testing.T) {
	orders := &MockOrderRepository{}
	transport := &MockTransport{}
	poller := NewPoller(orders, transport, testStreams.DecreaseCustomer, 10)

	orders.On("ClaimBatch", mock.Anything, 10).
		Return([]*domain.Order{}, nil)

	poller.Tick(context.Background())

	transport.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPoller_Tick_ClaimError(t *testing.T) {
	orders := &MockOrderRepository{}
	transport := &MockTransport{}
	poller := NewPoller(orders, transport, testStreams.DecreaseCustomer, 10)

	orders.On("ClaimBatch", mock.Anything, 10).
		Return(nil, errors.New("соединение с БД разорвано"))

	// Ошибка claim'а не роняет тик — просто ждём следующего.
	poller.Tick(context.Background())

	transport.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Частичный сбой пачки: публикация не удалась ровно для одного заказа —
// откатывается только он, остальные продолжают обработку.
func TestPoller_Tick_PartialBatchIsolation(t *testing.T) {
	orders := &MockOrderRepository{}
	transport := &MockTransport{}
	poller := NewPoller(orders, transport, testStreams.DecreaseCustomer, 10)

	orders.On("ClaimBatch", mock.Anything, 10).
		Return([]*domain.Order{testOrder(1), testOrder(2), testOrder(3)}, nil)

	isOrder := func(id int64) interface{} {
		return mock.MatchedBy(func(payload []byte) bool {
			msg, err := sagamsg.FromJSON(payload)
			return err == nil && msg.OrderID == id
		})
	}

	transport.On("Publish", mock.Anything, testStreams.DecreaseCustomer, mock.Anything, isOrder(1)).
		Return("1-0", nil)
	transport.On("Publish", mock.Anything, testStreams.DecreaseCustomer, mock.Anything, isOrder(2)).
		Return("", errors.New("redis недоступен"))
	transport.On("Publish", mock.Anything, testStreams.DecreaseCustomer, mock.Anything, isOrder(3)).
		Return("3-0", nil)

	// Откат только для заказа 2.
	orders.On("ReReserve", mock.Anything, int64(2)).Return(nil)

	poller.Tick(context.Background())

	orders.AssertExpectations(t)
	transport.AssertExpectations(t)
	orders.AssertNotCalled(t, "ReReserve", mock.Anything, int64(1))
	orders.AssertNotCalled(t, "ReReserve", mock.Anything, int64(3))
}

// Неприменившийся откат после сбоя публикации фиксируется в логе,
// тик продолжает работу.
func TestPoller_Tick_RollbackFailureDoesNotPanic(t *testing.T) {
	orders := &MockOrderRepository{}
	transport := &MockTransport{}
	poller := NewPoller(orders, transport, testStreams.DecreaseCustomer, 10)

	orders.On("ClaimBatch", mock.Anything, 10).
		Return([]*domain.Order{testOrder(1)}, nil)
	transport.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("redis недоступен"))
	orders.On("ReReserve", mock.Anything, int64(1)).
		Return(domain.ErrOrderWrongStatus)

	assert.NotPanics(t, func() {
		poller.Tick(context.Background())
	})

	orders.AssertExpectations(t)
}
