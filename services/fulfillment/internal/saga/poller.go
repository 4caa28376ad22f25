package saga

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"example.com/fulfillment-system/pkg/logger"
	"example.com/fulfillment-system/pkg/metrics"
	sagamsg "example.com/fulfillment-system/pkg/saga"
	"example.com/fulfillment-system/services/fulfillment/internal/domain"
	"example.com/fulfillment-system/services/fulfillment/internal/repository"
)

// Poller — точка входа цепочки: забирает пачку зарезервированных заказов
// и для каждого публикует первое сообщение саги. Correlation token экземпляра
// саги генерируется здесь и дальше не меняется.
type Poller struct {
	orders    repository.OrderRepository
	transport Transport
	stream    string // stream первого шага (decrease-customer)
	batchSize int
}

// NewPoller создаёт extraction poller.
func NewPoller(orders repository.OrderRepository, transport Transport, stream string, batchSize int) *Poller {
	return &Poller{
		orders:    orders,
		transport: transport,
		stream:    stream,
		batchSize: batchSize,
	}
}

// Tick выполняет один цикл: claim пачки заказов + публикация первого
// сообщения для каждого. Сбой публикации одного заказа откатывает только
// этот заказ (reReserve), остальные заказы пачки продолжают обработку —
// частичный сбой пачки обрабатывается по-заказно, а не целиком.
func (p *Poller) Tick(ctx context.Context) {
	orders, err := p.orders.ClaimBatch(ctx, p.batchSize)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка claim'а пачки заказов")
		return
	}

	if len(orders) == 0 {
		return
	}

	logger.Debug().Int("count", len(orders)).Msg("Заказы забраны в обработку")
	metrics.OrdersClaimedTotal.Add(float64(len(orders)))

	for _, order := range orders {
		p.startSaga(ctx, order)
	}
}

// startSaga публикует первое сообщение цепочки для одного заказа.
func (p *Poller) startSaga(ctx context.Context, order *domain.Order) {
	correlationID := uuid.NewString()
	ctx = logger.WithCorrelationID(ctx, correlationID)
	log := logger.FromContext(ctx).With().Int64("order_id", order.ID).Logger()

	msg := &sagamsg.Message{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ExecutorID: order.ExecutorID,
		Amount:     int64(order.Price),
		Timestamp:  time.Now(),
	}

	payload, err := msg.ToJSON()
	if err != nil {
		log.Error().Err(err).Msg("Ошибка сериализации первого сообщения саги")
		p.rollback(ctx, order.ID, &log)
		return
	}

	if _, err := p.transport.Publish(ctx, p.stream, correlationID, payload); err != nil {
		log.Error().Err(err).Msg("Ошибка публикации первого сообщения саги")
		p.rollback(ctx, order.ID, &log)
		return
	}

	log.Info().
		Int64("amount", int64(order.Price)).
		Msg("Сага запущена для заказа")
}

// rollback возвращает один заказ в reserved после неудачной публикации.
// Неприменившийся откат — фатальное рассогласование, фиксируем в логе.
func (p *Poller) rollback(ctx context.Context, orderID int64, log *zerolog.Logger) {
	if err := p.orders.ReReserve(ctx, orderID); err != nil {
		log.Error().Err(err).Msg("Не удалось вернуть заказ в reserved после сбоя публикации")
		return
	}
	log.Warn().Msg("Заказ возвращён в reserved после сбоя публикации")
}
