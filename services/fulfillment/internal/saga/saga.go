// Package saga содержит обработчики шагов хореографической саги выполнения
// заказа. Каждый обработчик знает только свой stream и stream'ы следующего
// шага и компенсации — центрального оркестратора и персистентного состояния
// саги нет. Отказ одного шага не блокирует обработку чужих заказов другими
// шагами.
package saga

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"example.com/fulfillment-system/pkg/logger"
	"example.com/fulfillment-system/pkg/metrics"
	sagamsg "example.com/fulfillment-system/pkg/saga"
	"example.com/fulfillment-system/pkg/streams"
	"example.com/fulfillment-system/services/fulfillment/internal/balance"
	"example.com/fulfillment-system/services/fulfillment/internal/domain"
	"example.com/fulfillment-system/services/fulfillment/internal/repository"
)

// Имена шагов для логов и метрик.
const (
	StepDecreaseCustomer  = "decrease-customer"
	StepIncrementExecutor = "increment-executor"
	StepCompleteOrder     = "complete-order"
	StepDecreaseExecutor  = "decrease-executor"
	StepIncrementCustomer = "increment-customer"
	StepReserveOrder      = "reserve-order"
)

// StreamNames — имена stream'ов шагов цепочки.
type StreamNames struct {
	DecreaseCustomer  string
	IncrementExecutor string
	CompleteOrder     string
	DecreaseExecutor  string
	IncrementCustomer string
	ReserveOrder      string
}

// Config — настройки обработчиков шагов.
type Config struct {
	// MaxRetries — бюджет повторов одного сообщения.
	MaxRetries int

	// Streams — имена stream'ов цепочки.
	Streams StreamNames
}

// Transport — публикация и получение сообщений саги.
// Выделен в интерфейс для подмены в тестах.
type Transport interface {
	Publish(ctx context.Context, stream, correlationID string, payload []byte) (string, error)
	ClaimPending(ctx context.Context, stream string) ([]streams.Delivery, error)
}

// Handlers — обработчики шести шагов саги.
// Каждый шаг за тик забирает все новые сообщения своего stream'а
// и обрабатывает их независимо и конкурентно.
type Handlers struct {
	transport  Transport
	orders     repository.OrderRepository
	customer   balance.Client
	executor   balance.Client
	commission domain.CommissionRate
	events     EventPublisher
	cfg        Config
}

// NewHandlers создаёт обработчики шагов саги.
// commission фиксируется на всё время жизни процесса.
// events может быть nil — тогда интеграционные события не публикуются.
func NewHandlers(
	transport Transport,
	orders repository.OrderRepository,
	customer balance.Client,
	executor balance.Client,
	commission domain.CommissionRate,
	events EventPublisher,
	cfg Config,
) *Handlers {
	return &Handlers{
		transport:  transport,
		orders:     orders,
		customer:   customer,
		executor:   executor,
		commission: commission,
		events:     events,
		cfg:        cfg,
	}
}

// processFunc — обработка одного сообщения шага.
// Возвращает результат для метрик (success/retry/compensate/terminal).
type processFunc func(ctx context.Context, msg *sagamsg.Message) string

// fanOut забирает все новые сообщения stream'а и обрабатывает каждое
// в отдельной горутине. Сбой одного сообщения не влияет на остальные:
// process никогда не возвращает ошибку наружу, любая проблема завершается
// локально — публикацией нового сообщения или логом.
//
// Тик завершается после запуска обработки всех сообщений пачки, не дожидаясь
// её завершения: медленное сообщение не задерживает следующий тик.
func (h *Handlers) fanOut(ctx context.Context, stream, step string, process processFunc) {
	deliveries, err := h.transport.ClaimPending(ctx, stream)
	if err != nil {
		logger.Error().Err(err).
			Str("step", step).
			Str("stream", stream).
			Msg("Ошибка получения сообщений stream'а")
		return
	}

	for _, d := range deliveries {
		msg, err := sagamsg.FromJSON(d.Payload)
		if err != nil {
			// Некорректное сообщение отбрасываем, пачку не блокируем.
			logger.Warn().Err(err).
				Str("step", step).
				Str("delivery_id", d.ID).
				Str("correlation_id", d.CorrelationID).
				Msg("Не удалось декодировать сообщение, отбрасываем")
			continue
		}

		go h.processOne(ctx, d, msg, step, process)
	}
}

// processOne обрабатывает одно сообщение: контекст с correlation token
// и логгером шага, span трассировки, метрики.
func (h *Handlers) processOne(ctx context.Context, d streams.Delivery, msg *sagamsg.Message, step string, process processFunc) {
	msgCtx := logger.WithCorrelationID(ctx, d.CorrelationID)

	log := logger.With().
		Str("step", step).
		Int64("order_id", msg.OrderID).
		Logger()
	msgCtx = logger.WithLogger(msgCtx, log)

	msgCtx, span := otel.Tracer("saga").Start(msgCtx, "saga."+step)
	span.SetAttributes(
		attribute.String("saga.correlation_id", d.CorrelationID),
		attribute.Int64("saga.order_id", msg.OrderID),
	)
	defer span.End()

	start := time.Now()
	result := process(msgCtx, msg)
	metrics.RecordStep(step, result, time.Since(start))
}

// publish сериализует и публикует сообщение, пробрасывая correlation token
// из контекста. Ошибка публикации логируется как best-effort потеря доставки:
// «повтора повтора» нет, это принятый пробел at-least-once семантики.
func (h *Handlers) publish(ctx context.Context, stream string, msg *sagamsg.Message) {
	log := logger.FromContext(ctx)

	payload, err := msg.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("stream", stream).Msg("Ошибка сериализации сообщения")
		return
	}

	if _, err := h.transport.Publish(ctx, stream, logger.CorrelationIDFromContext(ctx), payload); err != nil {
		log.Error().Err(err).
			Str("stream", stream).
			Msg("Ошибка публикации сообщения (best-effort, повтора не будет)")
	}
}

// retryOrCompensate реализует общую политику повторов шага: пока бюджет
// не исчерпан — переотправка того же payload в свой stream с увеличенным
// счётчиком; после исчерпания — вызов compensate.
// Возвращает результат для метрик.
func (h *Handlers) retryOrCompensate(ctx context.Context, ownStream string, msg *sagamsg.Message, cause error, compensate func(ctx context.Context, msg *sagamsg.Message) string) string {
	log := logger.FromContext(ctx)
	count := sagamsg.ResolveRetryCount(msg)

	if sagamsg.RetryExhausted(msg, h.cfg.MaxRetries) {
		log.Warn().Err(cause).
			Int("retry_count", count).
			Int("max_retries", h.cfg.MaxRetries).
			Msg("Бюджет повторов исчерпан")
		return compensate(ctx, msg)
	}

	log.Info().Err(cause).
		Int("retry_count", count).
		Int("max_retries", h.cfg.MaxRetries).
		Msg("Временный сбой, переотправляем сообщение")

	h.publish(ctx, ownStream, msg.WithRetry(count))
	return metrics.ResultRetry
}
