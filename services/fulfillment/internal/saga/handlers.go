package saga

import (
	"context"
	"errors"

	"example.com/fulfillment-system/pkg/logger"
	"example.com/fulfillment-system/pkg/metrics"
	sagamsg "example.com/fulfillment-system/pkg/saga"
	"example.com/fulfillment-system/services/fulfillment/internal/domain"
)

// =============================================================================
// Прямая ветка: DecreaseCustomerAmount -> IncrementExecutorAmount -> CompleteOrder
// =============================================================================

// TickDecreaseCustomer обрабатывает шаг списания с баланса заказчика.
func (h *Handlers) TickDecreaseCustomer(ctx context.Context) {
	h.fanOut(ctx, h.cfg.Streams.DecreaseCustomer, StepDecreaseCustomer, h.processDecreaseCustomer)
}

// processDecreaseCustomer списывает полную цену заказа с баланса заказчика.
// Бизнес-отказ (недостаточно средств) компенсируется сразу, без повторов:
// ожидание не пополнит баланс. Временные сбои повторяются до бюджета,
// после — та же компенсация (возврат заказа в reserved).
func (h *Handlers) processDecreaseCustomer(ctx context.Context, msg *sagamsg.Message) string {
	log := logger.FromContext(ctx)

	balanceAfter, err := h.customer.Decrease(ctx, msg.CustomerID, domain.Money(msg.Amount))
	if err != nil {
		if domain.KindOf(err) == domain.KindBusinessRejection {
			log.Warn().Err(err).Msg("Списание отклонено сервисом баланса, запускаем компенсацию")
			return h.compensateToReserve(ctx, msg)
		}
		return h.retryOrCompensate(ctx, h.cfg.Streams.DecreaseCustomer, msg, err, h.compensateToReserve)
	}

	log.Info().
		Int64("amount", msg.Amount).
		Int64("customer_balance", int64(balanceAfter)).
		Msg("Средства списаны с баланса заказчика")

	// Снимок баланса заказчика едет по цепочке до шага завершения заказа.
	h.publish(ctx, h.cfg.Streams.IncrementExecutor, msg.WithCustomerBalance(int64(balanceAfter)))
	return metrics.ResultSuccess
}

// TickIncrementExecutor обрабатывает шаг начисления исполнителю.
func (h *Handlers) TickIncrementExecutor(ctx context.Context) {
	h.fanOut(ctx, h.cfg.Streams.IncrementExecutor, StepIncrementExecutor, h.processIncrementExecutor)
}

// processIncrementExecutor начисляет исполнителю цену заказа за вычетом
// комиссии площадки. Сумма каждый раз пересчитывается из сырой цены в
// сообщении, поэтому компенсирующее списание гарантированно совпадает
// с начислением. Бизнес-отказ на начислении неотличим от временного сбоя
// по смыслу реакции: повторяем, после исчерпания возвращаем деньги заказчику.
func (h *Handlers) processIncrementExecutor(ctx context.Context, msg *sagamsg.Message) string {
	log := logger.FromContext(ctx)

	share := h.commission.ExecutorShare(domain.Money(msg.Amount))

	if _, err := h.executor.Increase(ctx, msg.ExecutorID, share); err != nil {
		return h.retryOrCompensate(ctx, h.cfg.Streams.IncrementExecutor, msg, err, h.compensateToIncrementCustomer)
	}

	log.Info().
		Int64("amount", msg.Amount).
		Int64("executor_share", int64(share)).
		Msg("Средства начислены исполнителю")

	h.publish(ctx, h.cfg.Streams.CompleteOrder, msg)
	return metrics.ResultSuccess
}

// TickCompleteOrder обрабатывает терминальный шаг завершения заказа.
func (h *Handlers) TickCompleteOrder(ctx context.Context) {
	h.fanOut(ctx, h.cfg.Streams.CompleteOrder, StepCompleteOrder, h.processCompleteOrder)
}

// processCompleteOrder переводит заказ в completed и фиксирует снимок
// баланса заказчика. Неприменившееся изменение (заказ не в in_processing)
// не повторяется — заказ не в ожидаемом состоянии, немедленно запускаем
// откат денег. Временные сбои БД повторяются как обычно.
func (h *Handlers) processCompleteOrder(ctx context.Context, msg *sagamsg.Message) string {
	log := logger.FromContext(ctx)

	var customerBalance int64
	if msg.CustomerBalance != nil {
		customerBalance = *msg.CustomerBalance
	} else {
		log.Warn().Msg("Сообщение без снимка баланса заказчика, фиксируем 0")
	}

	if err := h.orders.Complete(ctx, msg.OrderID, msg.CustomerID, customerBalance); err != nil {
		if errors.Is(err, domain.ErrOrderWrongStatus) {
			log.Error().Err(err).Msg("Завершение заказа не применилось, запускаем откат")
			return h.compensateToDecreaseExecutor(ctx, msg)
		}
		return h.retryOrCompensate(ctx, h.cfg.Streams.CompleteOrder, msg, err, h.compensateToDecreaseExecutor)
	}

	log.Info().
		Int64("customer_balance", customerBalance).
		Msg("Заказ завершён")

	// Интеграционное событие для внешних потребителей — best-effort.
	if h.events != nil {
		if err := h.events.OrderCompleted(ctx, msg.OrderID, msg.CustomerID, msg.ExecutorID, msg.Amount); err != nil {
			log.Error().Err(err).Msg("Ошибка публикации события о завершении заказа")
		}
	}

	return metrics.ResultSuccess
}

// =============================================================================
// Компенсирующая ветка: DecreaseExecutorAmount -> IncrementCustomerAmount -> ReserveOrder
// =============================================================================

// TickDecreaseExecutor обрабатывает компенсирующее списание с исполнителя.
func (h *Handlers) TickDecreaseExecutor(ctx context.Context) {
	h.fanOut(ctx, h.cfg.Streams.DecreaseExecutor, StepDecreaseExecutor, h.processDecreaseExecutor)
}

// processDecreaseExecutor снимает с исполнителя ранее начисленную долю
// (пересчитанную из той же сырой цены). Дальше компенсации нет: после
// исчерпания повторов фиксируем терминальный отказ — заказ остаётся
// in_processing с частично откатанными балансами и требует вмешательства
// оператора.
func (h *Handlers) processDecreaseExecutor(ctx context.Context, msg *sagamsg.Message) string {
	log := logger.FromContext(ctx)

	share := h.commission.ExecutorShare(domain.Money(msg.Amount))

	if _, err := h.executor.Decrease(ctx, msg.ExecutorID, share); err != nil {
		return h.retryOrCompensate(ctx, h.cfg.Streams.DecreaseExecutor, msg, err,
			h.terminalFailure("не удалось снять компенсацию с баланса исполнителя"))
	}

	log.Info().
		Int64("executor_share", int64(share)).
		Msg("Компенсация снята с баланса исполнителя")

	h.publish(ctx, h.cfg.Streams.IncrementCustomer, msg)
	return metrics.ResultSuccess
}

// TickIncrementCustomer обрабатывает компенсирующий возврат заказчику.
func (h *Handlers) TickIncrementCustomer(ctx context.Context) {
	h.fanOut(ctx, h.cfg.Streams.IncrementCustomer, StepIncrementCustomer, h.processIncrementCustomer)
}

// processIncrementCustomer возвращает заказчику полную сырую цену заказа —
// комиссия на стороне заказчика никогда не применяется. Дальше компенсации
// нет, после исчерпания повторов — терминальный отказ.
func (h *Handlers) processIncrementCustomer(ctx context.Context, msg *sagamsg.Message) string {
	log := logger.FromContext(ctx)

	if _, err := h.customer.Increase(ctx, msg.CustomerID, domain.Money(msg.Amount)); err != nil {
		return h.retryOrCompensate(ctx, h.cfg.Streams.IncrementCustomer, msg, err,
			h.terminalFailure("не удалось вернуть средства заказчику"))
	}

	log.Info().
		Int64("amount", msg.Amount).
		Msg("Средства возвращены заказчику")

	h.publish(ctx, h.cfg.Streams.ReserveOrder, msg)
	return metrics.ResultSuccess
}

// TickReserveOrder обрабатывает терминальный шаг возврата заказа в очередь.
func (h *Handlers) TickReserveOrder(ctx context.Context) {
	h.fanOut(ctx, h.cfg.Streams.ReserveOrder, StepReserveOrder, h.processReserveOrder)
}

// processReserveOrder возвращает заказ из in_processing в reserved — заказ
// снова станет доступен poller'у и войдёт в цепочку заново. Неприменившееся
// изменение не повторяется: заказ не в ожидаемом статусе, это фатальное
// рассогласование состояния.
func (h *Handlers) processReserveOrder(ctx context.Context, msg *sagamsg.Message) string {
	log := logger.FromContext(ctx)

	if err := h.orders.ReReserve(ctx, msg.OrderID); err != nil {
		if errors.Is(err, domain.ErrOrderWrongStatus) {
			log.Error().Err(err).
				Msg("ТЕРМИНАЛЬНЫЙ ОТКАЗ: возврат заказа в reserved не применился, требуется вмешательство оператора")
			return metrics.ResultTerminal
		}
		return h.retryOrCompensate(ctx, h.cfg.Streams.ReserveOrder, msg, err,
			h.terminalFailure("не удалось вернуть заказ в reserved"))
	}

	log.Info().Msg("Заказ возвращён в reserved, доступен для повторного запуска цепочки")
	return metrics.ResultSuccess
}

// =============================================================================
// Компенсирующие переходы
// =============================================================================

// compensateToReserve публикует сообщение возврата заказа в reserved.
// Используется первым шагом: деньги ещё не двигались, откатывать нечего,
// достаточно вернуть заказ в очередь.
func (h *Handlers) compensateToReserve(ctx context.Context, msg *sagamsg.Message) string {
	h.publish(ctx, h.cfg.Streams.ReserveOrder, resetRetry(msg))
	return metrics.ResultCompensate
}

// compensateToIncrementCustomer публикует возврат средств заказчику.
// Используется шагом начисления исполнителю: заказчику уже списали,
// исполнителю начислить не удалось.
func (h *Handlers) compensateToIncrementCustomer(ctx context.Context, msg *sagamsg.Message) string {
	h.publish(ctx, h.cfg.Streams.IncrementCustomer, resetRetry(msg))
	return metrics.ResultCompensate
}

// compensateToDecreaseExecutor публикует списание с исполнителя.
// Используется шагом завершения заказа: обе балансовые операции прошли,
// но заказ завершить не удалось — разматываем обе.
func (h *Handlers) compensateToDecreaseExecutor(ctx context.Context, msg *sagamsg.Message) string {
	h.publish(ctx, h.cfg.Streams.DecreaseExecutor, resetRetry(msg))
	return metrics.ResultCompensate
}

// terminalFailure возвращает компенсацию-заглушку для шагов без дальнейшего
// пути отката: фиксирует терминальный отказ в логе и останавливает цепочку
// для этого заказа.
func (h *Handlers) terminalFailure(reason string) func(ctx context.Context, msg *sagamsg.Message) string {
	return func(ctx context.Context, msg *sagamsg.Message) string {
		log := logger.FromContext(ctx)
		log.Error().
			Str("reason", reason).
			Msg("ТЕРМИНАЛЬНЫЙ ОТКАЗ: цепочка остановлена, требуется вмешательство оператора")
		return metrics.ResultTerminal
	}
}

// resetRetry возвращает копию сообщения без счётчика повторов:
// компенсирующий шаг начинает со своим собственным бюджетом повторов.
func resetRetry(msg *sagamsg.Message) *sagamsg.Message {
	clone := *msg
	clone.RetryData = nil
	return &clone
}
