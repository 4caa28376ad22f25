// Package domain содержит бизнес-сущности и доменные ошибки Fulfillment Service.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind — категория ошибки шага саги.
// Закрытый набор: решение "повторить / компенсировать / терминальный отказ"
// принимается switch'ем по категории, новые категории требуют явной обработки
// в каждом шаге.
type ErrorKind int

const (
	// KindRetryable — временный сбой (сеть, таймаут, недоступность сервиса).
	// Сообщение переотправляется в тот же stream с увеличенным счётчиком.
	KindRetryable ErrorKind = iota

	// KindBusinessRejection — бизнес-отказ (недостаточно средств).
	// Повторы бессмысленны: шаг немедленно запускает компенсацию.
	KindBusinessRejection

	// KindStoreMutationFailed — изменение записи заказа не применилось
	// (запись не найдена или статус не совпал с ожидаемым).
	KindStoreMutationFailed
)

// String возвращает строковое представление категории для логов.
func (k ErrorKind) String() string {
	switch k {
	case KindRetryable:
		return "retryable"
	case KindBusinessRejection:
		return "business_rejection"
	case KindStoreMutationFailed:
		return "store_mutation_failed"
	default:
		return "unknown"
	}
}

// StepError — ошибка выполнения шага саги с категорией.
type StepError struct {
	Kind ErrorKind // Категория ошибки, определяет реакцию шага
	Err  error     // Исходная ошибка
}

// Error реализует интерфейс error.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap возвращает исходную ошибку для errors.Is / errors.As.
func (e *StepError) Unwrap() error {
	return e.Err
}

// NewRetryable создаёт ошибку временного сбоя.
func NewRetryable(err error) *StepError {
	return &StepError{Kind: KindRetryable, Err: err}
}

// NewBusinessRejection создаёт ошибку бизнес-отказа.
func NewBusinessRejection(err error) *StepError {
	return &StepError{Kind: KindBusinessRejection, Err: err}
}

// NewStoreMutationFailed создаёт ошибку неприменившегося изменения заказа.
func NewStoreMutationFailed(err error) *StepError {
	return &StepError{Kind: KindStoreMutationFailed, Err: err}
}

// KindOf возвращает категорию ошибки.
// Ошибки без категории считаются Retryable: неизвестный сбой безопаснее
// повторить, чем необратимо компенсировать.
func KindOf(err error) ErrorKind {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Kind
	}
	return KindRetryable
}

// Доменные ошибки Fulfillment Service.
var (
	// ErrOrderNotFound возвращается, когда заказ не найден в базе данных.
	ErrOrderNotFound = errors.New("заказ не найден")

	// ErrOrderWrongStatus возвращается, когда статус заказа не совпал
	// с ожидаемым при условном обновлении.
	ErrOrderWrongStatus = errors.New("заказ не в ожидаемом статусе")

	// ErrInsufficientFunds возвращается сервисом баланса при нехватке средств.
	ErrInsufficientFunds = errors.New("недостаточно средств на балансе")

	// ErrCommissionNotConfigured возвращается, когда ставка комиссии
	// отсутствует в таблице настроек.
	ErrCommissionNotConfigured = errors.New("ставка комиссии не настроена")
)
