// Package saga содержит общий конверт сообщений хореографической саги
// выполнения заказа. Каждый шаг цепочки потребляет свой stream и публикует
// следующее (или компенсирующее) сообщение в этом же формате.
// Единый источник правды для схемы payload — исключает рассинхронизацию
// между обработчиками шагов.
package saga

import (
	"encoding/json"
	"time"
)

// =============================================================================
// Сообщение саги — общий конверт для всех шагов
// =============================================================================

// Message — бизнес-payload одного шага саги.
// Одно и то же сообщение (с тем же Amount — всегда «сырая» цена заказа)
// проходит через всю цепочку: комиссия исполнителя пересчитывается из
// сырой суммы на каждом шаге, поэтому компенсация точно обращает прямой
// эффект независимо от момента выполнения.
type Message struct {
	OrderID    int64 `json:"order_id"`    // ID заказа
	CustomerID int64 `json:"customer_id"` // ID заказчика
	ExecutorID int64 `json:"executor_id"` // ID исполнителя
	Amount     int64 `json:"amount"`      // Сырая цена заказа в копейках (без комиссии)

	// CustomerBalance — снимок баланса заказчика после списания.
	// Заполняется шагом DecreaseCustomerAmount и переносится по цепочке
	// до шага CompleteOrder, который фиксирует его в заказе.
	CustomerBalance *int64 `json:"customer_balance,omitempty"`

	// RetryData — счётчик повторов. Отсутствует у «свежего» сообщения;
	// появляется при первой переотправке.
	RetryData *RetryData `json:"retry_data,omitempty"`

	// Timestamp — время создания сообщения.
	Timestamp time.Time `json:"timestamp"`
}

// RetryData — данные о повторных попытках обработки сообщения.
type RetryData struct {
	Count int `json:"count"` // Номер попытки (1 — первая переотправка)
}

// ToJSON сериализует сообщение в JSON.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON десериализует сообщение из JSON.
func FromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WithRetry возвращает копию сообщения с установленным счётчиком повторов.
// Сообщения никогда не мутируются на месте: «повтор» — это публикация
// нового сообщения и подтверждение старого.
func (m *Message) WithRetry(count int) *Message {
	clone := *m
	clone.RetryData = &RetryData{Count: count}
	clone.Timestamp = time.Now()
	return &clone
}

// WithCustomerBalance возвращает копию сообщения со снимком баланса заказчика.
func (m *Message) WithCustomerBalance(balance int64) *Message {
	clone := *m
	clone.CustomerBalance = &balance
	clone.Timestamp = time.Now()
	return &clone
}
