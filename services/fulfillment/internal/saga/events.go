package saga

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"example.com/fulfillment-system/pkg/kafka"
)

// EventPublisher публикует интеграционные события жизненного цикла заказа
// для внешних потребителей (аналитика, нотификации). Не является частью
// цепочки саги: ошибки публикации не влияют на её ход.
type EventPublisher interface {
	OrderCompleted(ctx context.Context, orderID, customerID, executorID, amount int64) error
}

// OrderCompletedEvent — payload события завершения заказа.
type OrderCompletedEvent struct {
	OrderID     int64     `json:"order_id"`
	CustomerID  int64     `json:"customer_id"`
	ExecutorID  int64     `json:"executor_id"`
	Amount      int64     `json:"amount"`
	CompletedAt time.Time `json:"completed_at"`
}

// eventTypeOrderCompleted — значение header'а event_type.
const eventTypeOrderCompleted = "order.completed"

// kafkaEventPublisher — публикация событий в Kafka.
type kafkaEventPublisher struct {
	producer *kafka.Producer
}

// NewKafkaEventPublisher создаёт publisher интеграционных событий поверх Kafka.
func NewKafkaEventPublisher(producer *kafka.Producer) EventPublisher {
	return &kafkaEventPublisher{producer: producer}
}

// OrderCompleted публикует событие завершения заказа.
// Ключ — ID заказа: все события одного заказа попадают в одну партицию.
func (p *kafkaEventPublisher) OrderCompleted(ctx context.Context, orderID, customerID, executorID, amount int64) error {
	event := OrderCompletedEvent{
		OrderID:     orderID,
		CustomerID:  customerID,
		ExecutorID:  executorID,
		Amount:      amount,
		CompletedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.producer.SendMessage(ctx, &kafka.Message{
		Topic: kafka.TopicOrderEvents,
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: payload,
		Headers: map[string]string{
			kafka.HeaderEventType: eventTypeOrderCompleted,
		},
		Time: time.Now(),
	})
}
