// Package kafka предоставляет обёртку над kafka-go для публикации
// интеграционных событий. Шаги саги общаются через Redis Streams;
// Kafka используется только для исходящих событий внешним потребителям
// (аналитика, нотификации).
package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/fulfillment-system/pkg/logger"
)

// Топики интеграционных событий.
const (
	// TopicOrderEvents - топик событий жизненного цикла заказа (OrderCompleted и т.д.).
	TopicOrderEvents = "orders.events"
)

// Ключи для headers сообщений Kafka.
const (
	// HeaderCorrelationID - корреляционный токен экземпляра саги.
	HeaderCorrelationID = "correlation_id"

	// HeaderEventType - тип события (order.completed и т.д.).
	HeaderEventType = "event_type"

	// HeaderTimestamp - временная метка создания сообщения.
	HeaderTimestamp = "timestamp"
)

// Config содержит настройки для подключения к Kafka.
type Config struct {
	// Brokers - список адресов брокеров Kafka.
	Brokers []string
}

// Message представляет сообщение Kafka с метаданными.
type Message struct {
	// Key - ключ сообщения для партиционирования.
	Key []byte

	// Value - тело сообщения (payload).
	Value []byte

	// Topic - топик сообщения.
	Topic string

	// Headers - заголовки сообщения (correlation_id, event_type и т.д.).
	Headers map[string]string

	// Time - временная метка сообщения.
	Time time.Time
}

// toKafkaMessage конвертирует Message в kafka.Message.
func (m *Message) toKafkaMessage() kafka.Message {
	headers := make([]kafka.Header, 0, len(m.Headers))
	for k, v := range m.Headers {
		headers = append(headers, kafka.Header{
			Key:   k,
			Value: []byte(v),
		})
	}

	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Topic:   m.Topic,
		Headers: headers,
		Time:    m.Time,
	}
}

// CorrelationIDFromContext извлекает correlation_id из context.
// Делегирует в pkg/logger для единообразной работы с контекстом.
func CorrelationIDFromContext(ctx context.Context) string {
	return logger.CorrelationIDFromContext(ctx)
}

// ContextWithCorrelationID добавляет correlation_id в context.
// Делегирует в pkg/logger для единообразной работы с контекстом.
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return logger.WithCorrelationID(ctx, correlationID)
}
