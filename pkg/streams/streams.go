// Package streams предоставляет транспорт сообщений саги на базе Redis Streams.
// Каждый шаг цепочки — отдельный stream с единственной consumer group.
// Несколько инстансов процесса в одной группе конкурируют за сообщения,
// что даёт горизонтальное масштабирование без дублирования обработки.
//
// Семантика доставки — at-least-once: чтение через XREADGROUP с NOACK
// подтверждает сообщение в момент выдачи. Падение процесса между выдачей
// и завершением бизнес-логики означает потерю сообщения для группы;
// от двойных эффектов защищает идемпотентность бизнес-вызовов сервисов
// балансов, а не транспорт.
package streams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"example.com/fulfillment-system/pkg/logger"
)

// Поля записи stream. Payload и correlation_id передаются раздельно:
// correlation token не является частью бизнес-payload.
const (
	fieldPayload       = "payload"
	fieldCorrelationID = "correlation_id"
)

// Delivery — одно доставленное сообщение stream.
type Delivery struct {
	// ID — транспортный идентификатор доставки (ID записи в stream).
	// Не путать с correlation token: ID меняется при каждой переотправке.
	ID string

	// CorrelationID — токен корреляции экземпляра саги.
	// Сохраняется неизменным через все переотправки и переходы между stream'ами.
	CorrelationID string

	// Payload — сериализованное бизнес-сообщение.
	Payload []byte
}

// Config содержит настройки транспорта.
type Config struct {
	// Group — имя consumer group (одно на деплоймент, общее для всех stream'ов).
	Group string

	// Consumer — имя потребителя внутри группы (обычно hostname инстанса).
	Consumer string

	// ClaimCount — максимум сообщений, выдаваемых за один ClaimPending.
	ClaimCount int64
}

// Client — клиент транспорта поверх Redis Streams.
type Client struct {
	rdb redis.Cmdable
	cfg Config
}

// NewClient создаёт клиент транспорта.
func NewClient(rdb redis.Cmdable, cfg Config) *Client {
	if cfg.ClaimCount <= 0 {
		cfg.ClaimCount = 100
	}
	return &Client{rdb: rdb, cfg: cfg}
}

// Publish публикует payload в указанный stream вместе с correlation token.
// Возвращает транспортный ID доставки.
func (c *Client) Publish(ctx context.Context, stream, correlationID string, payload []byte) (string, error) {
	id, err := c.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			fieldPayload:       payload,
			fieldCorrelationID: correlationID,
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("ошибка публикации в stream %s: %w", stream, err)
	}
	return id, nil
}

// ClaimPending забирает все новые сообщения stream'а для consumer group.
// Возвращаются только сообщения, ещё не выданные группе; повторной выдачи
// уже полученных сообщений нет (NOACK — выдача и есть подтверждение).
//
// Записи без поля payload отбрасываются с логированием и не блокируют
// остальную пачку.
func (c *Client) ClaimPending(ctx context.Context, stream string) ([]Delivery, error) {
	res, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{stream, ">"},
		Count:    c.cfg.ClaimCount,
		Block:    -1, // Не блокируемся: пустой stream — нормальная ситуация
		NoAck:    true,
	}).Result()
	if err != nil {
		// redis.Nil — нет новых сообщений.
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения stream %s: %w", stream, err)
	}

	var deliveries []Delivery
	for _, streamRes := range res {
		for _, entry := range streamRes.Messages {
			delivery, ok := c.decodeEntry(stream, entry)
			if !ok {
				continue
			}
			deliveries = append(deliveries, delivery)
		}
	}

	return deliveries, nil
}

// decodeEntry извлекает payload и correlation token из записи stream.
// Возвращает ok=false для записей без корректного payload.
func (c *Client) decodeEntry(stream string, entry redis.XMessage) (Delivery, bool) {
	payload, ok := entry.Values[fieldPayload].(string)
	if !ok || payload == "" {
		logger.Warn().
			Str("stream", stream).
			Str("entry_id", entry.ID).
			Msg("Запись stream без payload, отбрасываем")
		return Delivery{}, false
	}

	correlationID, _ := entry.Values[fieldCorrelationID].(string)

	return Delivery{
		ID:            entry.ID,
		CorrelationID: correlationID,
		Payload:       []byte(payload),
	}, true
}

// EnsureGroups идемпотентно создаёт consumer group для каждого stream'а
// с самого раннего offset'а. Если группа уже существует — BUSYGROUP
// игнорируется, поэтому запуск безопасен при рестартах и параллельно
// с работающим деплойментом.
func (c *Client) EnsureGroups(ctx context.Context, streams ...string) error {
	for _, stream := range streams {
		err := c.rdb.XGroupCreateMkStream(ctx, stream, c.cfg.Group, "0").Err()
		if err != nil {
			if isBusyGroup(err) {
				logger.Debug().
					Str("stream", stream).
					Str("group", c.cfg.Group).
					Msg("Consumer group уже существует")
				continue
			}
			return fmt.Errorf("ошибка создания consumer group для %s: %w", stream, err)
		}
		logger.Info().
			Str("stream", stream).
			Str("group", c.cfg.Group).
			Msg("Создана consumer group")
	}
	return nil
}

// isBusyGroup проверяет ответ BUSYGROUP (группа уже существует).
func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
