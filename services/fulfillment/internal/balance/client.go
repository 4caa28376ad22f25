// Package balance содержит gRPC клиенты сервисов балансов.
// Сервисы балансов заказчиков и исполнителей имеют одинаковый API,
// но разворачиваются отдельными инстансами.
package balance

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"example.com/fulfillment-system/pkg/circuitbreaker"
	"example.com/fulfillment-system/pkg/logger"
	balancev1 "example.com/fulfillment-system/proto/balance/v1"
	"example.com/fulfillment-system/services/fulfillment/internal/domain"
)

// Client определяет интерфейс операций с балансом пользователя.
// Все суммы положительные, в копейках.
type Client interface {
	// Decrease списывает amount с баланса пользователя.
	// Возвращает баланс после списания.
	// При недостатке средств возвращает StepError{BusinessRejection},
	// при сбое транспорта — StepError{Retryable}.
	Decrease(ctx context.Context, userID int64, amount domain.Money) (domain.Money, error)

	// Increase начисляет amount на баланс пользователя.
	// Возвращает баланс после начисления.
	// При сбое транспорта возвращает StepError{Retryable}.
	Increase(ctx context.Context, userID int64, amount domain.Money) (domain.Money, error)

	// Close закрывает соединение.
	Close() error
}

// ClientConfig — конфигурация gRPC клиента баланса.
type ClientConfig struct {
	Name           string                  // Имя сервиса для логов ("customer-balance", "executor-balance")
	Addr           string                  // Адрес сервиса (host:port)
	Timeout        time.Duration           // Таймаут одного вызова
	CircuitBreaker *circuitbreaker.Breaker // Circuit Breaker (опционально)
}

// grpcClient — gRPC реализация Client.
type grpcClient struct {
	conn    *grpc.ClientConn
	client  balancev1.BalanceServiceClient
	name    string
	timeout time.Duration
}

// NewClient создаёт новый gRPC клиент к сервису баланса.
func NewClient(cfg ClientConfig) (Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	// gRPC опции.
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	// Добавляем Circuit Breaker interceptor если задан.
	if cfg.CircuitBreaker != nil {
		opts = append(opts, grpc.WithUnaryInterceptor(
			circuitbreaker.UnaryClientInterceptor(cfg.CircuitBreaker),
		))
	}

	// Создаём соединение через grpc.NewClient (современный API).
	conn, err := grpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания gRPC клиента (%s): %w", cfg.Addr, err)
	}

	logger.Info().
		Str("service", cfg.Name).
		Str("addr", cfg.Addr).
		Msg("Создан клиент сервиса баланса")

	return &grpcClient{
		conn:    conn,
		client:  balancev1.NewBalanceServiceClient(conn),
		name:    cfg.Name,
		timeout: cfg.Timeout,
	}, nil
}

// Decrease списывает сумму с баланса пользователя.
func (c *grpcClient) Decrease(ctx context.Context, userID int64, amount domain.Money) (domain.Money, error) {
	return c.adjust(ctx, userID, amount, balancev1.Direction_DIRECTION_DECREASE)
}

// Increase начисляет сумму на баланс пользователя.
func (c *grpcClient) Increase(ctx context.Context, userID int64, amount domain.Money) (domain.Money, error) {
	return c.adjust(ctx, userID, amount, balancev1.Direction_DIRECTION_INCREASE)
}

// adjust выполняет AdjustBalance и классифицирует результат.
func (c *grpcClient) adjust(ctx context.Context, userID int64, amount domain.Money, direction balancev1.Direction) (domain.Money, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.AdjustBalance(ctx, &balancev1.AdjustBalanceRequest{
		UserId:    userID,
		Amount:    int64(amount),
		Direction: direction,
	})
	if err != nil {
		// Любая ошибка транспорта (включая отказ Circuit Breaker'а) — временный сбой.
		return 0, domain.NewRetryable(
			fmt.Errorf("%s: ошибка вызова AdjustBalance: %w", c.name, err))
	}

	// applied=false означает бизнес-отказ: повторять бессмысленно.
	if !resp.GetApplied() {
		return domain.Money(resp.GetBalance()), domain.NewBusinessRejection(
			fmt.Errorf("%s: %w (user_id=%d, amount=%d)",
				c.name, domain.ErrInsufficientFunds, userID, amount))
	}

	return domain.Money(resp.GetBalance()), nil
}

// Close закрывает соединение с сервисом баланса.
func (c *grpcClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
