// Fulfillment Service — сервис выполнения заказов маркетплейса.
// Запускает хореографическую сагу расчётов: extraction poller забирает
// зарезервированные заказы, шесть обработчиков шагов двигают деньги между
// балансами заказчика и исполнителя через Redis Streams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/fulfillment-system/pkg/circuitbreaker"
	"example.com/fulfillment-system/pkg/config"
	"example.com/fulfillment-system/pkg/db"
	"example.com/fulfillment-system/pkg/healthcheck"
	"example.com/fulfillment-system/pkg/kafka"
	"example.com/fulfillment-system/pkg/logger"
	"example.com/fulfillment-system/pkg/metrics"
	"example.com/fulfillment-system/pkg/streams"
	"example.com/fulfillment-system/pkg/tracing"
	"example.com/fulfillment-system/services/fulfillment/internal/balance"
	"example.com/fulfillment-system/services/fulfillment/internal/repository"
	"example.com/fulfillment-system/services/fulfillment/internal/saga"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Pretty: cfg.App.LogPretty,
	})

	// Создаём логгер с контекстом сервиса
	log := logger.With().Str("service", "fulfillment-service").Logger()

	log.Info().
		Str("env", cfg.App.Env).
		Dur("poll_interval", cfg.Saga.PollInterval).
		Int("max_retries", cfg.Saga.MaxRetries).
		Msg("Запуск Fulfillment Service")

	// Инициализируем трассировку
	shutdownTracing, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.App.Name,
		JaegerEndpoint: cfg.Jaeger.OTLPEndpoint(),
		Enabled:        cfg.Jaeger.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка инициализации трассировки")
	}

	// Подключаемся к MySQL
	gormDB, err := db.ConnectMySQL(cfg.MySQL, cfg.IsDevelopment())
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка подключения к MySQL")
	}
	log.Info().Msg("Подключение к MySQL установлено")

	// Подключаемся к Redis (транспорт stream'ов саги)
	rdb := db.ConnectRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Ошибка подключения к Redis")
	}
	log.Info().Msg("Подключение к Redis установлено")

	// Создаём Kafka Producer для интеграционных событий
	producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка создания Kafka Producer")
	}

	// Создаём gRPC клиенты сервисов балансов с Circuit Breaker'ами
	customerClient, err := balance.NewClient(balance.ClientConfig{
		Name:           "customer-balance",
		Addr:           cfg.Balance.CustomerAddr,
		Timeout:        cfg.Balance.Timeout,
		CircuitBreaker: circuitbreaker.New("customer-balance"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка создания клиента баланса заказчиков")
	}

	executorClient, err := balance.NewClient(balance.ClientConfig{
		Name:           "executor-balance",
		Addr:           cfg.Balance.ExecutorAddr,
		Timeout:        cfg.Balance.Timeout,
		CircuitBreaker: circuitbreaker.New("executor-balance"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка создания клиента баланса исполнителей")
	}

	// Создаём репозитории
	orderRepo := repository.NewOrderRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)

	// Читаем ставку комиссии — фиксируется на всё время жизни процесса
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	commission, err := settingsRepo.CommissionRate(startupCtx)
	if err != nil {
		cancelStartup()
		log.Fatal().Err(err).Msg("Ошибка чтения ставки комиссии")
	}
	log.Info().Int64("commission_bp", int64(commission)).Msg("Ставка комиссии загружена")

	// Создаём транспорт саги и идемпотентно создаём consumer group'ы
	hostname, _ := os.Hostname()
	transport := streams.NewClient(rdb, streams.Config{
		Group:    cfg.Saga.ConsumerGroup,
		Consumer: hostname,
	})
	if err := transport.EnsureGroups(startupCtx, cfg.Saga.Streams()...); err != nil {
		cancelStartup()
		log.Fatal().Err(err).Msg("Ошибка создания consumer group'ов")
	}
	cancelStartup()

	// Собираем обработчики шагов саги
	streamNames := saga.StreamNames{
		DecreaseCustomer:  cfg.Saga.StreamDecreaseCustomer,
		IncrementExecutor: cfg.Saga.StreamIncrementExecutor,
		CompleteOrder:     cfg.Saga.StreamCompleteOrder,
		DecreaseExecutor:  cfg.Saga.StreamDecreaseExecutor,
		IncrementCustomer: cfg.Saga.StreamIncrementCustomer,
		ReserveOrder:      cfg.Saga.StreamReserveOrder,
	}

	handlers := saga.NewHandlers(
		transport,
		orderRepo,
		customerClient,
		executorClient,
		commission,
		saga.NewKafkaEventPublisher(producer),
		saga.Config{
			MaxRetries: cfg.Saga.MaxRetries,
			Streams:    streamNames,
		},
	)

	poller := saga.NewPoller(orderRepo, transport, cfg.Saga.StreamDecreaseCustomer, cfg.Saga.ClaimBatchSize)

	// Metrics server с readiness проверками MySQL и Redis
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Addr(), cfg.App.Name,
			metrics.WithReadinessCheck(healthcheck.Composite(
				func(ctx context.Context) error { return healthcheck.CheckMySQL(ctx, gormDB) },
				func(ctx context.Context) error { return healthcheck.CheckRedis(ctx, rdb) },
			)),
		)
		go func() {
			if err := metricsServer.Start(); err != nil {
				log.Error().Err(err).Msg("Ошибка Metrics Server")
			}
		}()
	}

	// Планировщик: poller + шесть шагов, каждый на своём независимом интервале
	scheduler := saga.NewScheduler(cfg.Saga.PollInterval,
		saga.Task{Name: "extraction-poller", Tick: poller.Tick},
		saga.Task{Name: saga.StepDecreaseCustomer, Tick: handlers.TickDecreaseCustomer},
		saga.Task{Name: saga.StepIncrementExecutor, Tick: handlers.TickIncrementExecutor},
		saga.Task{Name: saga.StepCompleteOrder, Tick: handlers.TickCompleteOrder},
		saga.Task{Name: saga.StepDecreaseExecutor, Tick: handlers.TickDecreaseExecutor},
		saga.Task{Name: saga.StepIncrementCustomer, Tick: handlers.TickIncrementCustomer},
		saga.Task{Name: saga.StepReserveOrder, Tick: handlers.TickReserveOrder},
	)

	// Запускаем планировщик до сигнала завершения
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler.Run(ctx)

	log.Info().Msg("Получен сигнал завершения, останавливаем сервис...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Ошибка остановки Metrics Server")
		}
	}

	if err := producer.Close(); err != nil {
		log.Error().Err(err).Msg("Ошибка закрытия Kafka Producer")
	}

	if err := customerClient.Close(); err != nil {
		log.Error().Err(err).Msg("Ошибка закрытия клиента баланса заказчиков")
	}
	if err := executorClient.Close(); err != nil {
		log.Error().Err(err).Msg("Ошибка закрытия клиента баланса исполнителей")
	}

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Ошибка закрытия Redis")
	}

	if sqlDB, err := gormDB.DB(); err == nil && sqlDB != nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Ошибка закрытия MySQL")
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Ошибка завершения трассировки")
	}

	log.Info().Msg("Fulfillment Service остановлен")
}
