// Package config предоставляет загрузку конфигурации из переменных окружения.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config содержит полную конфигурацию приложения.
type Config struct {
	App     AppConfig
	MySQL   MySQLConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Balance BalanceConfig
	Saga    SagaConfig
	Jaeger  JaegerConfig
	Metrics MetricsConfig
}

// AppConfig содержит общие настройки приложения.
type AppConfig struct {
	Name      string `env:"APP_NAME" envDefault:"fulfillment-system"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// MySQLConfig содержит настройки подключения к MySQL.
type MySQLConfig struct {
	Host            string        `env:"MYSQL_HOST" envDefault:"localhost"`
	Port            int           `env:"MYSQL_PORT" envDefault:"3306"`
	User            string        `env:"MYSQL_USER" envDefault:"root"`
	Password        string        `env:"MYSQL_PASSWORD" envDefault:"root"`
	Database        string        `env:"MYSQL_DATABASE" envDefault:"fulfillment"`
	MaxOpenConns    int           `env:"MYSQL_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MYSQL_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"MYSQL_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// DSN возвращает строку подключения к MySQL.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig содержит настройки подключения к Redis.
// Redis Streams — транспорт сообщений саги.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Addr возвращает адрес Redis сервера.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KafkaConfig содержит настройки подключения к Kafka.
// Kafka используется только для исходящих интеграционных событий
// (например, OrderCompleted), а не для шагов саги.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// BalanceConfig содержит адреса gRPC сервисов балансов.
type BalanceConfig struct {
	CustomerAddr string        `env:"CUSTOMER_BALANCE_ADDR" envDefault:"localhost:50051"`
	ExecutorAddr string        `env:"EXECUTOR_BALANCE_ADDR" envDefault:"localhost:50052"`
	Timeout      time.Duration `env:"BALANCE_TIMEOUT" envDefault:"5s"`
}

// SagaConfig содержит настройки цепочки саги.
type SagaConfig struct {
	// PollInterval — интервал между тиками каждого воркера (fixed delay).
	PollInterval time.Duration `env:"SAGA_POLL_INTERVAL" envDefault:"5s"`

	// ClaimBatchSize — сколько заказов забирает extraction poller за тик.
	ClaimBatchSize int `env:"SAGA_CLAIM_BATCH_SIZE" envDefault:"10"`

	// MaxRetries — максимальное количество попыток обработки одного сообщения.
	// После исчерпания шаг публикует компенсирующее сообщение (или фиксирует
	// терминальный отказ, если компенсации для шага нет).
	MaxRetries int `env:"SAGA_MAX_RETRIES" envDefault:"3"`

	// ConsumerGroup — имя consumer group, общее для всех stream'ов.
	ConsumerGroup string `env:"SAGA_CONSUMER_GROUP" envDefault:"fulfillment"`

	// Имена stream'ов шагов. По одному stream на шаг цепочки.
	StreamDecreaseCustomer  string `env:"STREAM_DECREASE_CUSTOMER" envDefault:"saga.decrease-customer-amount"`
	StreamIncrementExecutor string `env:"STREAM_INCREMENT_EXECUTOR" envDefault:"saga.increment-executor-amount"`
	StreamCompleteOrder     string `env:"STREAM_COMPLETE_ORDER" envDefault:"saga.complete-order"`
	StreamDecreaseExecutor  string `env:"STREAM_DECREASE_EXECUTOR" envDefault:"saga.decrease-executor-amount"`
	StreamIncrementCustomer string `env:"STREAM_INCREMENT_CUSTOMER" envDefault:"saga.increment-customer-amount"`
	StreamReserveOrder      string `env:"STREAM_RESERVE_ORDER" envDefault:"saga.reserve-order"`
}

// Streams возвращает имена всех stream'ов цепочки.
// Используется при идемпотентном создании consumer group на старте.
func (c SagaConfig) Streams() []string {
	return []string{
		c.StreamDecreaseCustomer,
		c.StreamIncrementExecutor,
		c.StreamCompleteOrder,
		c.StreamDecreaseExecutor,
		c.StreamIncrementCustomer,
		c.StreamReserveOrder,
	}
}

// JaegerConfig содержит настройки трассировки Jaeger.
type JaegerConfig struct {
	Enabled  bool   `env:"JAEGER_ENABLED" envDefault:"false"`
	Host     string `env:"JAEGER_HOST" envDefault:"localhost"`
	OTLPPort int    `env:"JAEGER_OTLP_PORT" envDefault:"4317"` // OTLP gRPC порт
}

// OTLPEndpoint возвращает OTLP gRPC endpoint для Jaeger.
func (c JaegerConfig) OTLPEndpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.OTLPPort)
}

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"` // Включить metrics endpoint
	Port    int  `env:"METRICS_PORT" envDefault:"9090"`    // Порт для /metrics
}

// Addr возвращает адрес для Metrics HTTP сервера.
func (c MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load загружает конфигурацию из переменных окружения.
// Опционально загружает .env файл, если он существует.
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файл не найден)
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return cfg, nil
}

// LoadFromFile загружает конфигурацию из указанного .env файла.
func LoadFromFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("ошибка загрузки .env файла %s: %w", path, err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return cfg, nil
}

// IsDevelopment возвращает true, если приложение запущено в development режиме.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction возвращает true, если приложение запущено в production режиме.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
