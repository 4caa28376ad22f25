package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Saga.PollInterval)
	assert.Equal(t, 10, cfg.Saga.ClaimBatchSize)
	assert.Equal(t, 3, cfg.Saga.MaxRetries)
	assert.Equal(t, "fulfillment", cfg.Saga.ConsumerGroup)

	// Шесть stream'ов — по одному на шаг цепочки.
	assert.Len(t, cfg.Saga.Streams(), 6)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SAGA_POLL_INTERVAL", "250ms")
	t.Setenv("SAGA_MAX_RETRIES", "5")
	t.Setenv("STREAM_RESERVE_ORDER", "custom.reserve")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Saga.PollInterval)
	assert.Equal(t, 5, cfg.Saga.MaxRetries)
	assert.Equal(t, "custom.reserve", cfg.Saga.StreamReserveOrder)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestMySQLConfig_DSN(t *testing.T) {
	cfg := MySQLConfig{
		Host: "db", Port: 3306, User: "app", Password: "secret", Database: "fulfillment",
	}

	assert.Equal(t,
		"app:secret@tcp(db:3306)/fulfillment?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.Addr())
}

func TestConfig_Environment(t *testing.T) {
	cfg := &Config{}

	cfg.App.Env = "development"
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Env = "production"
	assert.True(t, cfg.IsProduction())
}
