//go:build e2e

// Package e2e — E2E тесты цепочки саги против развёрнутого окружения
// (MySQL, Redis, Kafka, сервисы балансов, запущенный fulfillment-service).
// Запуск: go test -tags=e2e -v ./tests/e2e/...
package e2e

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	metricsURL    = "http://localhost:9090"
	healthTimeout = 5 * time.Second
	sagaTimeout   = 30 * time.Second
	pollInterval  = 500 * time.Millisecond
)

// testOrder — строка таблицы orders для E2E сценариев.
type testOrder struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64  `gorm:"column:customer_id"`
	ExecutorID int64  `gorm:"column:executor_id"`
	Price      int64  `gorm:"column:price"`
	Status     string `gorm:"column:status"`
}

func (testOrder) TableName() string { return "orders" }

// dsn возвращает строку подключения к MySQL тестового окружения.
func dsn() string {
	if v := os.Getenv("E2E_MYSQL_DSN"); v != "" {
		return v
	}
	return "root:root@tcp(localhost:3306)/fulfillment?charset=utf8mb4&parseTime=True&loc=Local"
}

// connectDB подключается к MySQL тестового окружения.
func connectDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.Open(dsn()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "нет подключения к MySQL тестового окружения")
	return db
}

// waitHealthy ждёт готовности сервиса по /readyz.
func waitHealthy(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(healthTimeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(metricsURL + "/readyz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(pollInterval)
	}
	t.Fatal("fulfillment-service не готов")
}

// waitStatus ждёт, пока заказ перейдёт в ожидаемый статус.
func waitStatus(t *testing.T, db *gorm.DB, orderID int64, want string) {
	t.Helper()

	var got string
	require.Eventually(t, func() bool {
		var order testOrder
		if err := db.First(&order, orderID).Error; err != nil {
			return false
		}
		got = order.Status
		return got == want
	}, sagaTimeout, pollInterval,
		fmt.Sprintf("заказ %d не перешёл в %q (последний статус: %q)", orderID, want, got))
}

func TestSagaFlow_HealthEndpoints(t *testing.T) {
	waitHealthy(t)

	resp, err := http.Get(metricsURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(metricsURL + "/metrics")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

// Счастливый путь: зарезервированный заказ проходит цепочку и завершается.
// Предполагается, что у заказчика 1001 в тестовом окружении достаточно средств.
func TestSagaFlow_ReservedOrderCompletes(t *testing.T) {
	waitHealthy(t)
	db := connectDB(t)

	order := &testOrder{
		CustomerID: 1001,
		ExecutorID: 2001,
		Price:      10050, // 100.50
		Status:     "reserved",
	}
	require.NoError(t, db.Create(order).Error)

	waitStatus(t, db, order.ID, "completed")
}

// Откат: у заказчика 1002 нулевой баланс — списание отклоняется,
// заказ возвращается в reserved.
func TestSagaFlow_InsufficientFundsRollsBack(t *testing.T) {
	waitHealthy(t)
	db := connectDB(t)

	order := &testOrder{
		CustomerID: 1002,
		ExecutorID: 2001,
		Price:      999999999, // заведомо больше любого тестового баланса
		Status:     "reserved",
	}
	require.NoError(t, db.Create(order).Error)

	// Сначала ждём, пока poller заберёт заказ в обработку...
	waitStatus(t, db, order.ID, "in_processing")
	// ...затем бизнес-отказ возвращает его в reserved.
	waitStatus(t, db, order.ID, "reserved")

	// Убеждаемся, что заказ не завис в in_processing.
	time.Sleep(2 * time.Second)
	var got testOrder
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.NotEqual(t, "completed", got.Status)
}
