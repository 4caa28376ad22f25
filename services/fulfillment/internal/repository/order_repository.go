// Package repository содержит реализацию доступа к данным Fulfillment Service.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/fulfillment-system/services/fulfillment/internal/domain"
)

// OrderRepository определяет интерфейс для работы с заказами в БД.
type OrderRepository interface {
	// ClaimBatch атомарно забирает пачку зарезервированных заказов в обработку:
	// выбирает до limit заказов в статусе reserved и переводит их в in_processing.
	// Конкурирующие инстансы не получают одни и те же заказы (SKIP LOCKED).
	ClaimBatch(ctx context.Context, limit int) ([]*domain.Order, error)

	// GetByID возвращает заказ по ID.
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)

	// Complete переводит заказ из in_processing в completed и фиксирует
	// баланс заказчика на момент завершения.
	// Возвращает ErrOrderWrongStatus, если заказ не в in_processing.
	Complete(ctx context.Context, orderID, customerID, customerBalance int64) error

	// ReReserve возвращает заказ из in_processing в reserved.
	// Компенсирующая операция: заказ снова встаёт в очередь цепочки.
	// Возвращает ErrOrderWrongStatus, если заказ не в in_processing.
	ReReserve(ctx context.Context, orderID int64) error
}

// SettingsRepository определяет интерфейс для чтения настроек площадки.
type SettingsRepository interface {
	// CommissionRate возвращает ставку комиссии площадки в базисных пунктах.
	CommissionRate(ctx context.Context) (domain.CommissionRate, error)
}

// OrderModel — GORM модель для таблицы orders.
// Отделена от доменной сущности для гибкости.
type OrderModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64     `gorm:"column:customer_id;not null;index"`
	ExecutorID int64     `gorm:"column:executor_id;not null;index"`
	Price      int64     `gorm:"column:price;not null"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Баланс заказчика на момент завершения, для сверки и аудита.
	CustomerBalanceAtCompletion *int64 `gorm:"column:customer_balance_at_completion"`
}

// TableName возвращает имя таблицы в БД.
func (OrderModel) TableName() string {
	return "orders"
}

// SettingModel — GORM модель для таблицы settings (key-value настройки площадки).
type SettingModel struct {
	Name  string `gorm:"column:name;type:varchar(64);primaryKey"`
	Value int64  `gorm:"column:value;not null"`
}

// TableName возвращает имя таблицы в БД.
func (SettingModel) TableName() string {
	return "settings"
}

// settingCommissionRate — имя настройки ставки комиссии (базисные пункты).
const settingCommissionRate = "commission_rate_bp"

// toDomain конвертирует GORM модель заказа в доменную сущность.
func (m *OrderModel) toDomain() *domain.Order {
	return &domain.Order{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		ExecutorID: m.ExecutorID,
		Price:      domain.Money(m.Price),
		Status:     domain.OrderStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// orderRepository — GORM реализация OrderRepository.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// ClaimBatch забирает пачку зарезервированных заказов в обработку.
// SELECT ... FOR UPDATE SKIP LOCKED + UPDATE в одной транзакции:
// параллельные инстансы poller'а не конкурируют за одни и те же строки,
// и каждый заказ попадает в цепочку не более одного раза.
func (r *orderRepository) ClaimBatch(ctx context.Context, limit int) ([]*domain.Order, error) {
	var models []OrderModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", string(domain.OrderStatusReserved)).
			Order("id").
			Limit(limit).
			Find(&models).Error; err != nil {
			return err
		}

		if len(models) == 0 {
			return nil
		}

		ids := make([]int64, len(models))
		for i := range models {
			ids[i] = models[i].ID
		}

		return tx.Model(&OrderModel{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":     string(domain.OrderStatusInProcessing),
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(models))
	for i := range models {
		orders[i] = models[i].toDomain()
		orders[i].Status = domain.OrderStatusInProcessing
	}

	return orders, nil
}

// GetByID возвращает заказ по ID.
func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	var model OrderModel

	if err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return model.toDomain(), nil
}

// Complete переводит заказ в completed.
// Условный UPDATE по (id, customer_id, status): RowsAffected == 0 означает,
// что заказ не найден или уже не в in_processing.
func (r *orderRepository) Complete(ctx context.Context, orderID, customerID, customerBalance int64) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ? AND customer_id = ? AND status = ?",
			orderID, customerID, string(domain.OrderStatusInProcessing)).
		Updates(map[string]interface{}{
			"status":                         string(domain.OrderStatusCompleted),
			"customer_balance_at_completion": customerBalance,
			"updated_at":                     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrOrderWrongStatus
	}

	return nil
}

// ReReserve возвращает заказ из in_processing в reserved.
func (r *orderRepository) ReReserve(ctx context.Context, orderID int64) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ? AND status = ?", orderID, string(domain.OrderStatusInProcessing)).
		Updates(map[string]interface{}{
			"status":     string(domain.OrderStatusReserved),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrOrderWrongStatus
	}

	return nil
}

// settingsRepository — GORM реализация SettingsRepository.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository создаёт новый репозиторий настроек.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// CommissionRate читает ставку комиссии из таблицы settings.
func (r *settingsRepository) CommissionRate(ctx context.Context) (domain.CommissionRate, error) {
	var model SettingModel

	if err := r.db.WithContext(ctx).
		Where("name = ?", settingCommissionRate).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrCommissionNotConfigured
		}
		return 0, err
	}

	return domain.CommissionRate(model.Value), nil
}
