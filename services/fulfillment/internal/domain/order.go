// Package domain содержит бизнес-сущности и доменные ошибки Fulfillment Service.
package domain

import "time"

// OrderStatus — статус заказа в цепочке исполнения.
type OrderStatus string

const (
	// OrderStatusActive — заказ опубликован, исполнитель ещё не назначен.
	OrderStatusActive OrderStatus = "active"

	// OrderStatusReserved — исполнитель назначен, заказ ожидает запуска цепочки расчётов.
	OrderStatusReserved OrderStatus = "reserved"

	// OrderStatusInProcessing — заказ забран в обработку, расчёты выполняются.
	OrderStatusInProcessing OrderStatus = "in_processing"

	// OrderStatusCompleted — расчёты завершены, заказ закрыт.
	OrderStatusCompleted OrderStatus = "completed"
)

// Money — денежная сумма в минимальных единицах (копейках).
// Целочисленное представление исключает ошибки плавающей точки в расчётах.
type Money int64

// CommissionRate — комиссия площадки в базисных пунктах (1% = 100 bp).
type CommissionRate int64

// basisPointsTotal — 100% в базисных пунктах.
const basisPointsTotal = 10000

// ExecutorShare возвращает сумму выплаты исполнителю после удержания комиссии.
// Округление — арифметическое (half-up), единое для начисления и списания:
// симметричность гарантирует, что компенсация снимает ровно столько,
// сколько было начислено.
func (r CommissionRate) ExecutorShare(raw Money) Money {
	return Money((int64(raw)*(basisPointsTotal-int64(r)) + basisPointsTotal/2) / basisPointsTotal)
}

// Order — заказ в цепочке исполнения.
// Это доменная сущность без зависимостей от инфраструктуры (GORM, proto).
type Order struct {
	ID         int64       // Уникальный идентификатор заказа
	CustomerID int64       // ID заказчика (плательщик)
	ExecutorID int64       // ID исполнителя (получатель выплаты)
	Price      Money       // Стоимость заказа в копейках
	Status     OrderStatus // Текущий статус заказа
	CreatedAt  time.Time   // Дата создания заказа
	UpdatedAt  time.Time   // Дата последнего обновления
}

// CanClaim проверяет, можно ли забрать заказ в обработку.
// Забрать можно только заказ в статусе reserved.
func (o *Order) CanClaim() bool {
	return o.Status == OrderStatusReserved
}

// CanComplete проверяет, можно ли завершить заказ.
// Завершить можно только заказ в статусе in_processing.
func (o *Order) CanComplete() bool {
	return o.Status == OrderStatusInProcessing
}

// CanReReserve проверяет, можно ли вернуть заказ в статус reserved.
// Откат возможен только из in_processing: заказ возвращается в очередь
// и будет забран цепочкой заново.
func (o *Order) CanReReserve() bool {
	return o.Status == OrderStatusInProcessing
}
