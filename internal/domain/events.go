package domain

// SaleEventType определяет тип события об изменении продажи.
type SaleEventType string

// Типы событий, которые публикуются после успешной записи.
const (
	SaleEventCreated SaleEventType = "sale.created"
	SaleEventUpdated SaleEventType = "sale.updated"
	SaleEventDeleted SaleEventType = "sale.deleted"
)
