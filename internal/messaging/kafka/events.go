package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// TopicSaleEvents — топик событий об изменении продаж.
const TopicSaleEvents = "sales.sale.events"

// HeaderEventType дублирует тип события в заголовке сообщения,
// чтобы потребители могли фильтровать без разбора тела.
const HeaderEventType = "x-event-type"

// SaleEvent представляет событие об изменении продажи.
// Для sale.deleted заполнен только SaleID; для sale.updated Sale содержит
// id и лишь изменённые поля.
//
// Хранилище не сообщает, нашлась ли запись при обновлении, поэтому
// sale.updated приходит на каждое принятое обновление, в том числе для id,
// которого нет. Потребитель сверяет SaleID со своим состоянием.
type SaleEvent struct {
	EventType domain.SaleEventType `json:"event_type"`
	SaleID    string               `json:"sale_id"`
	Sale      *domain.Sale         `json:"sale,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// NewSaleEvent создает новое событие продажи
func NewSaleEvent(eventType domain.SaleEventType, sale domain.Sale, at time.Time) *SaleEvent {
	event := &SaleEvent{
		EventType: eventType,
		SaleID:    sale.ID,
		Timestamp: at,
	}
	if eventType != domain.SaleEventDeleted {
		event.Sale = &sale
	}
	return event
}
