package kafka

import (
	"context"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// SalePublisher публикует события продаж в TopicSaleEvents.
// Ключом сообщения служит id продажи, поэтому события одной продажи
// попадают в одну партицию и сохраняют порядок.
type SalePublisher struct {
	producer *Producer
	topic    string
}

// NewSalePublisher создаёт публикатор поверх producer. Пустой topic
// заменяется на TopicSaleEvents.
func NewSalePublisher(producer *Producer, topic string) *SalePublisher {
	if topic == "" {
		topic = TopicSaleEvents
	}
	return &SalePublisher{producer: producer, topic: topic}
}

// PublishSaleEvent отправляет событие типа eventType для продажи sale.
func (p *SalePublisher) PublishSaleEvent(ctx context.Context, eventType domain.SaleEventType, sale domain.Sale) error {
	event := NewSaleEvent(eventType, sale, p.producer.now().UTC())
	return p.producer.PublishEvent(ctx, p.topic, sale.ID, string(eventType), event)
}
