package kafka

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "kafka-producer-test")
}

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, testLogger())

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicSaleEvents {
			t.Errorf("unexpected topic: %s", msg.Topic)
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != string(domain.SaleEventCreated) {
			t.Errorf("unexpected headers: %+v", msg.Headers)
		}
		return nil
	})

	event := NewSaleEvent(domain.SaleEventCreated, domain.Sale{ID: "sale-123"}, time.Now())
	if err := producer.PublishEvent(context.Background(), TopicSaleEvents, "sale-123", string(domain.SaleEventCreated), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, testLogger())

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := NewSaleEvent(domain.SaleEventDeleted, domain.Sale{ID: "sale-123"}, time.Now())
	err := producer.PublishEvent(context.Background(), TopicSaleEvents, "sale-123", string(domain.SaleEventDeleted), event)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_CanceledContext(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := producer.PublishEvent(ctx, TopicSaleEvents, "sale-1", string(domain.SaleEventCreated), struct{}{}); err == nil {
		t.Fatal("expected error for canceled context")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	if _, err := NewProducer(nil, testLogger()); err == nil {
		t.Fatal("expected error without brokers")
	}
}

func TestNewProducerConfig(t *testing.T) {
	config := newProducerConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("producer config is invalid: %v", err)
	}
	if !config.Producer.Idempotent || config.Net.MaxOpenRequests != 1 {
		t.Fatal("expected idempotent producer with a single in-flight request")
	}
}

func TestSalePublisher_PublishSaleEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, testLogger())
	fixed := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	producer.now = func() time.Time { return fixed }

	sku := "sku-1"
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "sale-9" {
			t.Errorf("unexpected key: %s", key)
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event SaleEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.EventType != domain.SaleEventUpdated || event.SaleID != "sale-9" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Sale == nil || event.Sale.SKU == nil || *event.Sale.SKU != sku {
			t.Errorf("expected sale payload in event: %+v", event.Sale)
		}
		if !event.Timestamp.Equal(fixed) {
			t.Errorf("unexpected timestamp: %s", event.Timestamp)
		}
		return nil
	})

	publisher := NewSalePublisher(producer, "")
	err := publisher.PublishSaleEvent(context.Background(), domain.SaleEventUpdated, domain.Sale{ID: "sale-9", SKU: &sku})
	if err != nil {
		t.Fatalf("publish sale event: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSalePublisher_CustomTopic(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	publisher := NewSalePublisher(newProducer(mockProducer, testLogger()), "custom.topic")

	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "custom.topic" {
			t.Errorf("unexpected topic: %s", msg.Topic)
		}
		if string(msg.Headers[0].Value) != string(domain.SaleEventDeleted) {
			t.Errorf("unexpected event type header: %s", msg.Headers[0].Value)
		}
		return nil
	})

	if err := publisher.PublishSaleEvent(context.Background(), domain.SaleEventDeleted, domain.Sale{ID: "sale-1"}); err != nil {
		t.Fatalf("publish sale event: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewSaleEvent(t *testing.T) {
	at := time.Now()
	deleted := NewSaleEvent(domain.SaleEventDeleted, domain.Sale{ID: "sale-1"}, at)
	if deleted.Sale != nil {
		t.Fatal("deleted event must not carry a sale payload")
	}
	if deleted.SaleID != "sale-1" || !deleted.Timestamp.Equal(at) {
		t.Fatalf("unexpected event: %+v", deleted)
	}

	created := NewSaleEvent(domain.SaleEventCreated, domain.Sale{ID: "sale-2"}, at)
	if created.Sale == nil || created.Sale.ID != "sale-2" {
		t.Fatalf("created event must carry the sale: %+v", created)
	}
}
