package sales

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// Исходы операций для Observer.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeFieldNull   = "field_null"
	OutcomeInvalidArgs = "invalid_args"
	OutcomeError       = "error"
)

// EventPublisher доставляет события об изменении продаж во внешние системы.
type EventPublisher interface {
	PublishSaleEvent(ctx context.Context, eventType domain.SaleEventType, sale domain.Sale) error
}

// Observer получает итог каждой операции сервиса.
type Observer interface {
	ObserveOperation(operation, outcome string, duration time.Duration)
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithEventPublisher включает публикацию событий.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithObserver включает учёт операций.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// systemNow обрезает время до микросекунд: с такой точностью его хранит PostgreSQL.
func systemNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// newSaleID возвращает UUID v4 в виде 32 шестнадцатеричных символов без дефисов.
func newSaleID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
