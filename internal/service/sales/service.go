// Package sales реализует операции над продажами поверх SaleRepository.
package sales

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

const (
	opFindByID   = "find_by_id"
	opCreate     = "create"
	opDeleteByID = "delete_by_id"
	opUpdate     = "update"
	opFind       = "find"
)

// Service назначает идентификаторы и временные метки новым продажам
// и переводит ошибки репозитория в ошибки сервиса.
type Service struct {
	repo      domain.SaleRepository
	logger    *log.Entry
	now       func() time.Time
	newID     func() string
	publisher EventPublisher
	observer  Observer
}

// NewService конструирует сервис с зависимостями.
func NewService(repo domain.SaleRepository, logger *log.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "sales-service")
	}
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    systemNow,
		newID:  newSaleID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByID возвращает продажу по идентификатору.
func (s *Service) FindByID(ctx context.Context, id string) (sale domain.Sale, err error) {
	defer s.observe(opFindByID, time.Now(), &err)

	sale, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Sale{}, s.translate(opFindByID, err, log.Fields{"sale_id": id}, kindNotFound)
	}
	return sale, nil
}

// Create сохраняет копию продажи с новым id и временными метками.
// Значения этих трёх полей от вызывающего игнорируются.
func (s *Service) Create(ctx context.Context, sale domain.Sale) (created domain.Sale, err error) {
	defer s.observe(opCreate, time.Now(), &err)

	created = sale
	now := s.now()
	created.ID = s.newID()
	created.CreatedAt = &now
	created.UpdatedAt = &now

	if err := s.repo.Create(ctx, created); err != nil {
		return domain.Sale{}, s.translate(opCreate, err, log.Fields{"sale_id": created.ID}, kindFieldNull)
	}

	s.publish(ctx, domain.SaleEventCreated, created)
	return created, nil
}

// DeleteByID удаляет продажу.
func (s *Service) DeleteByID(ctx context.Context, id string) (err error) {
	defer s.observe(opDeleteByID, time.Now(), &err)

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.translate(opDeleteByID, err, log.Fields{"sale_id": id}, kindNotFound)
	}

	s.publish(ctx, domain.SaleEventDeleted, domain.Sale{ID: id})
	return nil
}

// Update меняет перечисленные поля продажи. Причина ошибки валидации
// полей вызывающему не сообщается: все они сводятся к ErrInvalidArgs.
// В событие sale.updated попадают только id и перечисленные поля.
func (s *Service) Update(ctx context.Context, sale domain.Sale, fields []string) (err error) {
	defer s.observe(opUpdate, time.Now(), &err)

	if err := s.repo.Update(ctx, sale, fields); err != nil {
		return s.translate(opUpdate, err, log.Fields{"sale_id": sale.ID, "fields": fields},
			kindNotFound, kindFieldNull, kindInvalidUpdate)
	}

	changed := domain.Sale{ID: sale.ID}
	changed.Apply(sale, fields)
	s.publish(ctx, domain.SaleEventUpdated, changed)
	return nil
}

// Find возвращает страницу продаж относительно якоря id.
func (s *Service) Find(ctx context.Context, id string, limit int, after bool) (sales []domain.Sale, err error) {
	defer s.observe(opFind, time.Now(), &err)

	sales, err = s.repo.Find(ctx, id, limit, after)
	if err != nil {
		return nil, s.translate(opFind, err, log.Fields{"anchor_id": id, "limit": limit, "after": after}, kindInvalidLimit)
	}
	return sales, nil
}

// errorKind — вид ошибки репозитория, который операция переводит
// в конкретную ошибку сервиса.
type errorKind int

const (
	kindNotFound errorKind = iota
	kindFieldNull
	kindInvalidUpdate
	kindInvalidLimit
)

// translate переводит ошибку нижнего уровня в ошибку сервиса. Распознаются
// только виды из known, всё остальное становится ErrService.
func (s *Service) translate(op string, err error, fields log.Fields, known ...errorKind) error {
	result := error(ErrService)
	for _, kind := range known {
		if mapped := mapErrorKind(kind, err); mapped != nil {
			result = mapped
			break
		}
	}

	entry := s.logger.WithFields(fields).WithField("operation", op).WithError(err)
	if result == ErrService {
		entry.Error("sale operation failed")
	} else {
		entry.Debug("sale operation rejected")
	}
	return result
}

func mapErrorKind(kind errorKind, err error) error {
	var nullErr *domain.RecordFieldNullError
	switch {
	case kind == kindNotFound && errors.Is(err, domain.ErrRecordNotFound):
		return ErrResourceNotFound
	case kind == kindFieldNull && errors.As(err, &nullErr):
		return &ResourceFieldNullError{Field: nullErr.Field}
	case kind == kindInvalidUpdate && errors.Is(err, domain.ErrInvalidUpdate):
		return ErrInvalidArgs
	case kind == kindInvalidLimit && errors.Is(err, domain.ErrInvalidLimit):
		return ErrInvalidArgs
	default:
		return nil
	}
}

func (s *Service) publish(ctx context.Context, eventType domain.SaleEventType, sale domain.Sale) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSaleEvent(ctx, eventType, sale); err != nil {
		s.logger.WithError(err).
			WithField("event_type", eventType).
			WithField("sale_id", sale.ID).
			Warn("failed to publish sale event")
	}
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(op, outcomeOf(*errp), time.Since(start))
}

func outcomeOf(err error) string {
	var nullErr *ResourceFieldNullError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrResourceNotFound):
		return OutcomeNotFound
	case errors.As(err, &nullErr):
		return OutcomeFieldNull
	case errors.Is(err, ErrInvalidArgs):
		return OutcomeInvalidArgs
	default:
		return OutcomeError
	}
}
