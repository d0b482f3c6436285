package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// saleRepositoryInMemory — in-memory реализация SaleRepository.
// Ограничения NOT NULL и PRIMARY KEY таблицы sale эмулируются вручную.
type saleRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.Sale
	closed bool
}

// NewSaleRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewSaleRepository() domain.SaleRepository {
	return &saleRepositoryInMemory{
		items: make(map[string]domain.Sale),
	}
}

func (r *saleRepositoryInMemory) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.items = nil
	return nil
}

// FindByID возвращает копию продажи или ErrRecordNotFound.
func (r *saleRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkOpen(); err != nil {
		return domain.Sale{}, err
	}

	sale, ok := r.items[id]
	if !ok {
		return domain.Sale{}, domain.ErrRecordNotFound
	}
	return cloneSale(sale), nil
}

// Create сохраняет продажу, если все поля заполнены и id ещё не занят.
func (r *saleRepositoryInMemory) Create(_ context.Context, sale domain.Sale) error {
	if field := sale.FirstNullField(); field != "" {
		return &domain.RecordFieldNullError{Field: field}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return err
	}
	if _, exists := r.items[sale.ID]; exists {
		return &domain.RecordFieldDuplicateError{Field: domain.FieldID}
	}

	r.items[sale.ID] = cloneSale(sale)
	return nil
}

func (r *saleRepositoryInMemory) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return err
	}
	if _, ok := r.items[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

// Update применяет частичное обновление. Для отсутствующего id ничего не делает,
// как UPDATE без совпавших строк.
func (r *saleRepositoryInMemory) Update(_ context.Context, sale domain.Sale, fields []string) error {
	if _, err := domain.ExtractUpdateValues(sale, fields); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOpen(); err != nil {
		return err
	}

	current, ok := r.items[sale.ID]
	if !ok {
		return nil
	}

	current.Apply(sale, fields)
	if field := current.FirstNullField(); field != "" {
		return &domain.RecordFieldNullError{Field: field}
	}

	r.items[sale.ID] = cloneSale(current)
	return nil
}

func (r *saleRepositoryInMemory) Find(_ context.Context, anchorID string, limit int, after bool) ([]domain.Sale, error) {
	if err := domain.ValidateLimit(limit); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	all := make([]domain.Sale, 0, len(r.items))
	for _, sale := range r.items {
		all = append(all, cloneSale(sale))
	}
	return domain.PageAround(all, anchorID, limit, after)
}

func (r *saleRepositoryInMemory) checkOpen() error {
	if r.closed {
		return fmt.Errorf("%w: memory repository is closed", domain.ErrRepository)
	}
	return nil
}

func cloneSale(s domain.Sale) domain.Sale {
	return domain.Sale{
		ID:        s.ID,
		DateTime:  clonePtr(s.DateTime),
		OrderID:   clonePtr(s.OrderID),
		SKU:       clonePtr(s.SKU),
		Quantity:  clonePtr(s.Quantity),
		Subtotal:  clonePtr(s.Subtotal),
		Fee:       clonePtr(s.Fee),
		Tax:       clonePtr(s.Tax),
		CreatedAt: clonePtr(s.CreatedAt),
		UpdatedAt: clonePtr(s.UpdatedAt),
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

var _ domain.SaleRepository = (*saleRepositoryInMemory)(nil)
