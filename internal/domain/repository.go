package domain

import "context"

// SaleRepository описывает требования к хранилищу продаж.
type SaleRepository interface {
	// Close освобождает подключение к хранилищу. Повторный вызов не поддерживается.
	Close() error
	// FindByID возвращает продажу или ErrRecordNotFound, если её нет.
	FindByID(ctx context.Context, id string) (Sale, error)
	// Create сохраняет все десять полей. Нарушения ограничений возвращаются как
	// *RecordFieldNullError и *RecordFieldDuplicateError.
	Create(ctx context.Context, sale Sale) error
	// DeleteByID удаляет продажу. ErrRecordNotFound, если удалено не ровно одна запись.
	DeleteByID(ctx context.Context, id string) error
	// Update меняет перечисленные поля. Ошибки валидации полей (ErrInvalidUpdate)
	// возвращаются без изменений. Отсутствие записи не обнаруживается.
	Update(ctx context.Context, sale Sale, fields []string) error
	// Find возвращает страницу продаж относительно якоря anchorID,
	// всегда упорядоченную по created_at от новых к старым.
	Find(ctx context.Context, anchorID string, limit int, after bool) ([]Sale, error)
}
