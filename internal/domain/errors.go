package domain

import (
	"errors"
	"fmt"
)

// Ошибки уровня репозитория.
var (
	// ErrRepository — обобщённая ошибка хранилища. Все ошибки репозитория,
	// кроме ошибок валидации аргументов, сопоставляются с ней через errors.Is.
	ErrRepository = errors.New("repository error")
	// ErrRecordNotFound возвращается, если запись с указанным id отсутствует.
	ErrRecordNotFound = fmt.Errorf("%w: record not found", ErrRepository)
)

// Ошибки валидации аргументов. Репозиторий возвращает их без изменений,
// переводом в ошибки сервиса занимается сервисный слой.
var (
	// ErrInvalidUpdate объединяет все ошибки проверки частичного обновления.
	ErrInvalidUpdate = errors.New("invalid update")
	// ErrEmptyFields — пустой список полей для обновления.
	ErrEmptyFields = fmt.Errorf("%w: fields cannot be empty", ErrInvalidUpdate)
	// ErrNullIdentity — у обновляемой записи не задан id.
	ErrNullIdentity = fmt.Errorf("%w: id cannot be empty", ErrInvalidUpdate)
	// ErrImmutableField — попытка изменить id.
	ErrImmutableField = fmt.Errorf("%w: id cannot be changed", ErrInvalidUpdate)
	// ErrUnknownField — в списке полей есть имя, которого нет у записи.
	ErrUnknownField = fmt.Errorf("%w: unknown field", ErrInvalidUpdate)

	// ErrInvalidLimit — размер страницы вне диапазона [MinPageLimit, MaxPageLimit].
	ErrInvalidLimit = fmt.Errorf("limit must be between %d and %d inclusive", MinPageLimit, MaxPageLimit)
	// ErrMalformedConstraint — имя ограничения уникальности не удалось сопоставить с полем.
	ErrMalformedConstraint = errors.New("malformed constraint name")
)

// UnknownFieldError сообщает, какое именно поле не распознано.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%q not valid field", e.Field)
}

// Is позволяет сопоставлять ошибку с ErrUnknownField и ErrInvalidUpdate.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField || target == ErrInvalidUpdate
}

// RecordFieldNullError — нарушено ограничение NOT NULL для колонки Field.
type RecordFieldNullError struct {
	Field string
}

func (e *RecordFieldNullError) Error() string {
	return fmt.Sprintf("record field %q cannot be null", e.Field)
}

func (e *RecordFieldNullError) Is(target error) bool {
	return target == ErrRepository
}

// RecordFieldDuplicateError — нарушено ограничение уникальности для поля Field.
type RecordFieldDuplicateError struct {
	Field string
}

func (e *RecordFieldDuplicateError) Error() string {
	return fmt.Sprintf("record field %q cannot be duplicated", e.Field)
}

func (e *RecordFieldDuplicateError) Is(target error) bool {
	return target == ErrRepository
}
