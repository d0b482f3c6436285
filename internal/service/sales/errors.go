package sales

import (
	"errors"
	"fmt"
)

// Ошибки сервисного уровня. Ошибки репозитория наружу не выходят:
// сервис переводит их в один из этих видов, а причину пишет в лог.
var (
	// ErrService — обобщённая ошибка сервиса. Остальные ошибки сервиса
	// сопоставляются с ней через errors.Is.
	ErrService = errors.New("service error")
	// ErrResourceNotFound — продажа с указанным id не найдена.
	ErrResourceNotFound = fmt.Errorf("%w: resource not found", ErrService)
	// ErrInvalidArgs — некорректные аргументы: список полей обновления или размер страницы.
	ErrInvalidArgs = fmt.Errorf("%w: invalid arguments", ErrService)
)

// ResourceFieldNullError — обязательное поле Field не заполнено.
type ResourceFieldNullError struct {
	Field string
}

func (e *ResourceFieldNullError) Error() string {
	return fmt.Sprintf("resource field %q cannot be null", e.Field)
}

func (e *ResourceFieldNullError) Is(target error) bool {
	return target == ErrService
}
