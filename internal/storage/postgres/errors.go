package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

const (
	pgCodeNotNullViolation = "23502"
	pgCodeUniqueViolation  = "23505"

	primaryKeySuffix = "pkey"
)

func repositoryError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrRepository, op, err)
}

func asPgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// translateInsertError переводит ошибку INSERT в ошибку репозитория.
func translateInsertError(err error) error {
	if pgErr, ok := asPgError(err, pgCodeNotNullViolation); ok {
		return &domain.RecordFieldNullError{Field: pgErr.ColumnName}
	}
	if pgErr, ok := asPgError(err, pgCodeUniqueViolation); ok {
		field, ferr := fieldFromConstraint(pgErr.ConstraintName)
		if ferr != nil {
			return repositoryError("insert sale", ferr)
		}
		return &domain.RecordFieldDuplicateError{Field: field}
	}
	return repositoryError("insert sale", err)
}

// translateUpdateError переводит ошибку UPDATE в ошибку репозитория.
func translateUpdateError(err error) error {
	if pgErr, ok := asPgError(err, pgCodeNotNullViolation); ok {
		return &domain.RecordFieldNullError{Field: pgErr.ColumnName}
	}
	return repositoryError("update sale", err)
}

// fieldFromConstraint сопоставляет имя ограничения уникальности с полем.
// Уникален только первичный ключ (sale_pkey).
func fieldFromConstraint(constraint string) (string, error) {
	if strings.HasSuffix(constraint, primaryKeySuffix) {
		return domain.FieldID, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrMalformedConstraint, constraint)
}
