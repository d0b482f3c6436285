package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

const opTimeout = 5 * time.Second

// SaleRepository хранит продажи в PostgreSQL.
//
// Каждая операция выполняется в собственной транзакции. Транзакция
// завершается через COMMIT в любом случае: после ошибки в запросе
// PostgreSQL сам откатывает прерванную транзакцию.
type SaleRepository struct {
	db *sql.DB
}

var _ domain.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository создаёт репозиторий продаж поверх открытого Store.
// Репозиторий разделяет пул подключений со Store.
func NewSaleRepository(store *Store) *SaleRepository {
	return &SaleRepository{db: store.DB()}
}

// Close закрывает пул подключений.
func (r *SaleRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// FindByID возвращает продажу по идентификатору.
func (r *SaleRepository) FindByID(ctx context.Context, id string) (sale domain.Sale, err error) {
	err = r.withTx(ctx, "find sale", func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, selectSaleByIDSQL, id)
		scanned, scanErr := scanSale(row)
		if errors.Is(scanErr, sql.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		if scanErr != nil {
			return repositoryError("scan sale", scanErr)
		}
		sale = scanned
		return nil
	})
	return sale, err
}

// Create вставляет продажу целиком.
func (r *SaleRepository) Create(ctx context.Context, sale domain.Sale) error {
	return r.withTx(ctx, "create sale", func(ctx context.Context, tx *sql.Tx) error {
		args := sale.Values()
		if sale.ID == "" {
			args[0] = nil
		}
		if _, err := tx.ExecContext(ctx, insertSaleSQL, args...); err != nil {
			return translateInsertError(err)
		}
		return nil
	})
}

// DeleteByID удаляет продажу. Ровно одна удалённая строка считается успехом.
func (r *SaleRepository) DeleteByID(ctx context.Context, id string) error {
	return r.withTx(ctx, "delete sale", func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, deleteSaleSQL, id)
		if err != nil {
			return repositoryError("delete sale", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return repositoryError("delete sale rows affected", err)
		}
		if affected != 1 {
			return domain.ErrRecordNotFound
		}
		return nil
	})
}

// Update применяет частичное обновление.
func (r *SaleRepository) Update(ctx context.Context, sale domain.Sale, fields []string) error {
	values, err := domain.ExtractUpdateValues(sale, fields)
	if err != nil {
		return err
	}

	return r.withTx(ctx, "update sale", func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, buildUpdateSQL(fields), values...); err != nil {
			return translateUpdateError(err)
		}
		return nil
	})
}

// Find возвращает страницу продаж относительно якоря.
func (r *SaleRepository) Find(ctx context.Context, anchorID string, limit int, after bool) (sales []domain.Sale, err error) {
	q, err := planFind(anchorID, limit, after)
	if err != nil {
		return nil, err
	}

	err = r.withTx(ctx, "find sales", func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, q.sql, q.args...)
		if err != nil {
			return repositoryError("query sales", err)
		}
		defer rows.Close()

		page := make([]domain.Sale, 0, limit)
		for rows.Next() {
			s, err := scanSale(rows)
			if err != nil {
				return repositoryError("scan sale", err)
			}
			page = append(page, s)
		}
		if err := rows.Err(); err != nil {
			return repositoryError("iterate sales", err)
		}
		sales = page
		return nil
	})
	return sales, err
}

// withTx открывает транзакцию с таймаутом операции и всегда завершает её.
// Ошибка COMMIT учитывается, только если сама операция прошла успешно.
func (r *SaleRepository) withTx(ctx context.Context, op string, fn func(context.Context, *sql.Tx) error) (err error) {
	if r == nil || r.db == nil {
		return repositoryError(op, errors.New("postgres repository is not initialized"))
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repositoryError(fmt.Sprintf("%s: begin tx", op), err)
	}
	defer func() {
		commitErr := tx.Commit()
		if err == nil && commitErr != nil {
			err = repositoryError(fmt.Sprintf("%s: commit tx", op), commitErr)
		}
	}()

	return fn(ctx, tx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(row rowScanner) (domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(
		&s.ID,
		&s.DateTime,
		&s.OrderID,
		&s.SKU,
		&s.Quantity,
		&s.Subtotal,
		&s.Fee,
		&s.Tax,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
