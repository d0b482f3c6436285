// Package boltdb хранит продажи во встраиваемой базе BoltDB.
//
// Все данные лежат в одном файле, внешний процесс базы не нужен. Продажи
// сериализуются в JSON и хранятся в бакете sale под ключом id.
package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

const (
	bucketName  = "sale"
	openTimeout = time.Second
	fileMode    = os.FileMode(0o600)
)

// SaleRepository — реализация domain.SaleRepository поверх BoltDB.
type SaleRepository struct {
	db *bolt.DB
}

var _ domain.SaleRepository = (*SaleRepository)(nil)

// Open открывает (или создаёт) файл базы и гарантирует наличие бакета.
func Open(path string) (*SaleRepository, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %q: %w", bucketName, err)
	}

	return &SaleRepository{db: db}, nil
}

// Close снимает блокировку с файла базы.
func (r *SaleRepository) Close() error {
	return r.db.Close()
}

func (r *SaleRepository) FindByID(_ context.Context, id string) (domain.Sale, error) {
	var sale domain.Sale

	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(id))
		if v == nil {
			return domain.ErrRecordNotFound
		}
		return decodeSale(v, &sale)
	})
	if err != nil {
		return domain.Sale{}, wrap("find sale", err)
	}
	return sale, nil
}

// Create сохраняет продажу. Пустые поля и занятый id отклоняются так же,
// как ограничения таблицы в PostgreSQL.
func (r *SaleRepository) Create(_ context.Context, sale domain.Sale) error {
	if field := sale.FirstNullField(); field != "" {
		return &domain.RecordFieldNullError{Field: field}
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b.Get([]byte(sale.ID)) != nil {
			return &domain.RecordFieldDuplicateError{Field: domain.FieldID}
		}
		return putSale(b, sale)
	})
	return wrap("create sale", err)
}

func (r *SaleRepository) DeleteByID(_ context.Context, id string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b.Get([]byte(id)) == nil {
			return domain.ErrRecordNotFound
		}
		return b.Delete([]byte(id))
	})
	return wrap("delete sale", err)
}

// Update применяет частичное обновление. Отсутствующий id не считается ошибкой.
func (r *SaleRepository) Update(_ context.Context, sale domain.Sale, fields []string) error {
	if _, err := domain.ExtractUpdateValues(sale, fields); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		v := b.Get([]byte(sale.ID))
		if v == nil {
			return nil
		}

		var current domain.Sale
		if err := decodeSale(v, &current); err != nil {
			return err
		}
		current.Apply(sale, fields)
		if field := current.FirstNullField(); field != "" {
			return &domain.RecordFieldNullError{Field: field}
		}
		return putSale(b, current)
	})
	return wrap("update sale", err)
}

func (r *SaleRepository) Find(_ context.Context, anchorID string, limit int, after bool) ([]domain.Sale, error) {
	if err := domain.ValidateLimit(limit); err != nil {
		return nil, err
	}

	var all []domain.Sale
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var s domain.Sale
			if err := decodeSale(v, &s); err != nil {
				return err
			}
			all = append(all, s)
			return nil
		})
	})
	if err != nil {
		return nil, wrap("find sales", err)
	}

	return domain.PageAround(all, anchorID, limit, after)
}

func putSale(b *bolt.Bucket, sale domain.Sale) error {
	data, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("encode sale: %w", err)
	}
	return b.Put([]byte(sale.ID), data)
}

func decodeSale(data []byte, sale *domain.Sale) error {
	if err := json.Unmarshal(data, sale); err != nil {
		return fmt.Errorf("decode sale: %w", err)
	}
	return nil
}

// wrap оставляет ошибки репозитория как есть, остальные помечает ErrRepository.
func wrap(op string, err error) error {
	if err == nil || errors.Is(err, domain.ErrRepository) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrRepository, op, err)
}
