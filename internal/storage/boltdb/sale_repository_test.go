package boltdb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func newSale(id string, createdAt time.Time) domain.Sale {
	return domain.Sale{
		ID:        id,
		DateTime:  ptr(createdAt),
		OrderID:   ptr("order-1"),
		SKU:       ptr("sku-1"),
		Quantity:  ptr(int64(3)),
		Subtotal:  ptr(int64(300)),
		Fee:       ptr(int64(5)),
		Tax:       ptr(int64(24)),
		CreatedAt: ptr(createdAt),
		UpdatedAt: ptr(createdAt),
	}
}

func openTestRepository(t *testing.T) *SaleRepository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "sales.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaleRepository_CRUD(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()
	sale := newSale("sale-1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Create(ctx, sale))

	got, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, sale.ID, got.ID)
	require.Equal(t, *sale.OrderID, *got.OrderID)
	require.True(t, got.CreatedAt.Equal(*sale.CreatedAt))

	patch := domain.Sale{ID: sale.ID, Subtotal: ptr(int64(900))}
	require.NoError(t, repo.Update(ctx, patch, []string{domain.FieldSubtotal}))

	got, err = repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, int64(900), *got.Subtotal)
	require.Equal(t, *sale.Tax, *got.Tax)

	require.NoError(t, repo.DeleteByID(ctx, sale.ID))
	_, err = repo.FindByID(ctx, sale.ID)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	require.ErrorIs(t, repo.DeleteByID(ctx, sale.ID), domain.ErrRecordNotFound)
}

func TestSaleRepository_Constraints(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()
	sale := newSale("sale-1", time.Now().UTC())

	require.NoError(t, repo.Create(ctx, sale))

	var dupErr *domain.RecordFieldDuplicateError
	require.ErrorAs(t, repo.Create(ctx, sale), &dupErr)
	require.Equal(t, domain.FieldID, dupErr.Field)

	noOrder := newSale("sale-2", time.Now().UTC())
	noOrder.OrderID = nil
	var nullErr *domain.RecordFieldNullError
	require.ErrorAs(t, repo.Create(ctx, noOrder), &nullErr)
	require.Equal(t, domain.FieldOrderID, nullErr.Field)

	err := repo.Update(ctx, domain.Sale{ID: sale.ID}, []string{domain.FieldSKU})
	require.ErrorAs(t, err, &nullErr)
	require.Equal(t, domain.FieldSKU, nullErr.Field)

	got, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Equal(t, *sale.SKU, *got.SKU)

	require.NoError(t, repo.Update(ctx, domain.Sale{ID: "missing", SKU: ptr("x")}, []string{domain.FieldSKU}))
	require.ErrorIs(t, repo.Update(ctx, domain.Sale{ID: sale.ID}, []string{domain.FieldID}), domain.ErrImmutableField)
}

func TestSaleRepository_FindAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.db")
	repo, err := Open(path)
	require.NoError(t, err)

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(ctx, newSale(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	page, err := repo.Find(ctx, "s1", 10, false)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "s3", page[0].ID)
	require.Equal(t, "s2", page[1].ID)

	page, err = repo.Find(ctx, "s1", 10, true)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "s0", page[0].ID)

	_, err = repo.Find(ctx, "s1", 0, true)
	require.ErrorIs(t, err, domain.ErrInvalidLimit)
}
