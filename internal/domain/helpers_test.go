package domain

import "time"

func ptr[T any](v T) *T {
	return &v
}

// newTestSale создаёт полностью заполненную продажу для тестов.
func newTestSale(id string, createdAt time.Time) Sale {
	return Sale{
		ID:        id,
		DateTime:  ptr(createdAt.Add(-time.Hour)),
		OrderID:   ptr("FFX"),
		SKU:       ptr("ff-11-22"),
		Quantity:  ptr(int64(32)),
		Subtotal:  ptr(int64(50000)),
		Fee:       ptr(int64(1200)),
		Tax:       ptr(int64(1555)),
		CreatedAt: ptr(createdAt),
		UpdatedAt: ptr(createdAt),
	}
}
