package domain

import "time"

// Имена колонок таблицы sale. Порядок совпадает с порядком колонок в таблице
// и используется при вставке, выборке и эмуляции NOT NULL в embedded-хранилищах.
const (
	FieldID        = "id"
	FieldDateTime  = "date_time"
	FieldOrderID   = "order_id"
	FieldSKU       = "sku"
	FieldQuantity  = "quantity"
	FieldSubtotal  = "subtotal"
	FieldFee       = "fee"
	FieldTax       = "tax"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// SaleFields возвращает все колонки продажи в табличном порядке.
func SaleFields() []string {
	return []string{
		FieldID, FieldDateTime, FieldOrderID, FieldSKU, FieldQuantity,
		FieldSubtotal, FieldFee, FieldTax, FieldCreatedAt, FieldUpdatedAt,
	}
}

// Sale описывает одну запись о продаже.
//
// Все поля, кроме ID, хранятся как указатели: отсутствующее значение доходит до хранилища
// как NULL и отклоняется ограничением NOT NULL. Пустой ID означает, что
// идентификатор ещё не назначен.
type Sale struct {
	// ID назначается сервисом один раз при создании и больше не меняется.
	ID string `json:"id"`
	// DateTime — момент бизнес-события продажи.
	DateTime *time.Time `json:"date_time"`
	OrderID  *string    `json:"order_id"`
	SKU      *string    `json:"sku"`
	Quantity *int64     `json:"quantity"`
	// Subtotal, Fee и Tax хранятся в минимальных денежных единицах.
	Subtotal *int64 `json:"subtotal"`
	Fee      *int64 `json:"fee"`
	Tax      *int64 `json:"tax"`
	// CreatedAt задаёт порядок выдачи при постраничной навигации.
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Value возвращает значение атрибута по имени колонки.
// Второй результат false, если такой колонки нет.
func (s Sale) Value(field string) (any, bool) {
	switch field {
	case FieldID:
		return s.ID, true
	case FieldDateTime:
		return s.DateTime, true
	case FieldOrderID:
		return s.OrderID, true
	case FieldSKU:
		return s.SKU, true
	case FieldQuantity:
		return s.Quantity, true
	case FieldSubtotal:
		return s.Subtotal, true
	case FieldFee:
		return s.Fee, true
	case FieldTax:
		return s.Tax, true
	case FieldCreatedAt:
		return s.CreatedAt, true
	case FieldUpdatedAt:
		return s.UpdatedAt, true
	default:
		return nil, false
	}
}

// Values возвращает значения всех колонок в табличном порядке.
func (s Sale) Values() []any {
	fields := SaleFields()
	values := make([]any, 0, len(fields))
	for _, f := range fields {
		v, _ := s.Value(f)
		values = append(values, v)
	}
	return values
}

// FirstNullField возвращает первую колонку без значения в табличном порядке.
// Пустая строка означает, что все колонки заполнены.
func (s Sale) FirstNullField() string {
	if s.ID == "" {
		return FieldID
	}
	switch {
	case s.DateTime == nil:
		return FieldDateTime
	case s.OrderID == nil:
		return FieldOrderID
	case s.SKU == nil:
		return FieldSKU
	case s.Quantity == nil:
		return FieldQuantity
	case s.Subtotal == nil:
		return FieldSubtotal
	case s.Fee == nil:
		return FieldFee
	case s.Tax == nil:
		return FieldTax
	case s.CreatedAt == nil:
		return FieldCreatedAt
	case s.UpdatedAt == nil:
		return FieldUpdatedAt
	default:
		return ""
	}
}

// Apply переносит в s значения перечисленных колонок из src.
// Неизвестные имена и "id" пропускаются: их отсекает ExtractUpdateValues.
func (s *Sale) Apply(src Sale, fields []string) {
	for _, f := range fields {
		switch f {
		case FieldDateTime:
			s.DateTime = src.DateTime
		case FieldOrderID:
			s.OrderID = src.OrderID
		case FieldSKU:
			s.SKU = src.SKU
		case FieldQuantity:
			s.Quantity = src.Quantity
		case FieldSubtotal:
			s.Subtotal = src.Subtotal
		case FieldFee:
			s.Fee = src.Fee
		case FieldTax:
			s.Tax = src.Tax
		case FieldCreatedAt:
			s.CreatedAt = src.CreatedAt
		case FieldUpdatedAt:
			s.UpdatedAt = src.UpdatedAt
		}
	}
}
