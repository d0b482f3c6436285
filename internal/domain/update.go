package domain

// ExtractUpdateValues проверяет список полей частичного обновления и
// возвращает значения этих полей в переданном порядке, добавляя id последним.
// Порядок значений совпадает с порядком позиционных параметров в
// UPDATE ... SET f1 = $1, ..., fn = $n WHERE id = $n+1.
func ExtractUpdateValues(sale Sale, fields []string) ([]any, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyFields
	}
	if sale.ID == "" {
		return nil, ErrNullIdentity
	}
	for _, f := range fields {
		if f == FieldID {
			return nil, ErrImmutableField
		}
	}

	values := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		v, ok := sale.Value(f)
		if !ok {
			return nil, &UnknownFieldError{Field: f}
		}
		values = append(values, v)
	}
	values = append(values, sale.ID)

	return values, nil
}
