package domain

import (
	"sort"
	"time"
)

const (
	// MinPageLimit и MaxPageLimit ограничивают размер страницы при выборке по курсору.
	MinPageLimit = 1
	MaxPageLimit = 100
	// DefaultPageLimit используется, когда клиент не указал размер страницы.
	DefaultPageLimit = 10
)

// ValidateLimit проверяет размер страницы.
func ValidateLimit(limit int) error {
	if limit < MinPageLimit || limit > MaxPageLimit {
		return ErrInvalidLimit
	}
	return nil
}

// PageAround выбирает страницу относительно якорной записи anchorID так же,
// как это делает SQL-реализация:
//   - after=true: до limit записей с created_at <= created_at якоря, от новых к старым;
//   - after=false: ближайшие limit записей с created_at >= created_at якоря,
//     отобранные по возрастанию и затем развёрнутые от новых к старым.
//
// Сам якорь в выдачу не попадает. Если якоря нет, результат пустой.
// Записи без CreatedAt не участвуют в выдаче.
func PageAround(records []Sale, anchorID string, limit int, after bool) ([]Sale, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}

	var anchorAt *time.Time
	for _, r := range records {
		if r.ID == anchorID {
			anchorAt = r.CreatedAt
			break
		}
	}
	if anchorAt == nil {
		return []Sale{}, nil
	}

	candidates := make([]Sale, 0, len(records))
	for _, r := range records {
		if r.ID == anchorID || r.CreatedAt == nil {
			continue
		}
		if after && !r.CreatedAt.After(*anchorAt) {
			candidates = append(candidates, r)
		}
		if !after && !r.CreatedAt.Before(*anchorAt) {
			candidates = append(candidates, r)
		}
	}

	if after {
		sortByCreatedAt(candidates, true)
		return truncate(candidates, limit), nil
	}

	sortByCreatedAt(candidates, false)
	page := truncate(candidates, limit)
	sortByCreatedAt(page, true)
	return page, nil
}

func sortByCreatedAt(records []Sale, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return records[i].CreatedAt.After(*records[j].CreatedAt)
		}
		return records[i].CreatedAt.Before(*records[j].CreatedAt)
	})
}

func truncate(records []Sale, limit int) []Sale {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
