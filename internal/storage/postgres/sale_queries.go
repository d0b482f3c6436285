package postgres

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

const saleTable = "sale"

var (
	saleColumns = strings.Join(domain.SaleFields(), ", ")

	selectSaleByIDSQL = fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1", saleColumns, saleTable)
	insertSaleSQL     = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", saleTable, saleColumns, placeholders(1, len(domain.SaleFields())))
	deleteSaleSQL     = fmt.Sprintf("DELETE FROM %s WHERE id = $1", saleTable)

	// $1: id якоря, $2: limit. Якорь ищется подзапросом в том же запросе:
	// если его нет, сравнение с NULL отбрасывает все строки.
	findAfterSQL = fmt.Sprintf(
		"SELECT %[1]s FROM %[2]s WHERE created_at <= (SELECT created_at FROM %[2]s WHERE id = $1) "+
			"AND id <> $1 ORDER BY created_at DESC LIMIT $2",
		saleColumns, saleTable,
	)
	// Ближайшие limit строк вперёд по времени отбираются по возрастанию,
	// а внешний запрос возвращает их от новых к старым.
	findBeforeSQL = fmt.Sprintf(
		"SELECT * FROM (SELECT %[1]s FROM %[2]s WHERE created_at >= (SELECT created_at FROM %[2]s WHERE id = $1) "+
			"AND id <> $1 ORDER BY created_at ASC LIMIT $2) AS filtered_sales ORDER BY created_at DESC",
		saleColumns, saleTable,
	)
)

// findQuery — подготовленная форма запроса постраничной выборки.
type findQuery struct {
	sql  string
	args []any
}

// planFind строит запрос выборки по курсору.
func planFind(anchorID string, limit int, after bool) (findQuery, error) {
	if err := domain.ValidateLimit(limit); err != nil {
		return findQuery{}, err
	}

	query := findAfterSQL
	if !after {
		query = findBeforeSQL
	}

	return findQuery{sql: query, args: []any{anchorID, limit}}, nil
}

// buildUpdateSQL строит UPDATE для уже проверенного списка полей.
// Поля идут в порядке вызывающего, id передаётся последним параметром.
func buildUpdateSQL(fields []string) string {
	assignments := make([]string, 0, len(fields))
	for i, f := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f, i+1))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", saleTable, strings.Join(assignments, ", "), len(fields)+1)
}

func placeholders(from, count int) string {
	items := make([]string, 0, count)
	for i := from; i < from+count; i++ {
		items = append(items, fmt.Sprintf("$%d", i))
	}
	return strings.Join(items, ", ")
}
