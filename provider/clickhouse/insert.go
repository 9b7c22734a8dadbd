package clickhouse

import (
	"sort"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/dialect/mysql"
)

const dialectName = "clickhouse"

func init() {
	// backtick identifier quoting, compatible with ClickHouse
	goqu.RegisterDialect(dialectName, mysql.DialectOptions())
}

// insertColumns returns the union of field names across records, sorted so the
// generated statement is deterministic
func insertColumns(records []Record) []string {
	seen := make(map[string]bool)
	cols := make([]string, 0)
	for _, record := range records {
		for name := range record {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// insertStatement builds the INSERT statement for a prepared batch, with one
// placeholder row
func insertStatement(table string, cols []string) (string, error) {
	colNames := make([]any, len(cols))
	placeholders := make([]any, len(cols))
	for i, col := range cols {
		colNames[i] = col
		// non-nil value so the prepared form emits one placeholder per column
		placeholders[i] = 0
	}
	stmt, _, err := goqu.Dialect(dialectName).
		Insert(table).
		Prepared(true).
		Cols(colNames...).
		Vals(placeholders).
		ToSQL()
	return stmt, err
}
