package clickhouse

import "reflect"

// Record one row of data, an unordered field name → value mapping
type Record map[string]any

// decodeRows drains a cursor into records, preserving server row order; the
// cursor is always closed
func decodeRows(rows Rows) ([]Record, error) {
	defer rows.Close()

	columnTypes := rows.ColumnTypes()
	result := make([]Record, 0)
	for rows.Next() {
		scanVars := make([]any, len(columnTypes))
		for i, ct := range columnTypes {
			if ct.ScanType == nil {
				scanVars[i] = new(any)
				continue
			}
			scanVars[i] = reflect.New(ct.ScanType).Interface()
		}
		if err := rows.Scan(scanVars...); err != nil {
			return nil, err
		}
		record := make(Record, len(columnTypes))
		for i, ct := range columnTypes {
			record[ct.Name] = reflect.ValueOf(scanVars[i]).Elem().Interface()
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
