package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one result row that marshals as a JSON object with its keys in
// select-list order.
type Row struct {
	Columns []string
	Values  []any
}

func (r Row) MarshalJSON() ([]byte, error) {
	if len(r.Columns) != len(r.Values) {
		return nil, fmt.Errorf("row has %d columns but %d values", len(r.Columns), len(r.Values))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewRows pairs every value row with the shared column list.
func NewRows(columns []string, values [][]any) []Row {
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, Row{Columns: columns, Values: v})
	}
	return rows
}
