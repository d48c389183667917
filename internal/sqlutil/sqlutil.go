// Package sqlutil holds small database/sql helpers for the SQLite catalog.
package sqlutil

import (
	"database/sql"
	"strings"
)

// QuoteIdent quotes a table or column name for SQLite.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// TextColumn selects a column as SQLite renders it in text, keeping its
// name. REAL and INTEGER values read this way keep their stored spelling
// (1.0 stays "1.0").
func TextColumn(name string) string {
	q := QuoteIdent(name)
	return "CAST(" + q + " AS TEXT) AS " + q
}

// Placeholders returns n comma-separated "?" markers for a VALUES list.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ScanRows scans all rows into a slice using the provided scanner and
// closes rows.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// NullableStrings scans every column of the current row as text. NULL and
// empty cells come back as nil.
func NullableStrings(rows *sql.Rows, width int) ([]*string, error) {
	cells := make([]sql.NullString, width)
	dest := make([]any, width)
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	row := make([]*string, width)
	for i, c := range cells {
		if c.Valid && c.String != "" {
			v := c.String
			row[i] = &v
		}
	}
	return row, nil
}
