// Package dataset implements the in-memory table that the anonymization
// stages operate on, plus CSV load/write and numeric-column detection.
package dataset

import (
	"fmt"
)

// Table is an ordered collection of named columns aligned by row index.
// Rows are stored row-major to match the CSV wire shape; column access goes
// through the header index. All cells are strings — numeric interpretation
// is done by the callers that need it (see IsNumeric).
//
// Invariants: every row has exactly len(headers) cells and column names
// are unique. Both are enforced at construction.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// New builds a Table from a header row and data rows.
func New(headers []string, rows [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("table requires at least one column")
	}
	index := make(map[string]int, len(headers))
	for i, name := range headers {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i+1, len(row), len(headers))
		}
	}
	return &Table{headers: headers, index: index, rows: rows}, nil
}

// Headers returns a copy of the column names in order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// NumRows returns the number of data rows (excluding the header).
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.headers)
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column's values in row order.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, columnErr(name, fmt.Errorf("no such column"))
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Apply replaces every cell of the named column with fn(cell). The
// replacement is all-or-nothing: if fn fails on any cell, the column is
// left untouched and the error is returned.
func (t *Table) Apply(name string, fn func(string) (string, error)) error {
	i, ok := t.index[name]
	if !ok {
		return columnErr(name, fmt.Errorf("no such column"))
	}
	updated := make([]string, len(t.rows))
	for r, row := range t.rows {
		v, err := fn(row[i])
		if err != nil {
			return columnErr(name, fmt.Errorf("row %d: %w", r+1, err))
		}
		updated[r] = v
	}
	for r := range t.rows {
		t.rows[r][i] = updated[r]
	}
	return nil
}

// Records returns the table as CSV records: header row first, then data
// rows. The returned slices alias the table's storage.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, t.headers)
	out = append(out, t.rows...)
	return out
}
