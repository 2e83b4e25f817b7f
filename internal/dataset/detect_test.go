package dataset

import (
	"reflect"
	"testing"
)

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   bool
	}{
		{"integers", []string{"1", "2", "3"}, true},
		{"floats", []string{"1.5", "-2.25", "0"}, true},
		{"scientific notation", []string{"1e3", "2.5e-2"}, true},
		{"surrounding whitespace", []string{" 1 ", "2"}, true},
		{"mixed", []string{"1", "two"}, false},
		{"text", []string{"Alice", "Bob"}, false},
		{"empty cell", []string{"1", ""}, false},
		{"no rows", nil, false},
		{"sha256 digest", []string{"2bd806c97f0e00af1a1fc3328fa763a9269723c8db8fac4f93af71db186d6e90"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNumeric(tc.values); got != tc.want {
				t.Errorf("IsNumeric(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestNumericColumns(t *testing.T) {
	tbl := mustTable(t, []string{"id", "name", "age"}, [][]string{
		{"1", "Alice", "30"},
		{"2", "Bob", "25"},
	})

	got := tbl.NumericColumns()
	if !reflect.DeepEqual(got, []string{"id", "age"}) {
		t.Fatalf("NumericColumns = %v, want [id age]", got)
	}
}
