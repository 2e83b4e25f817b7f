package dataset

import (
	"strconv"
	"strings"
)

// IsNumeric reports whether every value parses as a real number. An empty
// column is not numeric: there is nothing to perturb and treating it as
// numeric would misreport the schema.
func IsNumeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return false
		}
	}
	return true
}

// NumericColumns returns the names of all columns, in table order, whose
// values are all numeric. Hash-masked columns never qualify because hex
// digests do not parse as numbers.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, name := range t.headers {
		values, err := t.Column(name)
		if err != nil {
			continue
		}
		if IsNumeric(values) {
			out = append(out, name)
		}
	}
	return out
}
