// Package anonymize implements the mask and noise stages and the pipeline
// that runs them between load and write.
package anonymize

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/dataveil/dataveil/internal/dataset"
)

// Algorithm selects the digest used for masking.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
)

// Digest returns the lowercase hex digest of the value's textual form.
func (a Algorithm) Digest(value string) (string, error) {
	switch a {
	case AlgorithmSHA256:
		sum := sha256.Sum256([]byte(value))
		return hex.EncodeToString(sum[:]), nil
	case AlgorithmSHA512:
		sum := sha512.Sum512([]byte(value))
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", a)
	}
}

// ColumnFailure records a column that could not be masked or perturbed.
// The rest of the run proceeds; the failing column keeps its prior values.
type ColumnFailure struct {
	Column string `json:"column"`
	Stage  string `json:"stage"` // mask | noise
	Err    error  `json:"-"`
}

// Message returns the failure as a printable string.
func (f ColumnFailure) Message() string {
	return fmt.Sprintf("%s %q: %v", f.Stage, f.Column, f.Err)
}

// Mask replaces every cell of each named column with the hex digest of its
// current value. Masking is deterministic and unsalted: equal values yield
// equal digests within and across runs, which keeps runs reproducible but
// leaves low-cardinality columns open to dictionary attack.
//
// A failure on one column (typically: the column does not exist) is
// recorded and the remaining columns are still masked. The returned slice
// holds the names of the columns that were actually masked.
func Mask(tbl *dataset.Table, columns []string, algo Algorithm) (masked []string, failures []ColumnFailure) {
	for _, name := range columns {
		err := tbl.Apply(name, func(v string) (string, error) {
			return algo.Digest(v)
		})
		if err != nil {
			failures = append(failures, ColumnFailure{Column: name, Stage: "mask", Err: err})
			continue
		}
		masked = append(masked, name)
	}
	return masked, failures
}
