package anonymize

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dataveil/dataveil/internal/dataset"
)

// Noiser perturbs numeric columns with zero-mean Laplace noise of scale
// sensitivity/epsilon, the standard mechanism for approximate differential
// privacy on real-valued data.
//
// Each noised column independently spends the full epsilon; no budget
// composition across columns is tracked, so the aggregate privacy loss of
// a run grows with the number of numeric columns.
type Noiser struct {
	epsilon     float64
	sensitivity float64
	dist        distuv.Laplace
}

// NewNoiser builds a Noiser. Epsilon and sensitivity must be positive —
// a non-positive epsilon would make the noise scale infinite or negative.
// A zero seed draws a fresh seed from the clock.
func NewNoiser(epsilon, sensitivity float64, seed uint64) (*Noiser, error) {
	if epsilon <= 0 {
		return nil, fmt.Errorf("epsilon must be > 0, got %v", epsilon)
	}
	if sensitivity <= 0 {
		return nil, fmt.Errorf("sensitivity must be > 0, got %v", sensitivity)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Noiser{
		epsilon:     epsilon,
		sensitivity: sensitivity,
		dist: distuv.Laplace{
			Mu:    0,
			Scale: sensitivity / epsilon,
			Src:   rand.NewPCG(seed, seed),
		},
	}, nil
}

// Scale returns the Laplace scale parameter b = sensitivity / epsilon.
func (n *Noiser) Scale() float64 {
	return n.dist.Scale
}

// Perturb adds independently sampled Laplace noise to every cell of every
// numeric column. Detection is automatic: a column qualifies when all of
// its values parse as real numbers, which is also what keeps masked
// columns out — hash digests are not numeric. A failure on one column is
// recorded and the others are still perturbed.
func (n *Noiser) Perturb(tbl *dataset.Table) (noised []string, failures []ColumnFailure) {
	for _, name := range tbl.NumericColumns() {
		err := tbl.Apply(name, func(v string) (string, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return "", err
			}
			return strconv.FormatFloat(f+n.dist.Rand(), 'g', -1, 64), nil
		})
		if err != nil {
			failures = append(failures, ColumnFailure{Column: name, Stage: "noise", Err: err})
			continue
		}
		noised = append(noised, name)
	}
	return noised, failures
}
