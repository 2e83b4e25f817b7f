package anonymize

import (
	"math"
	"strconv"
	"testing"

	"github.com/dataveil/dataveil/internal/dataset"
)

func TestNewNoiserValidation(t *testing.T) {
	tests := []struct {
		name        string
		epsilon     float64
		sensitivity float64
		wantErr     bool
	}{
		{"valid", 1.0, 1.0, false},
		{"small epsilon", 0.01, 1.0, false},
		{"zero epsilon", 0, 1.0, true},
		{"negative epsilon", -1, 1.0, true},
		{"zero sensitivity", 1.0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNoiser(tc.epsilon, tc.sensitivity, 1)
			if (err != nil) != tc.wantErr {
				t.Errorf("NewNoiser(%v, %v) error = %v, wantErr %v", tc.epsilon, tc.sensitivity, err, tc.wantErr)
			}
		})
	}
}

func TestNoiserScale(t *testing.T) {
	n, err := NewNoiser(0.5, 2.0, 1)
	if err != nil {
		t.Fatalf("NewNoiser: %v", err)
	}
	if n.Scale() != 4.0 {
		t.Fatalf("Scale = %v, want 4", n.Scale())
	}
}

func TestPerturb(t *testing.T) {
	t.Run("numeric columns stay numeric and get distinct noise", func(t *testing.T) {
		rows := make([][]string, 200)
		for i := range rows {
			rows[i] = []string{"10", "x"}
		}
		tbl := newTable(t, []string{"v", "label"}, rows)

		n, err := NewNoiser(1.0, 1.0, 42)
		if err != nil {
			t.Fatalf("NewNoiser: %v", err)
		}
		noised, failures := n.Perturb(tbl)
		if len(failures) != 0 {
			t.Fatalf("unexpected failures: %v", failures)
		}
		if len(noised) != 1 || noised[0] != "v" {
			t.Fatalf("noised = %v", noised)
		}

		vals, _ := tbl.Column("v")
		if !dataset.IsNumeric(vals) {
			t.Fatal("noised column is no longer numeric")
		}
		distinct := map[string]bool{}
		for _, v := range vals {
			distinct[v] = true
		}
		if len(distinct) < 2 {
			t.Fatal("noise was not sampled independently per cell")
		}

		labels, _ := tbl.Column("label")
		if labels[0] != "x" {
			t.Fatalf("text column was modified: %v", labels[0])
		}
	})

	t.Run("noise is zero-mean", func(t *testing.T) {
		const cells = 4000
		rows := make([][]string, cells)
		for i := range rows {
			rows[i] = []string{"0"}
		}
		tbl := newTable(t, []string{"v"}, rows)

		n, err := NewNoiser(1.0, 1.0, 12345)
		if err != nil {
			t.Fatalf("NewNoiser: %v", err)
		}
		if _, failures := n.Perturb(tbl); len(failures) != 0 {
			t.Fatalf("unexpected failures: %v", failures)
		}

		vals, _ := tbl.Column("v")
		var sum float64
		for _, v := range vals {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				t.Fatalf("noised value %q is not numeric: %v", v, err)
			}
			sum += f
		}
		mean := sum / cells
		// Std of the sample mean is sqrt(2)*b/sqrt(n) ~= 0.022 here, so
		// 0.5 is a very loose bound.
		if math.Abs(mean) > 0.5 {
			t.Fatalf("sample mean %v too far from 0", mean)
		}
	})

	t.Run("same seed reproduces output", func(t *testing.T) {
		build := func() *dataset.Table {
			return newTable(t, []string{"v"}, [][]string{{"1"}, {"2"}, {"3"}})
		}
		run := func(tbl *dataset.Table) []string {
			n, err := NewNoiser(1.0, 1.0, 7)
			if err != nil {
				t.Fatalf("NewNoiser: %v", err)
			}
			if _, failures := n.Perturb(tbl); len(failures) != 0 {
				t.Fatalf("unexpected failures: %v", failures)
			}
			vals, _ := tbl.Column("v")
			return vals
		}

		first := run(build())
		second := run(build())
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("row %d differs across seeded runs: %q vs %q", i, first[i], second[i])
			}
		}
	})

	t.Run("masked columns are skipped by detection", func(t *testing.T) {
		tbl := newTable(t, []string{"secret"}, [][]string{{"1"}, {"2"}})

		if _, failures := Mask(tbl, []string{"secret"}, AlgorithmSHA256); len(failures) != 0 {
			t.Fatalf("Mask failures: %v", failures)
		}
		digests, _ := tbl.Column("secret")

		n, err := NewNoiser(1.0, 1.0, 1)
		if err != nil {
			t.Fatalf("NewNoiser: %v", err)
		}
		noised, _ := n.Perturb(tbl)
		if len(noised) != 0 {
			t.Fatalf("masked column was noised: %v", noised)
		}
		after, _ := tbl.Column("secret")
		for i := range digests {
			if digests[i] != after[i] {
				t.Fatal("masked column changed during noising")
			}
		}
	})
}
