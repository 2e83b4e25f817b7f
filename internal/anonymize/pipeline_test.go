package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/dataveil/dataveil/internal/dataset"
)

func testOptions(mask ...string) Options {
	return Options{
		MaskColumns: mask,
		Epsilon:     1.0,
		Sensitivity: 1.0,
		Algorithm:   AlgorithmSHA256,
		Seed:        42,
	}
}

func writeInput(t *testing.T, content string) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "in.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return dir, path
}

func TestPipelineRun(t *testing.T) {
	t.Run("masks, noises, and preserves shape", func(t *testing.T) {
		dir, in := writeInput(t, "id,name,age\n1,Alice,30\n2,Bob,25\n")
		out := filepath.Join(dir, "out.csv")

		summary, err := NewPipeline(testOptions("name"), nil).Run(in, out)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if summary.Rows != 2 {
			t.Errorf("summary rows = %d, want 2", summary.Rows)
		}
		if !reflect.DeepEqual(summary.MaskedColumns, []string{"name"}) {
			t.Errorf("masked = %v", summary.MaskedColumns)
		}
		// id is numeric and unmasked, so it gets noise too.
		if !reflect.DeepEqual(summary.NoisedColumns, []string{"id", "age"}) {
			t.Errorf("noised = %v", summary.NoisedColumns)
		}
		if len(summary.Failures) != 0 {
			t.Errorf("failures = %v", summary.Failures)
		}

		tbl, err := dataset.Load(out, dataset.Options{})
		if err != nil {
			t.Fatalf("loading output: %v", err)
		}
		if got := tbl.Headers(); !reflect.DeepEqual(got, []string{"id", "name", "age"}) {
			t.Errorf("output headers = %v", got)
		}
		if tbl.NumRows() != 2 {
			t.Errorf("output rows = %d", tbl.NumRows())
		}

		names, _ := tbl.Column("name")
		sum := sha256.Sum256([]byte("Alice"))
		if names[0] != hex.EncodeToString(sum[:]) {
			t.Errorf("masked name = %q, want sha256(Alice)", names[0])
		}

		ages, _ := tbl.Column("age")
		age, err := strconv.ParseFloat(ages[0], 64)
		if err != nil {
			t.Fatalf("noised age %q not numeric: %v", ages[0], err)
		}
		// Laplace(0, 1) noise; anything further than 50 from the original
		// would be astronomically unlikely.
		if math.Abs(age-30) > 50 {
			t.Errorf("noised age %v implausibly far from 30", age)
		}
	})

	t.Run("missing input aborts with NotFound and writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "absent.csv")
		out := filepath.Join(dir, "out.csv")

		_, err := NewPipeline(testOptions("name"), nil).Run(in, out)
		if dataset.KindOf(err) != dataset.KindNotFound {
			t.Fatalf("expected KindNotFound, got %v (%v)", dataset.KindOf(err), err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Fatal("output file was created despite load failure")
		}
	})

	t.Run("absent mask column is reported and run completes", func(t *testing.T) {
		dir, in := writeInput(t, "id,name\n1,Alice\n")
		out := filepath.Join(dir, "out.csv")

		summary, err := NewPipeline(testOptions("zip", "name"), nil).Run(in, out)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if len(summary.Failures) != 1 || summary.Failures[0].Column != "zip" {
			t.Fatalf("failures = %v", summary.Failures)
		}
		if !reflect.DeepEqual(summary.MaskedColumns, []string{"name"}) {
			t.Fatalf("masked = %v", summary.MaskedColumns)
		}

		tbl, err := dataset.Load(out, dataset.Options{})
		if err != nil {
			t.Fatalf("loading output: %v", err)
		}
		names, _ := tbl.Column("name")
		if len(names[0]) != 64 {
			t.Fatalf("name column not masked in output: %q", names[0])
		}
	})

	t.Run("duplicate mask names are applied once", func(t *testing.T) {
		dir, in := writeInput(t, "name\nAlice\n")
		out := filepath.Join(dir, "out.csv")

		summary, err := NewPipeline(testOptions("name", "name"), nil).Run(in, out)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		// Masking twice would hash the digest again; the summary proves it
		// ran once.
		if !reflect.DeepEqual(summary.MaskedColumns, []string{"name"}) {
			t.Fatalf("masked = %v", summary.MaskedColumns)
		}
		tbl, _ := dataset.Load(out, dataset.Options{})
		names, _ := tbl.Column("name")
		sum := sha256.Sum256([]byte("Alice"))
		if names[0] != hex.EncodeToString(sum[:]) {
			t.Fatal("value was hashed more than once")
		}
	})

	t.Run("invalid epsilon is rejected before loading", func(t *testing.T) {
		opts := testOptions("name")
		opts.Epsilon = 0
		_, err := NewPipeline(opts, nil).Run("in.csv", "out.csv")
		if err == nil {
			t.Fatal("expected error for epsilon 0")
		}
	})
}
