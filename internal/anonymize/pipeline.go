package anonymize

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/dataveil/dataveil/internal/dataset"
)

// Options carries everything a single anonymization run needs beyond the
// file paths. The CLI derives it from the effective configuration.
type Options struct {
	MaskColumns []string
	Epsilon     float64
	Sensitivity float64
	Algorithm   Algorithm
	// Seed fixes the noise RNG for reproducible runs; zero means
	// time-seeded.
	Seed uint64
	CSV  dataset.Options
}

// Summary describes a completed run.
type Summary struct {
	RunID         string          `json:"run_id"`
	Input         string          `json:"input"`
	Output        string          `json:"output"`
	Rows          int             `json:"rows"`
	MaskedColumns []string        `json:"masked_columns"`
	NoisedColumns []string        `json:"noised_columns"`
	Epsilon       float64         `json:"epsilon"`
	Failures      []ColumnFailure `json:"failures,omitempty"`
	Duration      time.Duration   `json:"duration"`
	StartedAt     time.Time       `json:"started_at"`
}

// FailureMessages renders the per-column failures as printable strings.
func (s *Summary) FailureMessages() []string {
	return lo.Map(s.Failures, func(f ColumnFailure, _ int) string {
		return f.Message()
	})
}

// Pipeline runs the four stages in fixed order: load, mask, noise, write.
// No state survives a run; each invocation processes exactly one table.
type Pipeline struct {
	opts   Options
	logger *log.Logger
}

// NewPipeline builds a pipeline. A nil logger falls back to the package
// default.
func NewPipeline(opts Options, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{opts: opts, logger: logger}
}

// Run anonymizes input into output.
//
// Load and write failures abort and are returned; mask/noise failures are
// isolated per column, logged, and collected into the summary while the
// run continues to completion.
func (p *Pipeline) Run(input, output string) (*Summary, error) {
	start := time.Now()

	noiser, err := NewNoiser(p.opts.Epsilon, p.opts.Sensitivity, p.opts.Seed)
	if err != nil {
		return nil, err
	}

	tbl, err := dataset.Load(input, p.opts.CSV)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("loaded table", "input", input, "rows", tbl.NumRows(), "cols", tbl.NumCols())

	maskCols := lo.Uniq(p.opts.MaskColumns)
	masked, maskFailures := Mask(tbl, maskCols, p.opts.Algorithm)
	for _, f := range maskFailures {
		p.logger.Warn("column skipped", "stage", f.Stage, "column", f.Column, "err", f.Err)
	}

	noised, noiseFailures := noiser.Perturb(tbl)
	for _, f := range noiseFailures {
		p.logger.Warn("column skipped", "stage", f.Stage, "column", f.Column, "err", f.Err)
	}

	if err := dataset.Write(tbl, output, p.opts.CSV); err != nil {
		return nil, err
	}

	return &Summary{
		RunID:         uuid.NewString(),
		Input:         input,
		Output:        output,
		Rows:          tbl.NumRows(),
		MaskedColumns: masked,
		NoisedColumns: noised,
		Epsilon:       p.opts.Epsilon,
		Failures:      append(maskFailures, noiseFailures...),
		Duration:      time.Since(start),
		StartedAt:     start,
	}, nil
}
