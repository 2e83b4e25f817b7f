// Package cli implements the dataveil command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/internal/anonymize"
	"github.com/dataveil/dataveil/internal/config"
	"github.com/dataveil/dataveil/internal/dataset"
	"github.com/dataveil/dataveil/internal/history"
	"github.com/dataveil/dataveil/internal/output"
	"github.com/dataveil/dataveil/internal/utils"
)

var (
	flagConfig   string
	flagOutput   string
	flagJSON     bool
	flagLogLevel string

	flagMask      []string
	flagEpsilon   float64
	flagSeed      int64
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "dataveil <input.csv> <output.csv>",
	Short: "Anonymize delimited tabular data",
	Long: `Anonymize a delimited file by hash-masking named columns and adding
calibrated Laplace noise to every numeric column.

Stages run in fixed order: load, mask, noise, write. Columns named with
--mask are replaced by the hex digest of each value. Every remaining
column whose values are all numeric gets independent zero-mean Laplace
noise with scale sensitivity/epsilon; this includes identifier-like
numeric columns, so check with 'dataveil inspect' first if that matters.

Masking is deterministic and unsalted so output is reproducible across
runs. That also means low-cardinality values (yes/no, small enums) can
be recovered by a dictionary attack on the digests; treat masked output
as pseudonymized, not strongly anonymized.

Examples:
  dataveil people.csv people_anon.csv --mask name --mask email
  dataveil survey.csv out.csv --mask respondent_id --epsilon 0.5
  DATAVEIL_SEED=42 dataveil data.csv out.csv --mask name`,
	Args: cobra.ExactArgs(2),
	RunE: runAnonymize,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (overrides project config)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "output format: text|json")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "shorthand for --output json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")

	rootCmd.Flags().StringSliceVar(&flagMask, "mask", nil, "column to hash-mask (repeatable)")
	rootCmd.Flags().Float64Var(&flagEpsilon, "epsilon", 1.0, "privacy parameter; smaller means more noise, must be > 0")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "fixed noise RNG seed for reproducible output (0 = time-seeded)")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record this run in the audit database")
	_ = rootCmd.MarkFlagRequired("mask")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	input, outPath := args[0], args[1]
	out := output.New(outputFormat())

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fail(cmd, out, "config_error", err)
	}
	utils.SetLevel(cfg.Logging.Level)

	pipe := anonymize.NewPipeline(toPipelineOptions(cfg, flagMask), utils.GetDefaultLogger())
	summary, err := pipe.Run(input, outPath)
	if err != nil {
		return fail(cmd, out, dataset.KindOf(err).String(), err)
	}

	if cfg.History.Enabled && !flagNoHistory {
		recordRun(cfg, summary)
	}

	if out.IsJSON() {
		return out.JSON(summary)
	}
	printSummary(out, summary)
	return nil
}

func printSummary(out *output.Writer, s *anonymize.Summary) {
	out.Line("Anonymized data written to %s", s.Output)
	out.Line("  rows:    %s", humanize.Comma(int64(s.Rows)))
	out.Line("  masked:  %s", joinOrNone(s.MaskedColumns))
	out.Line("  noised:  %s (epsilon=%g)", joinOrNone(s.NoisedColumns), s.Epsilon)
	for _, msg := range s.FailureMessages() {
		out.Line("  skipped: %s", msg)
	}
}

func joinOrNone(cols []string) string {
	if len(cols) == 0 {
		return "(none)"
	}
	return strings.Join(cols, ", ")
}

// recordRun appends the run to the audit database. History failures never
// fail the run.
func recordRun(cfg config.Config, s *anonymize.Summary) {
	path := cfg.History.DatabasePath
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			utils.Warn("history disabled", "err", err)
			return
		}
		path = p
	}
	db, err := history.Open(path)
	if err != nil {
		utils.Warn("history unavailable", "err", err)
		return
	}
	defer db.Close()

	err = db.RecordRun(&history.Run{
		ID:            s.RunID,
		StartedAt:     s.StartedAt,
		InputPath:     s.Input,
		OutputPath:    s.Output,
		Rows:          s.Rows,
		Epsilon:       s.Epsilon,
		MaskedColumns: s.MaskedColumns,
		NoisedColumns: s.NoisedColumns,
		Failures:      s.FailureMessages(),
		Duration:      s.Duration,
	})
	if err != nil {
		utils.Warn("recording run failed", "err", err)
		return
	}
	if _, err := db.Prune(cfg.History.RetentionDays); err != nil {
		utils.Warn("pruning history failed", "err", err)
	}
}

// Helpers shared across commands ----------------------------------------------

// loadConfig returns the effective configuration with CLI flags applied at
// highest precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	overrides := map[string]any{}
	if cmd.Flags().Changed("epsilon") {
		overrides["anonymize.epsilon"] = flagEpsilon
	}
	if cmd.Flags().Changed("seed") {
		overrides["anonymize.seed"] = flagSeed
	}
	if flagLogLevel != "" {
		overrides["logging.level"] = flagLogLevel
	}
	return config.Load(config.LoadOptions{
		ConfigPath:    flagConfig,
		FlagOverrides: overrides,
	})
}

func toPipelineOptions(cfg config.Config, maskCols []string) anonymize.Options {
	return anonymize.Options{
		MaskColumns: maskCols,
		Epsilon:     cfg.Anonymize.Epsilon,
		Sensitivity: cfg.Anonymize.Sensitivity,
		Algorithm:   anonymize.Algorithm(cfg.Anonymize.HashAlgorithm),
		Seed:        uint64(cfg.Anonymize.Seed),
		CSV:         toCSVOptions(cfg),
	}
}

func toCSVOptions(cfg config.Config) dataset.Options {
	var delim rune
	if r := []rune(cfg.CSV.Delimiter); len(r) > 0 {
		delim = r[0]
	}
	return dataset.Options{
		Delimiter:        delim,
		TrimLeadingSpace: cfg.CSV.TrimLeadingSpace,
	}
}

func outputFormat() output.Format {
	if flagJSON || flagOutput == "json" {
		return output.FormatJSON
	}
	return output.FormatText
}

// fail reports an error in the selected output format and silences cobra's
// own printing, since the message has already been shown.
func fail(cmd *cobra.Command, out *output.Writer, status string, err error) error {
	if out.IsJSON() {
		_ = out.JSON(map[string]any{
			"status": status,
			"error":  err.Error(),
		})
	} else {
		fmt.Fprintf(os.Stderr, "[dataveil] Error: %s\n", err.Error())
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return err
}
