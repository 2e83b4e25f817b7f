package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/internal/history"
	"github.com/dataveil/dataveil/internal/output"
)

var flagHistoryLimit int

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past anonymization runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(outputFormat())

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fail(cmd, out, "config_error", err)
		}

		path := cfg.History.DatabasePath
		if path == "" {
			if path, err = history.DefaultPath(); err != nil {
				return fail(cmd, out, "history_error", err)
			}
		}
		db, err := history.Open(path)
		if err != nil {
			return fail(cmd, out, "history_error", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(flagHistoryLimit)
		if err != nil {
			return fail(cmd, out, "history_error", err)
		}

		if out.IsJSON() {
			return out.JSON(map[string]any{"runs": runs})
		}

		if len(runs) == 0 {
			out.Line("No recorded runs.")
			return nil
		}
		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				humanize.Time(r.StartedAt),
				r.InputPath,
				r.OutputPath,
				humanize.Comma(int64(r.Rows)),
				fmt.Sprintf("%g", r.Epsilon),
				strings.Join(r.MaskedColumns, ","),
			})
		}
		out.Table([]string{"WHEN", "INPUT", "OUTPUT", "ROWS", "EPSILON", "MASKED"}, rows)
		return nil
	},
}
