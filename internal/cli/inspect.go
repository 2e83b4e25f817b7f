package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/internal/dataset"
	"github.com/dataveil/dataveil/internal/output"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.csv>",
	Short: "Show columns and which ones would receive noise",
	Long: `Inspect a delimited file without modifying it: column names, detected
kind (numeric or text), and whether the noiser would perturb the column.

Numeric detection matches the anonymization run exactly: a column is
numeric when every value parses as a real number. Identifier-like
columns (primary keys, zip codes stored as numbers) count as numeric
and would be noised unless they are masked instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(outputFormat())

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fail(cmd, out, "config_error", err)
		}

		tbl, err := dataset.Load(args[0], toCSVOptions(cfg))
		if err != nil {
			return fail(cmd, out, dataset.KindOf(err).String(), err)
		}

		numeric := tbl.NumericColumns()
		type columnInfo struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Noised bool   `json:"noised"`
		}
		columns := lo.Map(tbl.Headers(), func(name string, _ int) columnInfo {
			isNumeric := lo.Contains(numeric, name)
			kind := "text"
			if isNumeric {
				kind = "numeric"
			}
			return columnInfo{Name: name, Kind: kind, Noised: isNumeric}
		})

		if out.IsJSON() {
			return out.JSON(map[string]any{
				"input":   args[0],
				"rows":    tbl.NumRows(),
				"columns": columns,
			})
		}

		out.Line("%s: %s rows, %d columns", args[0], humanize.Comma(int64(tbl.NumRows())), tbl.NumCols())
		rows := make([][]string, 0, len(columns))
		for _, c := range columns {
			noised := ""
			if c.Noised {
				noised = "yes"
			}
			rows = append(rows, []string{c.Name, c.Kind, noised})
		}
		out.Table([]string{"COLUMN", "KIND", "NOISED"}, rows)
		return nil
	},
}
