package cli

import (
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/internal/output"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dataveil version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(outputFormat())
		if out.IsJSON() {
			return out.JSON(map[string]any{"version": Version})
		}
		out.Line("dataveil %s", Version)
		return nil
	},
}
