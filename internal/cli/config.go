package cli

import (
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/internal/config"
	"github.com/dataveil/dataveil/internal/output"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(outputFormat())

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fail(cmd, out, "config_error", err)
		}
		if out.IsJSON() {
			return out.JSON(cfg)
		}
		rendered, err := config.Encode(cfg)
		if err != nil {
			return fail(cmd, out, "config_error", err)
		}
		out.Line("%s", rendered)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default user config to ~/.dataveil/config.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(outputFormat())

		path := config.UserConfigPath()
		if err := config.WriteDefault(path); err != nil {
			return fail(cmd, out, "config_error", err)
		}
		if out.IsJSON() {
			return out.JSON(map[string]any{"status": "created", "path": path})
		}
		out.Line("Wrote default config to %s", path)
		return nil
	},
}
