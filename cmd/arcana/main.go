package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/cmd/arcana/commands"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/logger"
)

var rootCmd = &cobra.Command{
	Use:   "arcana",
	Short: "arcana - numerology derivation and page layout engine",
	Long: `arcana - numerology derivation and page layout engine.

arcana derives the arcana of a birthday (stars, triangles, the predict dial
and the Pythagorean square) and projects them onto page layouts, producing
render-ready records for a painting backend.

Available commands:
  star        - Derived arcana of one client
  dial        - Predict dial of one client
  pythagoras  - Pythagorean square of one client
  report      - Build the pages of a scenario
  template    - Resolve and check page layouts
  am          - Manage arcana configuration
  version     - Show version information

Examples:
  arcana star -c "Anna,15.05.1990,F"
  arcana report --scenario couple --demo
  arcana template check
  arcana am show`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// Broken configs are reported by the commands that need them;
		// logging falls back to defaults meanwhile.
		jsonLogs := false
		if cfg, err := commands.LoadConfig(cmd); err == nil {
			logger.SetTheme(cfg.GetLogTheme())
			jsonLogs = cfg.Log.JSON
		}
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON instead of tables")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file only")

	rootCmd.AddCommand(commands.StarCmd)
	rootCmd.AddCommand(commands.DialCmd)
	rootCmd.AddCommand(commands.PythagorasCmd)
	rootCmd.AddCommand(commands.ReportCmd)
	rootCmd.AddCommand(commands.TemplateCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
