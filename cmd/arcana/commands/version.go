package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show arcana version information",
	Long:  `Display version, build time, commit hash, layout schema and platform information for the arcana binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(out, info)
		}
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Layout schema: %s\n", info.LayoutSchema)
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}
