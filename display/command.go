package display

import (
	"github.com/spf13/cobra"
)

// Output formats understood by Write
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// ShouldOutputJSON determines if a command should output JSON based on its flags
func ShouldOutputJSON(cmd *cobra.Command) bool {
	return FormatFor(cmd, FormatTable) == FormatJSON
}

// FormatFor picks the output format of cmd: an explicit --json wins, then
// --format, then fallback.
func FormatFor(cmd *cobra.Command, fallback string) string {
	if cmd == nil {
		return fallback
	}

	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
			return FormatJSON
		}
	} else if jsonFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); jsonFlag {
		return FormatJSON
	}

	if f := cmd.Flags().Lookup("format"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return fallback
}
