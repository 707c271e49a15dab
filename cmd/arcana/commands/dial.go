package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/dial"
	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/sym"
)

// DialCmd prints the predict dial of one client
var DialCmd = &cobra.Command{
	Use:   "dial",
	Short: sym.Short("dial"),
	Long: sym.Dial + ` dial — the 80-entry predict dial

Each of the 20 main slots is followed by three inner entries computed
against the next slot; the last slot wraps around to the first.

Examples:
  arcana dial -c "Anna,15.05.1990,F"
  arcana dial -c "Anna,15.05.1990,F" --json`,
	RunE: runDial,
}

func init() {
	addClientFlags(DialCmd, `Client as "name,dd.mm.yyyy,gender"`)
	DialCmd.Flags().String("format", display.FormatTable, "Output format: table, json, yaml")
}

func runDial(cmd *cobra.Command, args []string) error {
	c, err := oneClient(cmd)
	if err != nil {
		return err
	}
	entries, err := dial.FullDial(arcane.NewGraph(c), arcane.Pointers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format := display.FormatFor(cmd, display.FormatTable); format != display.FormatTable {
		return display.Write(out, entries, format)
	}

	t := &display.Table{
		Title:  c.Header(),
		Header: []string{"slot", "source", "main", "left", "middle", "right"},
	}
	for _, row := range dial.Mapping {
		inner := "inner_" + row.To + "_"
		t.AddRow(row.To, row.From, entries.Value(row.To),
			entries.Value(inner+"left"), entries.Value(inner+"middle"), entries.Value(inner+"right"))
	}
	return t.Render(out)
}
