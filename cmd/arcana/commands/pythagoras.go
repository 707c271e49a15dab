package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/render"
	"github.com/teranos/arcana/sym"
)

// PythagorasCmd prints the Pythagorean square of one client
var PythagorasCmd = &cobra.Command{
	Use:   "pythagoras",
	Short: sym.Short("pythagoras"),
	Long: sym.Pythagoras + ` pythagoras — Pythagorean square of a birthday

Prints the five working numbers and the 3x3 square of digit occurrences.

Examples:
  arcana pythagoras -c "Anna,15.05.1990,F"`,
	RunE: runPythagoras,
}

func init() {
	addClientFlags(PythagorasCmd, `Client as "name,dd.mm.yyyy,gender"`)
	PythagorasCmd.Flags().String("format", display.FormatTable, "Output format: table, json, yaml")
}

type pythagorasView struct {
	Numbers [5]int         `json:"numbers" yaml:"numbers"`
	Digits  string         `json:"digits" yaml:"digits"`
	Cells   *arcane.Labels `json:"cells" yaml:"cells"`
}

func runPythagoras(cmd *cobra.Command, args []string) error {
	c, err := oneClient(cmd)
	if err != nil {
		return err
	}
	table := arcane.NewPythagorianTable(c)
	cells := table.Labels()

	out := cmd.OutOrStdout()
	if format := display.FormatFor(cmd, display.FormatTable); format != display.FormatTable {
		return display.Write(out, pythagorasView{Numbers: table.Numbers(), Digits: table.Digits(), Cells: cells}, format)
	}

	numbers := &display.Table{Title: c.Header(), Header: []string{"#", "number"}}
	for i, n := range table.Numbers() {
		numbers.AddRow(i+1, n)
	}
	if err := numbers.Render(out); err != nil {
		return err
	}

	grid := &display.Table{Title: "Square", Header: []string{"", "", ""}}
	for row := 0; row < 9/render.GridColumns; row++ {
		cellsRow := make([]interface{}, render.GridColumns)
		for col := range cellsRow {
			cellsRow[col] = cells.Value(strconv.Itoa(row*render.GridColumns + col + 1))
		}
		grid.AddRow(cellsRow...)
	}
	return grid.Render(out)
}
