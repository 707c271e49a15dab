package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/sym"
)

// StarCmd prints the derivation graph of one client
var StarCmd = &cobra.Command{
	Use:   "star",
	Short: sym.Short("star"),
	Long: sym.Star + ` star — derived arcana of one client

Prints the main, error, mission and footer stars and the triangle of every
pointer. With --format json|yaml the flattened fullstar labels are printed
in page order instead.

Examples:
  arcana star -c "Anna,15.05.1990,F"
  arcana star -c "Anna,15.05.1990,F" --pointer money --format yaml`,
	RunE: runStar,
}

func init() {
	addClientFlags(StarCmd, `Client as "name,dd.mm.yyyy,gender"`)
	StarCmd.Flags().StringSlice("pointer", nil, "Restrict triangles to these pointers (default: all)")
	StarCmd.Flags().String("format", display.FormatTable, "Output format: table, json, yaml")
}

type starView struct {
	Client arcane.Client  `json:"client" yaml:"client"`
	Labels *arcane.Labels `json:"labels" yaml:"labels"`
}

func runStar(cmd *cobra.Command, args []string) error {
	c, err := oneClient(cmd)
	if err != nil {
		return err
	}
	pointers, err := pointersFlag(cmd)
	if err != nil {
		return err
	}
	g := arcane.NewGraph(c)
	out := cmd.OutOrStdout()

	if format := display.FormatFor(cmd, display.FormatTable); format != display.FormatTable {
		labels, err := g.FullStar(pointers)
		if err != nil {
			return err
		}
		return display.Write(out, starView{Client: c, Labels: labels}, format)
	}

	stars := &display.Table{
		Title:  c.Header(),
		Header: []string{"pointer", "main", "error", "footer"},
	}
	for _, p := range arcane.Pointers {
		stars.AddRow(sym.Pointer(string(p)), g.Main.Get(p), g.Error.Get(p), g.Footer.Get(p))
	}
	if err := stars.Render(out); err != nil {
		return err
	}

	m := g.Mission
	mission := display.KeyValueTable("Mission", [2]string{"arcanum", "value"}, [][2]string{
		{"mission", fmt.Sprint(m.Mission)},
		{"mission_error", fmt.Sprint(m.MissionError)},
		{"mission_full", fmt.Sprint(m.MissionFull)},
	})
	if err := mission.Render(out); err != nil {
		return err
	}

	triangles, err := g.Triangles(pointers)
	if err != nil {
		return err
	}
	tt := &display.Table{
		Title: "Triangles",
		Header: []string{"pointer", "vertex", "left", "right",
			"inverted", "inv. left", "inv. right", "left middle", "right middle"},
	}
	for _, t := range triangles {
		tt.AddRow(sym.Pointer(string(t.Pointer)), t.Vertex, t.LeftVertex, t.RightVertex,
			t.InvertedVertex, t.InvertedLeftVertex, t.InvertedRightVertex,
			t.LeftMiddleVertex, t.RightMiddleVertex)
	}
	return tt.Render(out)
}

func pointersFlag(cmd *cobra.Command) ([]arcane.Pointer, error) {
	names, _ := cmd.Flags().GetStringSlice("pointer")
	if len(names) == 0 {
		return arcane.Pointers, nil
	}
	return arcane.ParsePointers(names)
}
