package display

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/arcana/errors"
)

// Table is a header row plus data rows
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// AddRow appends one row, formatting each cell with %v
func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.Rows = append(t.Rows, row)
}

// Render writes t to w as a pterm table
func (t *Table) Render(w io.Writer) error {
	data := make([][]string, 0, len(t.Rows)+1)
	data = append(data, t.Header)
	data = append(data, t.Rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, pterm.Bold.Sprint(t.Title)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// KeyValueTable builds a two-column table from ordered pairs
func KeyValueTable(title string, header [2]string, pairs [][2]string) *Table {
	t := &Table{Title: title, Header: header[:]}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p[0], p[1]})
	}
	return t
}
