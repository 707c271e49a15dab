package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/sym"
	"github.com/teranos/arcana/template"
)

// TemplateCmd inspects page layout documents
var TemplateCmd = &cobra.Command{
	Use:   "template",
	Short: sym.Short("template"),
	Long: sym.Template + ` template — resolve and check page layouts

Layouts are JSON, YAML or TOML documents. Any mapping of the form
{"$ref": "dotted.path"} is replaced by the value at that path.

Examples:
  arcana template resolve configs/pages/fullstar.yaml
  arcana template check                      # every configured layout
  arcana template check configs/pages/dial.yaml`,
}

var templateResolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Print a layout with every $ref resolved",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateResolve,
}

var templateCheckCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Check that layouts resolve and decode",
	Long: `Check that layouts resolve and that their elements, dial or grid
sections decode. Without arguments every configured layout is checked.`,
	RunE: runTemplateCheck,
}

func init() {
	templateResolveCmd.Flags().String("format", display.FormatYAML, "Output format: json, yaml")
	TemplateCmd.AddCommand(templateResolveCmd)
	TemplateCmd.AddCommand(templateCheckCmd)
}

func runTemplateResolve(cmd *cobra.Command, args []string) error {
	doc, err := template.LoadResolved(args[0])
	if err != nil {
		return err
	}
	return display.Write(cmd.OutOrStdout(), doc, display.FormatFor(cmd, display.FormatYAML))
}

func runTemplateCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			return err
		}
		paths = cfg.Templates.LayoutPaths()
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		summary, err := checkLayout(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", sym.Fail, path, err)
			for _, hint := range errors.GetAllHints(err) {
				fmt.Fprintf(out, "    hint: %s\n", hint)
			}
			continue
		}
		fmt.Fprintf(out, "%s %s: %s\n", sym.OK, path, summary)
	}
	if failed > 0 {
		return errors.Newf("%d of %d layouts failed", failed, len(paths))
	}
	return nil
}

// checkLayout resolves path and decodes whichever page sections it has.
func checkLayout(path string) (string, error) {
	doc, err := template.LoadResolved(path)
	if err != nil {
		return "", err
	}
	switch {
	case doc[template.ElementsKey] != nil:
		elements, err := doc.Elements()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d elements", elements.Len()), nil
	case hasSection(doc, "geometry", "center"):
		if _, err := doc.DialLayout(); err != nil {
			return "", err
		}
		return "dial layout", nil
	case hasSection(doc, "geometry", "square"):
		if _, err := doc.GridLayout(); err != nil {
			return "", err
		}
		return "grid layout", nil
	}
	return "", errors.WithHint(
		errors.NewNotFoundError("no elements or geometry section"),
		"page layouts declare either elements or a dial/grid geometry",
	)
}

func hasSection(doc template.Document, section, key string) bool {
	m, ok := doc[section].(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}
