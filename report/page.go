package report

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/arcana/am"
	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/display"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/render"
)

// Kind identifies a page layout.
type Kind string

const (
	KindFullstar    Kind = "fullstar"
	KindTriangle    Kind = "triangle"
	KindPredict     Kind = "predict"
	KindCouple      Kind = "couple"
	KindPythagorian Kind = "pythagorian"
)

// Page is one render-ready page: a background image and the text records
// painted onto it.
type Page struct {
	Name    string          `json:"name" yaml:"name"`
	Kind    Kind            `json:"kind" yaml:"kind"`
	Pointer arcane.Pointer  `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	Image   string          `json:"image" yaml:"image"`
	Context *render.Context `json:"context" yaml:"context"`
}

// Report is the result of one build.
type Report struct {
	ID       string          `json:"id" yaml:"id"`
	Scenario Scenario        `json:"scenario" yaml:"scenario"`
	Clients  []arcane.Client `json:"clients" yaml:"clients"`
	BuiltAt  time.Time       `json:"built_at" yaml:"built_at"`
	Pages    []Page          `json:"pages" yaml:"pages"`
}

// Page returns the page called name.
func (r *Report) Page(name string) (Page, bool) {
	for _, p := range r.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}

// PageNames lists page names in build order.
func (r *Report) PageNames() []string {
	names := make([]string, len(r.Pages))
	for i, p := range r.Pages {
		names[i] = p.Name
	}
	return names
}

// Write stores every page as <dir>/<page name>.<format> and returns the
// written paths. Page names that would leave dir are rejected.
func (r *Report) Write(dir, format string) ([]string, error) {
	if format != am.FormatJSON && format != am.FormatYAML {
		return nil, errors.NewInvalidArgumentError("unsupported output format %q", format)
	}
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	paths := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		if !filepath.IsLocal(p.Name) || strings.ContainsAny(p.Name, `/\`) {
			return paths, errors.NewInvalidArgumentError("page name %q is not a plain file name", p.Name)
		}
		data, err := display.Marshal(p, format)
		if err != nil {
			return paths, errors.Wrapf(err, "failed to encode page %s", p.Name)
		}
		path := filepath.Join(dir, p.Name+"."+format)
		if err := os.WriteFile(path, data, am.DefaultFilePermissions); err != nil {
			return paths, errors.Wrapf(err, "failed to write page %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
