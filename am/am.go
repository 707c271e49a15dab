// Package am ("arcana manifest") loads arcana's own configuration: where the
// page layouts live, how positions are scaled and where reports go.
//
// Sources merge in precedence order (lowest first): built-in defaults,
// /etc/arcana/arcana.toml, ~/.arcana/arcana.toml, the nearest arcana.toml
// above the working directory, then ARCANA_* environment variables.
package am

import (
	"fmt"
	"path/filepath"
)

// ConfigFileName is the file searched for at every level of the cascade.
const ConfigFileName = "arcana.toml"

// Config represents the arcana configuration
type Config struct {
	Templates TemplatesConfig `mapstructure:"templates" toml:"templates" json:"templates"`
	Render    RenderConfig    `mapstructure:"render" toml:"render" json:"render"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" json:"output"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics" toml:"metrics" json:"metrics"`
}

// TemplatesConfig locates page layouts and background images
type TemplatesConfig struct {
	Dir       string      `mapstructure:"dir" toml:"dir" json:"dir"`                      // Layout documents directory
	ImagesDir string      `mapstructure:"images_dir" toml:"images_dir" json:"images_dir"` // Page background images directory
	Pages     PagesConfig `mapstructure:"pages" toml:"pages" json:"pages"`
}

// PagesConfig names the layout document of each page, relative to Dir.
// The predict page combines a fixed layout (Predict) with the dial (Dial).
type PagesConfig struct {
	Fullstar    string `mapstructure:"fullstar" toml:"fullstar" json:"fullstar"`
	Triangles   string `mapstructure:"triangles" toml:"triangles" json:"triangles"`
	Couple      string `mapstructure:"couple" toml:"couple" json:"couple"`
	Predict     string `mapstructure:"predict" toml:"predict" json:"predict"`
	Dial        string `mapstructure:"dial" toml:"dial" json:"dial"`
	Pythagorian string `mapstructure:"pythagorian" toml:"pythagorian" json:"pythagorian"`
}

// RenderConfig configures layout projection
type RenderConfig struct {
	Scale     float64 `mapstructure:"scale" toml:"scale" json:"scale"`                // Pixel to millimetre factor (default: 0.0882)
	CacheSize int     `mapstructure:"cache_size" toml:"cache_size" json:"cache_size"` // Resolved layouts kept in memory (default: 32)
}

// OutputConfig configures where and how report pages are written
type OutputConfig struct {
	Dir    string `mapstructure:"dir" toml:"dir" json:"dir"`
	Format string `mapstructure:"format" toml:"format" json:"format"` // json or yaml
}

// LogConfig configures the logger
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme" json:"theme"` // Color theme: gruvbox, everforest
	JSON  bool   `mapstructure:"json" toml:"json" json:"json"`
}

// MetricsConfig configures the optional metrics dump
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" toml:"textfile" json:"textfile"` // node_exporter textfile path (empty = disabled)
}

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// PagePath joins a page layout name with the templates directory.
// Absolute names are returned unchanged.
func (t TemplatesConfig) PagePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(t.Dir, name)
}

// ImagePath joins an image name with the images directory.
func (t TemplatesConfig) ImagePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(t.ImagesDir, name)
}

// LayoutPaths lists every configured layout document.
func (t TemplatesConfig) LayoutPaths() []string {
	p := t.Pages
	names := []string{p.Fullstar, p.Triangles, p.Couple, p.Predict, p.Dial, p.Pythagorian}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, t.PagePath(n))
		}
	}
	return out
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Templates: %s, Render: {Scale: %g}, Output: {Dir: %s, Format: %s}}",
		c.Templates.Dir, c.Render.Scale, c.Output.Dir, c.Output.Format)
}
