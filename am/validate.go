package am

import "github.com/teranos/arcana/errors"

var knownThemes = map[string]bool{"gruvbox": true, "everforest": true}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Scale: 0 = use default, negative = invalid
	if c.Render.Scale < 0 {
		return errors.NewInvalidArgumentError("render.scale must be > 0, got %g", c.Render.Scale)
	}

	// Cache size: 0 = use default, negative = invalid
	if c.Render.CacheSize < 0 {
		return errors.NewInvalidArgumentError("render.cache_size must be >= 0, got %d", c.Render.CacheSize)
	}

	if c.Templates.Dir == "" {
		return errors.NewInvalidArgumentError("templates.dir cannot be empty")
	}

	switch c.Output.Format {
	case "", FormatJSON, FormatYAML:
	default:
		return errors.WithHint(
			errors.NewInvalidArgumentError("output.format must be json or yaml, got %q", c.Output.Format),
			"set output.format in arcana.toml or ARCANA_OUTPUT_FORMAT",
		)
	}

	if c.Log.Theme != "" && !knownThemes[c.Log.Theme] {
		return errors.NewInvalidArgumentError("log.theme must be gruvbox or everforest, got %q", c.Log.Theme)
	}

	return nil
}
