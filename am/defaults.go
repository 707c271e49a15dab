package am

import (
	"github.com/spf13/viper"
)

// Default values shared by SetDefaults and the zero-value getters
const (
	DefaultTemplatesDir = "configs/pages"
	DefaultImagesDir    = "templates"
	DefaultScale        = 0.0882
	DefaultCacheSize    = 32
	DefaultOutputDir    = "output"
	DefaultLogTheme     = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Templates
	v.SetDefault("templates.dir", DefaultTemplatesDir)
	v.SetDefault("templates.images_dir", DefaultImagesDir)
	v.SetDefault("templates.pages.fullstar", "fullstar.yaml")
	v.SetDefault("templates.pages.triangles", "triangles.yaml")
	v.SetDefault("templates.pages.couple", "couple.yaml")
	v.SetDefault("templates.pages.predict", "predict.yaml")
	v.SetDefault("templates.pages.dial", "dial.yaml")
	v.SetDefault("templates.pages.pythagorian", "pythagorian_table.yaml")

	// Render
	v.SetDefault("render.scale", DefaultScale) // A4: 2380 px ↔ 210 mm
	v.SetDefault("render.cache_size", DefaultCacheSize)

	// Output
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.format", FormatJSON)

	// Logging
	v.SetDefault("log.theme", DefaultLogTheme)
	v.SetDefault("log.json", false)

	// Metrics
	v.SetDefault("metrics.textfile", "")
}

// viperWithDefaults returns an isolated Viper holding only defaults
func viperWithDefaults() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

// BindEnvVars binds settings whose env name does not follow ARCANA_<KEY>
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("log.theme", "ARCANA_LOG_THEME")
	v.BindEnv("templates.dir", "ARCANA_TEMPLATES_DIR", "ARCANA_TEMPLATES")
}

// GetScale returns the render scale (default: 0.0882)
func (c *Config) GetScale() float64 {
	if c.Render.Scale == 0 {
		return DefaultScale
	}
	return c.Render.Scale
}

// GetCacheSize returns the layout cache size (default: 32)
func (c *Config) GetCacheSize() int {
	if c.Render.CacheSize == 0 {
		return DefaultCacheSize
	}
	return c.Render.CacheSize
}

// GetOutputFormat returns the output format (default: json)
func (c *Config) GetOutputFormat() string {
	if c.Output.Format == "" {
		return FormatJSON
	}
	return c.Output.Format
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return DefaultLogTheme
	}
	return c.Log.Theme
}
