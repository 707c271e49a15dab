package am

import (
	"os"
	"sort"
	"strings"

	"github.com/teranos/arcana/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/arcana/arcana.toml
	SourceUser        ConfigSource = "user"        // ~/.arcana/arcana.toml
	SourceProject     ConfigSource = "project"     // nearest arcana.toml
	SourceEnvironment ConfigSource = "environment" // ARCANA_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource `json:"source"`
	Path   string       `json:"path,omitempty"` // File path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	Files    []SourceInfo  `json:"files"`    // Config files merged, lowest precedence first
	Settings []SettingInfo `json:"settings"` // All settings with sources, sorted by key
}

// GetConfigIntrospection returns every effective setting with its source
func GetConfigIntrospection() (*ConfigIntrospection, error) {
	if _, err := Load(); err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}

	mu.Lock()
	defer mu.Unlock()
	v := initViper()

	keys := v.AllKeys()
	sort.Strings(keys)

	introspection := &ConfigIntrospection{
		Files:    ConfigFiles(),
		Settings: make([]SettingInfo, 0, len(keys)),
	}
	for _, key := range keys {
		source := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := ConfigSources[key]; ok {
			source = si
		}

		// Environment variables override every file
		envKey := "ARCANA_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			source = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		introspection.Settings = append(introspection.Settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     source.Source,
			SourcePath: source.Path,
		})
	}

	return introspection, nil
}

// Setting looks up one setting of the introspection by key
func (ci *ConfigIntrospection) Setting(key string) (SettingInfo, bool) {
	for _, s := range ci.Settings {
		if s.Key == key {
			return s, true
		}
	}
	return SettingInfo{}, false
}
