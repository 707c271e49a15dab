// Package version reports build information for the arcana binary.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/arcana/template"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash   string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime    string `json:"build_time" yaml:"build_time"`
	Version      string `json:"version" yaml:"version"`
	LayoutSchema string `json:"layout_schema" yaml:"layout_schema"`
	GoVersion    string `json:"go_version" yaml:"go_version"`
	Platform     string `json:"platform" yaml:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash:   CommitHash,
		BuildTime:    BuildTime,
		Version:      Version,
		LayoutSchema: template.SupportedSchema,
		GoVersion:    runtime.Version(),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Semver parses Version. Untagged builds fail.
func (i Info) Semver() (*semver.Version, error) {
	return semver.NewVersion(i.Version)
}

// String returns a human-readable version string
func (i Info) String() string {
	if v, err := i.Semver(); err == nil {
		return fmt.Sprintf("arcana v%s (commit %s, built %s)", v, i.Short(), i.BuildTime)
	}
	return fmt.Sprintf("arcana %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
