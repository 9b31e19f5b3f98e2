// Package version provides version information for the stamp CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version.
	Version string `json:"version" yaml:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate" yaml:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion" yaml:"goVersion"`

	// SproutVersion is the version of the template helper library.
	SproutVersion string `json:"sproutVersion" yaml:"sproutVersion"`
}

const sproutModule = "github.com/go-sprout/sprout"

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		SproutVersion: "unknown",
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.SproutVersion = depVersion(bi, sproutModule)
	}

	return info
}

func depVersion(bi *debug.BuildInfo, module string) string {
	for _, dep := range bi.Deps {
		if dep.Path != module {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown"
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("stamp version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  Helpers:   sprout %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.SproutVersion)
}
