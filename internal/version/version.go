// Package version holds build metadata for the wtsc binary.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorAttrs = []color.Attribute{color.FgYellow, color.Bold}
	minorAttrs = []color.Attribute{color.FgGreen, color.Bold}
	patchAttrs = []color.Attribute{color.FgBlue, color.Bold}
)

// Info is the machine-readable form of the build metadata.
type Info struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// Current returns the build metadata.
func Current() Info {
	return Info{
		Version:    Version,
		GitCommit:  GitCommit,
		GitMessage: GitMessage,
		BuildDate:  BuildDate,
	}
}

// Pretty renders v with each numeric component colored when colored is set,
// whatever fatih/color detected about stdout. A pre-release or build suffix
// is kept uncolored. Strings that are not MAJOR.MINOR.PATCH are returned
// unchanged.
func Pretty(v string, colored bool) string {
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	for _, p := range parts {
		if p == "" {
			return v
		}
	}
	return paint(majorAttrs, parts[0], colored) + "." +
		paint(minorAttrs, parts[1], colored) + "." +
		paint(patchAttrs, parts[2], colored) + suffix
}

func paint(attrs []color.Attribute, s string, colored bool) string {
	if !colored {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
