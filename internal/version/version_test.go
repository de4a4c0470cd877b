package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPrettyPlain(t *testing.T) {
	cases := []string{
		"0.1.0-dev",
		"1.2.3",
		"1.2.3-rc.1+build.123",
		"dev",
		"1.2",
		"1..3",
	}
	for _, v := range cases {
		if got := Pretty(v, false); got != v {
			t.Fatalf("Pretty(%q, false) = %q", v, got)
		}
	}
}

func TestPrettyColoredIgnoresGlobalDetection(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	got := Pretty("1.2.3-dev", true)
	if want := "\x1b[33;1m1\x1b[0m"; !strings.HasPrefix(got, want) {
		t.Fatalf("Pretty = %q, want prefix %q", got, want)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Fatalf("suffix lost in %q", got)
	}
	if Pretty("dev", true) != "dev" {
		t.Fatalf("non-semver strings stay uncolored")
	}
}

func TestCurrentReflectsOverrides(t *testing.T) {
	orig := Current()
	defer func() {
		Version, GitCommit, GitMessage, BuildDate = orig.Version, orig.GitCommit, orig.GitMessage, orig.BuildDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("Current() = %+v", info)
	}
	if info.GitMessage != "" {
		t.Fatalf("GitMessage = %q, want empty", info.GitMessage)
	}
}
