package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestDescribe(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Describe(false); got != "1.2.3" {
		t.Fatalf("Describe = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15"
	if got := Describe(false); got != "1.2.3 (commit abc123, built 2024-01-15)" {
		t.Fatalf("Describe = %q", got)
	}
}

func TestColoredKeepsText(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	for _, v := range []string{"0.1.0-dev", "2.0.1+build.7", "weird"} {
		Version = v
		if got := Colored(); got != v {
			t.Fatalf("Colored() = %q, want %q", got, v)
		}
	}
}
