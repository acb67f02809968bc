package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"1.2.3", "", "", "jsfront 1.2.3"},
		{"1.2.3", "abc123def456789", "", "jsfront 1.2.3 (commit abc123def456)"},
		{"0.1.0-dev", "abc", "2024-01-15T10:30:00Z", "jsfront 0.1.0-dev (commit abc, built 2024-01-15T10:30:00Z)"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, tt.commit, tt.date)
		if got := Describe(false); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	withVersion(t, "1.2.3-rc.1", "", "")
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("Colored() = %q", got)
	}

	withVersion(t, "snapshot", "", "")
	if got := Colored(); got != "snapshot" {
		t.Errorf("Colored() = %q, want plain text", got)
	}
}
