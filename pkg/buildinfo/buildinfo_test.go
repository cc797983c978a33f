package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2024-01-01"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	s := String()
	for _, want := range []string{"v1.2.3", "abc123", "2024-01-01"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if got := Get(); got.Version != "v1.2.3" || got.Commit != "abc123" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Error("Template() should reference the command name")
	}
}
