package buildinfo

import (
	"strings"
	"testing"
)

func TestResolvedPrefersLdflags(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v9.9.9"
	if got := Resolved(); got != "v9.9.9" {
		t.Errorf("Resolved() = %q, want v9.9.9", got)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", Template())
	}
}

func TestResolvedDefault(t *testing.T) {
	if Resolved() == "" {
		t.Error("Resolved() is empty")
	}
}
