package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}}", Version, Commit, Date} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() missing %q", want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "portfolio-cli/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
