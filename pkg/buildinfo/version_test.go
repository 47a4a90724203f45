package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := UserAgent(); got != "paks-og/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version:", "commit:", "built:"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}
