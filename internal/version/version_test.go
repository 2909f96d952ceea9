package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	v := Get()
	if v == "" {
		t.Fatal("Get() returned empty version")
	}
	if strings.TrimSpace(v) != v {
		t.Errorf("Get() = %q, want no surrounding whitespace", v)
	}
}
