package shader

import (
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	src := "#version 410 core\n#include \"tonemap\"\nvoid main() {}\n"

	got, err := Expand(src, map[string]string{"tonemap": "vec3 toneMap(vec3 c) { return c; }"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if strings.Contains(got, "#include") {
		t.Errorf("include directive left in output:\n%s", got)
	}
	if !strings.HasPrefix(got, "#version 410 core\nvec3 toneMap") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestExpandMissingChunk(t *testing.T) {
	_, err := Expand("  #include \"lights\"\n", nil)
	if err == nil || !strings.Contains(err.Error(), "lights") {
		t.Fatalf("expected error naming the include, got %v", err)
	}
}

func TestExpandIgnoresInlineText(t *testing.T) {
	src := "// see #include \"x\" below\n"
	got, err := Expand(src, nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != src {
		t.Errorf("got %q, want unchanged", got)
	}
}
