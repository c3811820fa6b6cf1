// ABOUTME: Tests for the markdown renderer wrapper around glamour
// ABOUTME: Verifies rendering, caching per width and the raw-text cases

package interactive

import (
	"strings"
	"testing"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer("notty")

	result := r.Render("Try **box breathing**: in for 4, hold for 4.", 60)
	if !strings.Contains(result, "box breathing") {
		t.Errorf("rendered output missing text: %q", result)
	}
	if strings.HasPrefix(result, "\n") || strings.HasSuffix(result, "\n") {
		t.Errorf("rendered output should be trimmed: %q", result)
	}
}

func TestMarkdownRenderer_CachesResults(t *testing.T) {
	r := NewMarkdownRenderer("notty")

	first := r.Render("**bold text**", 80)
	second := r.Render("**bold text**", 80)
	if first != second {
		t.Error("cached render should return identical results")
	}
	if len(r.cache) != 1 || len(r.renderers) != 1 {
		t.Errorf("cache sizes = %d/%d; want 1/1", len(r.cache), len(r.renderers))
	}

	r.Render("**bold text**", 40)
	if len(r.cache) != 2 || len(r.renderers) != 2 {
		t.Errorf("a new width should add a renderer and a cache entry; got %d/%d", len(r.cache), len(r.renderers))
	}
}

func TestMarkdownRenderer_EmptyInput(t *testing.T) {
	r := NewMarkdownRenderer("notty")

	if got := r.Render("", 80); got != "" {
		t.Errorf("Render(\"\") = %q; want empty", got)
	}
}
