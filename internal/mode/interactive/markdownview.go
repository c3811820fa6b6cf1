// ABOUTME: Markdown renderer wrapper around glamour for bot replies
// ABOUTME: Caches renderers per width and rendered results by content hash + width

package interactive

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer wraps glamour to render markdown with caching. It is used
// only from the Bubble Tea update loop and is not goroutine-safe.
type MarkdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	cache     map[string]string // "hash:width" -> rendered
}

// NewMarkdownRenderer creates a renderer. style names a glamour standard
// style ("dark", "light", "notty", ...); empty picks dark or light to match
// the terminal background lipgloss reports.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[string]string),
	}
}

// Render returns the terminal-styled rendering of the given markdown.
// On any renderer failure the raw text is returned.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.renderer(width)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}

	// glamour pads with blank lines and trailing spaces
	rendered = strings.TrimLeft(strings.TrimRight(rendered, "\n "), "\n")

	r.cache[key] = rendered
	return rendered
}

func (r *MarkdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers[width]; ok {
		return tr, nil
	}
	style := r.style
	if style == "" {
		style = "light"
		if lipgloss.HasDarkBackground() {
			style = "dark"
		}
	}
	tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	r.renderers[width] = tr
	return tr, nil
}

// cacheKey produces a string key from content hash and width.
func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
