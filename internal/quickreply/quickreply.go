// ABOUTME: Quick-reply suggestions shown at the start of a chat
// ABOUTME: Suggestions are ranked with sahilm/fuzzy as the user types and truncated to fit

package quickreply

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

// MaxVisibleMessages is the transcript length up to which suggestions are
// shown; once the conversation is underway they disappear.
const MaxVisibleMessages = 2

// Visible reports whether suggestions should be offered for a transcript
// holding messageCount messages.
func Visible(messageCount int) bool {
	return messageCount <= MaxVisibleMessages
}

// Option is one suggestion after filtering.
type Option struct {
	Text           string
	Index          int   // position in the catalog's list
	MatchedIndexes []int // byte offsets in Text matched by the query
}

// Set is an immutable list of suggestions.
type Set struct {
	items []string
}

// New creates a set, dropping blank and duplicate entries.
func New(items []string) *Set {
	seen := make(map[string]bool, len(items))
	s := &Set{}
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		s.items = append(s.items, it)
	}
	return s
}

// Len returns the number of suggestions.
func (s *Set) Len() int { return len(s.items) }

// Items returns the suggestions in catalog order.
func (s *Set) Items() []string { return append([]string(nil), s.items...) }

// Filter ranks suggestions against query. A blank query returns every
// suggestion in catalog order; otherwise only fuzzy matches are returned,
// best first.
func (s *Set) Filter(query string) []Option {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Option, len(s.items))
		for i, it := range s.items {
			out[i] = Option{Text: it, Index: i}
		}
		return out
	}

	results := fuzzy.Find(query, s.items)
	out := make([]Option, len(results))
	for i, r := range results {
		out[i] = Option{
			Text:           r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
		}
	}
	return out
}

// Label fits text into width terminal cells, ending with an ellipsis when
// it has to cut.
func Label(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}
