// ABOUTME: Quick-reply chip row: filtered by the current input, cycled with tab
// ABOUTME: Matched characters are underlined; labels are truncated to fit the terminal

package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/supportbot-go/internal/quickreply"
)

// maxChipWidth caps a single chip label, in terminal cells.
const maxChipWidth = 28

// quickReplies tracks the filtered suggestions and the highlighted one.
type quickReplies struct {
	set      *quickreply.Set
	query    string
	options  []quickreply.Option
	selected int // -1 when nothing is highlighted
}

func newQuickReplies(items []string) quickReplies {
	q := quickReplies{set: quickreply.New(items), selected: -1}
	q.options = q.set.Filter("")
	return q
}

// setQuery refilters when the input text changes.
func (q quickReplies) setQuery(query string) quickReplies {
	if query == q.query {
		return q
	}
	q.query = query
	q.options = q.set.Filter(query)
	q.selected = -1
	return q
}

// cycle moves the highlight by delta, wrapping around.
func (q quickReplies) cycle(delta int) quickReplies {
	n := len(q.options)
	if n == 0 {
		q.selected = -1
		return q
	}
	if q.selected < 0 {
		if delta < 0 {
			q.selected = n - 1
		} else {
			q.selected = 0
		}
		return q
	}
	q.selected = ((q.selected+delta)%n + n) % n
	return q
}

// current returns the highlighted suggestion.
func (q quickReplies) current() (string, bool) {
	if q.selected < 0 || q.selected >= len(q.options) {
		return "", false
	}
	return q.options[q.selected].Text, true
}

func (q quickReplies) empty() bool { return len(q.options) == 0 }

// view renders the chips, wrapping onto new rows at width.
func (q quickReplies) view(width int) string {
	if q.empty() {
		return ""
	}
	s := Styles()

	var rows []string
	var row []string
	rowWidth := 0
	for i, o := range q.options {
		label := highlight(quickreply.Label(o.Text, maxChipWidth), o.MatchedIndexes)
		style := s.Chip
		if i == q.selected {
			style = s.ChipSelected
		}
		chip := style.Render(label)
		w := lipgloss.Width(chip)
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, joinChips(row))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w + 1
	}
	rows = append(rows, joinChips(row))
	return strings.Join(rows, "\n")
}

// highlight underlines matched byte offsets that survived truncation.
func highlight(label string, matched []int) string {
	if len(matched) == 0 {
		return label
	}
	s := Styles()
	marks := make(map[int]bool, len(matched))
	for _, i := range matched {
		marks[i] = true
	}
	var b strings.Builder
	for i, r := range label {
		if marks[i] {
			b.WriteString(s.ChipMatch.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func joinChips(chips []string) string {
	spaced := make([]string, 0, 2*len(chips))
	for i, c := range chips {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
