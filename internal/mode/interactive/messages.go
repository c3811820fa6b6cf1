// ABOUTME: Chat transcript lines and their rendering as user, bot and system bubbles
// ABOUTME: Bot text goes through the markdown renderer; sensitive replies carry the catalog notice

package interactive

import (
	"strings"

	"github.com/mauromedda/supportbot-go/internal/session"
)

type lineKind int

const (
	lineUser lineKind = iota
	lineBot
	lineSystem // command output; not part of the conversation
)

// chatLine is one entry in the visible transcript.
type chatLine struct {
	kind      lineKind
	text      string
	sensitive bool
}

// conversational reports whether the line counts as a chat message.
func (l chatLine) conversational() bool { return l.kind != lineSystem }

func userLine(text string) chatLine { return chatLine{kind: lineUser, text: text} }

func botLine(ex session.Exchange) chatLine {
	return chatLine{kind: lineBot, text: ex.Bot, sensitive: ex.Sensitive}
}

func systemLine(text string) chatLine { return chatLine{kind: lineSystem, text: text} }

// renderLine draws a single transcript entry at the given width.
func renderLine(l chatLine, width int, md *MarkdownRenderer, notice string) string {
	s := Styles()
	switch l.kind {
	case lineUser:
		return s.UserLabel.Render("You") + "\n" + s.UserBubble.Width(bubbleWidth(width)).Render(l.text)
	case lineBot:
		var b strings.Builder
		b.WriteString(s.BotLabel.Render("Assistant"))
		b.WriteString("\n")
		b.WriteString(md.Render(l.text, bubbleWidth(width)))
		if l.sensitive && notice != "" {
			b.WriteString("\n")
			b.WriteString(s.Notice.Width(bubbleWidth(width)).Render(notice))
		}
		return b.String()
	default:
		return s.System.Width(bubbleWidth(width)).Render(l.text)
	}
}

// bubbleWidth leaves a margin on the right so bubbles read as chat.
func bubbleWidth(width int) int {
	const minWidth = 20
	w := width * 4 / 5
	if w < minWidth {
		return minWidth
	}
	return w
}
