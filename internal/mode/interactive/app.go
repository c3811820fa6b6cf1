// ABOUTME: Bubble Tea chat model: transcript, typing indicator, quick replies and slash commands
// ABOUTME: Replies are computed on submit and revealed after a randomized typing delay

package interactive

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/supportbot-go/internal/catalog"
	"github.com/mauromedda/supportbot-go/internal/commands"
	"github.com/mauromedda/supportbot-go/internal/export"
	"github.com/mauromedda/supportbot-go/internal/intent"
	"github.com/mauromedda/supportbot-go/internal/quickreply"
	"github.com/mauromedda/supportbot-go/internal/session"
	"github.com/mauromedda/supportbot-go/internal/stats"
)

// AppDeps bundles everything the chat needs.
type AppDeps struct {
	Session       *session.Session
	Bundle        *catalog.Bundle
	Stats         *stats.Counter         // nil disables /stats
	TypingDelay   time.Duration          // base pause before a reply; 0 shows replies at once
	TypingJitter  time.Duration          // random extra pause in [0, TypingJitter)
	Picker        intent.Picker          // jitter source; time-seeded when nil
	Reloads       <-chan *catalog.Bundle // catalog hot-reload notifications; may be nil
	MarkdownStyle string                 // glamour style name; empty detects from the terminal
}

// botReplyMsg reveals a reply once the typing delay has passed.
type botReplyMsg struct{ ex session.Exchange }

// reloadMsg announces that the catalog behind the session changed.
type reloadMsg struct{ bundle *catalog.Bundle }

// AppModel is the root Bubble Tea model of the chat.
type AppModel struct {
	deps     AppDeps
	bundle   *catalog.Bundle
	input    textinput.Model
	spinner  spinner.Model
	md       *MarkdownRenderer
	quick    quickReplies
	commands *commands.Registry
	lines    []chatLine
	typing   bool
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the chat model with the welcome message in place.
func NewAppModel(deps AppDeps) AppModel {
	if deps.Picker == nil {
		deps.Picker = intent.NewTimePicker()
	}

	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	m := AppModel{
		deps:     deps,
		bundle:   deps.Bundle,
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		md:       NewMarkdownRenderer(deps.MarkdownStyle),
		quick:    newQuickReplies(deps.Bundle.QuickReplies),
		commands: commands.NewRegistry(),
		width:    80,
	}
	if w := deps.Session.Welcome(); w != "" {
		m.lines = append(m.lines, chatLine{kind: lineBot, text: w})
	}
	return m
}

// Init starts the cursor blink and listens for catalog reloads.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForReload(m.deps.Reloads))
}

func waitForReload(ch <-chan *catalog.Bundle) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		b, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{bundle: b}
	}
}

// Update handles input, reply reveals, reloads and resizes.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case botReplyMsg:
		m.typing = false
		m.lines = append(m.lines, botLine(msg.ex))
		return m, nil

	case reloadMsg:
		m.bundle = msg.bundle
		m.quick = newQuickReplies(msg.bundle.QuickReplies).setQuery(m.input.Value())
		m.lines = append(m.lines, systemLine(fmt.Sprintf("Catalog %q reloaded.", msg.bundle.Name())))
		return m, waitForReload(m.deps.Reloads)

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		if m.quickVisible() {
			m.quick = m.quick.cycle(1)
		}
		return m, nil
	case tea.KeyShiftTab:
		if m.quickVisible() {
			m.quick = m.quick.cycle(-1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.quick = m.quick.setQuery(m.input.Value())
	return m, cmd
}

// submit sends the highlighted quick reply, or the typed text.
func (m AppModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if sel, ok := m.quick.current(); ok && m.quickVisible() {
		text = sel
	}
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		m.quick = m.quick.setQuery("")
		return m.command(text)
	}
	if m.typing {
		return m, nil
	}

	m.input.Reset()
	m.quick = m.quick.setQuery("")
	m.lines = append(m.lines, userLine(text))
	ex := m.deps.Session.Send(text)
	m.typing = true
	return m, tea.Batch(m.spinner.Tick, m.revealAfter(ex))
}

// command runs a slash command. Commands work even while a reply is pending.
func (m AppModel) command(text string) (tea.Model, tea.Cmd) {
	var quit, cleared bool
	ctx := &commands.CommandContext{
		Catalog:            m.bundle.Name(),
		Description:        m.bundle.Description,
		Categories:         m.bundle.Catalog.Len(),
		Messages:           len(m.deps.Session.History()),
		ClearTUI:           func() { cleared = true },
		ExitFn:             func() { quit = true },
		ExportConversation: m.exportHTML,
	}
	if c := m.deps.Stats; c != nil {
		ctx.Stats = func() string { return stats.Format(c.Summary()) }
		ctx.ResetStats = c.Reset
	}

	out, err := m.commands.Dispatch(ctx, text)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	if cleared {
		m.lines = m.lines[:0]
	}
	if err != nil {
		out = err.Error()
		if strings.HasPrefix(out, "unknown command") {
			out += ". Type /help for the list."
		}
	}
	m.lines = append(m.lines, systemLine(strings.TrimRight(out, "\n")))
	return m, nil
}

// exportHTML writes the session so far to path.
func (m AppModel) exportHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	t := export.Transcript{
		Title:     m.bundle.Name(),
		Welcome:   m.deps.Session.Welcome(),
		Notice:    m.bundle.Notice,
		Exchanges: m.deps.Session.History(),
	}
	if err := export.ExportHTML(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// revealAfter delivers the reply once the typing delay has elapsed.
func (m AppModel) revealAfter(ex session.Exchange) tea.Cmd {
	reveal := func(time.Time) tea.Msg { return botReplyMsg{ex: ex} }
	d := m.typingDelay()
	if d <= 0 {
		return func() tea.Msg { return reveal(time.Time{}) }
	}
	return tea.Tick(d, reveal)
}

func (m AppModel) typingDelay() time.Duration {
	d := m.deps.TypingDelay
	if d <= 0 {
		return 0
	}
	if ms := int(m.deps.TypingJitter / time.Millisecond); ms > 0 {
		d += time.Duration(m.deps.Picker.Intn(ms)) * time.Millisecond
	}
	return d
}

// conversationLen counts the user and bot bubbles on screen.
func (m AppModel) conversationLen() int {
	n := 0
	for _, l := range m.lines {
		if l.conversational() {
			n++
		}
	}
	return n
}

func (m AppModel) quickVisible() bool {
	return !m.typing && !m.quick.empty() && quickreply.Visible(m.conversationLen())
}

// View renders the header, the tail of the transcript that fits, the typing
// indicator, quick replies and the input box.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	s := Styles()

	header := s.Title.Render(m.bundle.Name())
	if m.bundle.Description != "" {
		header += "  " + s.Muted.Render(m.bundle.Description)
	}

	rendered := make([]string, len(m.lines))
	for i, l := range m.lines {
		rendered[i] = renderLine(l, m.width, m.md, m.bundle.Notice)
	}
	body := strings.Join(rendered, "\n\n")

	var bottom []string
	if m.typing {
		bottom = append(bottom, m.spinner.View()+s.Muted.Render("Assistant is typing…"))
	}
	if m.quickVisible() {
		bottom = append(bottom, m.quick.view(m.width))
	}
	bottom = append(bottom,
		s.Input.Width(max(10, m.width-2)).Render(m.input.View()),
		s.Muted.Render("enter send · tab quick replies · /help · esc quit"),
	)
	footer := strings.Join(bottom, "\n")

	if m.height > 0 {
		room := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
		body = tailLines(body, max(room, 1))
	}
	return header + "\n\n" + body + "\n\n" + footer
}

// tailLines keeps the last n lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
