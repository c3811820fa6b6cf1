// ABOUTME: Headless print mode with text, JSON, and stream-JSON formatters
// ABOUTME: Answers the command-line message, or each non-blank stdin line, and exits

package print

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mauromedda/supportbot-go/internal/config"
	"github.com/mauromedda/supportbot-go/internal/session"
)

// Config configures print mode execution.
type Config struct {
	OutputFormat string // "text" (default), "json", "stream-json"
	Notice       string // shown after replies from sensitive categories

	Stdin  io.Reader // defaults to os.Stdin
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

// Run answers args joined as one message; with no args it answers every
// non-blank line read from stdin, one reply per line.
func Run(ctx context.Context, cfg Config, sess *session.Session, args []string) error {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	f := newFormatter(cfg)
	f.start()

	if len(args) > 0 {
		f.reply(sess.Send(strings.Join(args, " ")))
		return f.end()
	}

	scanner := bufio.NewScanner(cfg.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f.reply(sess.Send(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return f.end()
}

// formatter abstracts output formatting.
type formatter interface {
	start()
	reply(ex session.Exchange)
	end() error
}

func newFormatter(cfg Config) formatter {
	switch cfg.OutputFormat {
	case config.FormatJSON:
		return &jsonFormatter{out: cfg.Stdout, notice: cfg.Notice}
	case config.FormatStreamJSON:
		return &streamJSONFormatter{out: cfg.Stdout, notice: cfg.Notice}
	default:
		return &textFormatter{out: cfg.Stdout, errOut: cfg.Stderr, notice: cfg.Notice}
	}
}

// textFormatter prints one reply per line; notices go to stderr.
type textFormatter struct {
	out    io.Writer
	errOut io.Writer
	notice string
	err    error
}

func (f *textFormatter) start() {}

func (f *textFormatter) reply(ex session.Exchange) {
	if f.err != nil {
		return
	}
	_, f.err = fmt.Fprintln(f.out, ex.Bot)
	if ex.Sensitive && f.notice != "" {
		fmt.Fprintf(f.errOut, "note: %s\n", f.notice)
	}
}

func (f *textFormatter) end() error { return f.err }

// jsonFormatter collects all replies and writes a single JSON object at the end.
type jsonFormatter struct {
	out       io.Writer
	notice    string
	replies   []session.Exchange
	sensitive bool
}

type jsonOutput struct {
	Replies []session.Exchange `json:"replies"`
	Notice  string             `json:"notice,omitempty"`
}

func (f *jsonFormatter) start() {}

func (f *jsonFormatter) reply(ex session.Exchange) {
	f.replies = append(f.replies, ex)
	f.sensitive = f.sensitive || ex.Sensitive
}

func (f *jsonFormatter) end() error {
	out := jsonOutput{Replies: f.replies}
	if out.Replies == nil {
		out.Replies = []session.Exchange{}
	}
	if f.sensitive {
		out.Notice = f.notice
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding replies: %w", err)
	}
	_, err = fmt.Fprintln(f.out, string(data))
	return err
}

// streamJSONFormatter outputs one JSON line per event.
type streamJSONFormatter struct {
	out    io.Writer
	notice string
	err    error
}

type streamEvent struct {
	Type   string            `json:"type"`
	Reply  *session.Exchange `json:"reply,omitempty"`
	Notice string            `json:"notice,omitempty"`
}

func (f *streamJSONFormatter) start() { f.write(streamEvent{Type: "start"}) }

func (f *streamJSONFormatter) reply(ex session.Exchange) {
	evt := streamEvent{Type: "reply", Reply: &ex}
	if ex.Sensitive {
		evt.Notice = f.notice
	}
	f.write(evt)
}

func (f *streamJSONFormatter) end() error {
	f.write(streamEvent{Type: "end"})
	return f.err
}

func (f *streamJSONFormatter) write(evt streamEvent) {
	if f.err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		f.err = fmt.Errorf("encoding event: %w", err)
		return
	}
	_, f.err = fmt.Fprintln(f.out, string(data))
}
