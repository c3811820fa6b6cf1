// ABOUTME: Tests for print mode: argument and stdin input across all output formats
// ABOUTME: Uses buffers for stdio and a seeded engine over a small catalog

package print

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mauromedda/supportbot-go/internal/intent"
	"github.com/mauromedda/supportbot-go/internal/session"
)

func testSession() *session.Session {
	c := intent.MustCatalog("test", []intent.Category{
		{ID: "greeting", Patterns: []string{"hello"}, Responses: []string{"Hi!"}},
		{ID: "crisis", Patterns: []string{"hurt myself"}, Responses: []string{"Please call for help."}, Sensitive: true},
	}, []string{"Sorry?"})
	return session.New("p", intent.NewEngine(c, intent.WithPicker(intent.NewPicker(1))))
}

func run(t *testing.T, cfg Config, stdin string, args ...string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg.Stdin = strings.NewReader(stdin)
	cfg.Stdout = &out
	cfg.Stderr = &errOut
	if err := Run(context.Background(), cfg, testSession(), args); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return out.String(), errOut.String()
}

func TestRun_TextArgs(t *testing.T) {
	t.Parallel()

	out, _ := run(t, Config{}, "ignored", "hello", "there")
	if out != "Hi!\n" {
		t.Errorf("stdout = %q; want %q", out, "Hi!\n")
	}
}

func TestRun_TextStdinLines(t *testing.T) {
	t.Parallel()

	out, errOut := run(t, Config{Notice: "Call 112."}, "hello\n\n   \nzzqq\nI could hurt myself\n")
	want := "Hi!\nSorry?\nPlease call for help.\n"
	if out != want {
		t.Errorf("stdout = %q; want %q", out, want)
	}
	if errOut != "note: Call 112.\n" {
		t.Errorf("stderr = %q; want the notice once", errOut)
	}
}

func TestRun_JSON(t *testing.T) {
	t.Parallel()

	out, _ := run(t, Config{OutputFormat: "json", Notice: "Call 112."}, "hello\nI could hurt myself\n")

	var got jsonOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(got.Replies) != 2 {
		t.Fatalf("replies = %d; want 2", len(got.Replies))
	}
	if got.Replies[0].CategoryID != "greeting" || got.Replies[0].Phase != intent.PhaseExact {
		t.Errorf("first reply = %+v", got.Replies[0])
	}
	if !got.Replies[1].Sensitive || got.Notice != "Call 112." {
		t.Errorf("sensitive reply not flagged: %+v", got)
	}
}

func TestRun_JSONEmptyInput(t *testing.T) {
	t.Parallel()

	out, _ := run(t, Config{OutputFormat: "json"}, "")
	if strings.TrimSpace(out) != `{"replies":[]}` {
		t.Errorf("stdout = %q; want empty replies array", out)
	}
}

func TestRun_StreamJSON(t *testing.T) {
	t.Parallel()

	out, _ := run(t, Config{OutputFormat: "stream-json"}, "", "zzqq")

	var types []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var evt streamEvent
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			t.Fatalf("invalid event %q: %v", sc.Text(), err)
		}
		types = append(types, evt.Type)
		if evt.Type == "reply" && (evt.Reply == nil || evt.Reply.Phase != intent.PhaseFallback) {
			t.Errorf("reply event = %+v; want fallback", evt.Reply)
		}
	}
	if strings.Join(types, ",") != "start,reply,end" {
		t.Errorf("event types = %v", types)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, Config{Stdin: strings.NewReader("hello\n"), Stdout: &out}, testSession(), nil)
	if err == nil {
		t.Error("Run() with canceled context should fail")
	}
}
