// ABOUTME: HTML exporter for chat transcripts using Go html/template
// ABOUTME: Renders each exchange as a user and an assistant bubble with the match diagnostics

package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/mauromedda/supportbot-go/internal/intent"
	"github.com/mauromedda/supportbot-go/internal/session"
)

// Transcript is what gets exported.
type Transcript struct {
	Title     string
	Welcome   string
	Notice    string // repeated under replies from sensitive categories
	Exchanges []session.Exchange
}

// ExportHTML renders t as a standalone HTML document to w.
// Assistant bubbles carry a badge with the category, phase and confidence
// that produced them; fallback replies are marked as such.
func ExportHTML(t Transcript, w io.Writer) error {
	if t.Title == "" {
		t.Title = "Chat transcript"
	}
	return htmlTmpl.Execute(w, t)
}

// badge describes how a reply was chosen.
func badge(ex session.Exchange) string {
	switch ex.Phase {
	case intent.PhaseExact:
		return fmt.Sprintf("%s · exact", ex.CategoryID)
	case intent.PhaseFuzzy:
		return fmt.Sprintf("%s · fuzzy %.0f%%", ex.CategoryID, ex.Confidence*100)
	default:
		return "fallback"
	}
}

func phaseClass(ex session.Exchange) string { return ex.Phase.String() }

func clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04:05")
}

// escapeNewlines converts newlines to <br> for HTML rendering.
func escapeNewlines(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

var funcMap = template.FuncMap{
	"badge":          badge,
	"phaseClass":     phaseClass,
	"clock":          clock,
	"escapeNewlines": escapeNewlines,
}

var htmlTmpl = template.Must(template.New("transcript").Funcs(funcMap).Parse(htmlTemplate))

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{ .Title }}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    background: #1e1e2e;
    color: #cdd6f4;
    font-family: system-ui, sans-serif;
    font-size: 15px;
    line-height: 1.5;
    padding: 24px;
    max-width: 760px;
    margin: 0 auto;
  }
  h1 { font-size: 18px; margin-bottom: 20px; color: #cba6f7; }
  .message {
    margin-bottom: 14px;
    padding: 10px 14px;
    border-radius: 12px;
    max-width: 80%;
  }
  .message.user { margin-left: auto; background: #89b4fa22; border: 1px solid #89b4fa55; }
  .message.assistant { background: #a6e3a11a; border: 1px solid #a6e3a155; }
  .meta { font-size: 11px; color: #9399b2; margin-bottom: 4px; }
  .badge {
    display: inline-block;
    font-size: 11px;
    padding: 1px 6px;
    border-radius: 4px;
    margin-left: 6px;
    background: #31324488;
  }
  .badge.fuzzy { color: #f9e2af; }
  .badge.exact { color: #a6e3a1; }
  .badge.fallback { color: #f38ba8; }
  .notice {
    margin-top: 8px;
    padding: 6px 10px;
    border-left: 3px solid #f38ba8;
    color: #f38ba8;
    font-size: 13px;
  }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
{{- if .Welcome }}
<div class="message assistant">
  <div class="meta">Assistant</div>
  <div>{{ escapeNewlines .Welcome }}</div>
</div>
{{- end }}
{{- $notice := .Notice }}
{{- range .Exchanges }}
<div class="message user">
  <div class="meta">You {{ clock .At }}</div>
  <div>{{ escapeNewlines .User }}</div>
</div>
<div class="message assistant">
  <div class="meta">Assistant<span class="badge {{ phaseClass . }}">{{ badge . }}</span></div>
  <div>{{ escapeNewlines .Bot }}</div>
  {{- if and .Sensitive $notice }}
  <div class="notice">{{ $notice }}</div>
  {{- end }}
</div>
{{- end }}
</body>
</html>
`
