// ABOUTME: Tests for CLI flag parsing and the settings overrides derived from flags
// ABOUTME: Uses go-cmp to compare the resulting Settings layer

package main

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mauromedda/supportbot-go/internal/config"
)

func intPtr(v int) *int { return &v }

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want *config.Settings
	}{
		{
			name: "none",
			argv: nil,
			want: &config.Settings{},
		},
		{
			name: "catalog and seed",
			argv: []string{"--catalog", "support", "--seed", "42", "--format", "json"},
			want: &config.Settings{Catalog: "support", Seed: 42, OutputFormat: "json"},
		},
		{
			name: "verbose wins over log-level",
			argv: []string{"--log-level", "warn", "--verbose"},
			want: &config.Settings{LogLevel: "debug"},
		},
		{
			name: "no-delay",
			argv: []string{"--no-delay", "--typing-delay", "300"},
			want: &config.Settings{TypingDelay: intPtr(0)},
		},
		{
			name: "typing delay",
			argv: []string{"--typing-delay", "300", "--watch", "--transcript", "/tmp/t.jsonl"},
			want: &config.Settings{TypingDelay: intPtr(300), Watch: true, Transcript: "/tmp/t.jsonl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args, err := parseFlags(tt.argv, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if diff := cmp.Diff(tt.want, args.overrides()); diff != "" {
				t.Errorf("overrides() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFlags_Rest(t *testing.T) {
	t.Parallel()

	args, err := parseFlags([]string{"--print", "where", "is", "my", "order"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !args.print {
		t.Error("print = false")
	}
	if diff := cmp.Diff([]string{"where", "is", "my", "order"}, args.rest); diff != "" {
		t.Errorf("rest mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags([]string{"--yolo"}, io.Discard); err == nil {
		t.Error("unknown flag should fail")
	}
}
