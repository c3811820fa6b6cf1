// ABOUTME: Tests for text normalization
// ABOUTME: Covers punctuation stripping, whitespace collapsing, unicode and idempotence

package textmatch

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Hello World", "hello world"},
		{"strips punctuation", "What's up?!", "whats up"},
		{"collapses whitespace", "  good \t\n morning  ", "good morning"},
		{"punctuation only", "?!...,;:", ""},
		{"keeps digits and underscore", "order_42 #7", "order_42 7"},
		{"keeps accented letters", "Café Crème", "café crème"},
		{"keeps non-latin scripts", "Привет, мир!", "привет мир"},
		{"drops emoji", "hi 👋 there", "hi there"},
		{"drops invalid utf8", "ok\xff\xfego", "okgo"},
		{"unicode whitespace", "a\u3000\u00a0b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"!!!",
		"Hello, World!",
		"I feel very ANXIUS today...",
		"é.́ x",
		"İstanbul ǅemal",
		"ⅫⅡ roman",
		"tab\tsep\u0085next",
		"ok\xff\xfego",
		strings.Repeat("Long input, with punctuation! ", 200),
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	got := Tokens("  Need   HELP, please ")
	want := []string{"need", "help", "please"}
	if len(got) != len(want) {
		t.Fatalf("Tokens() = %q; want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokens()[%d] = %q; want %q", i, got[i], want[i])
		}
	}

	if toks := Tokens("?!"); len(toks) != 0 {
		t.Errorf("Tokens(%q) = %q; want empty", "?!", toks)
	}
}
