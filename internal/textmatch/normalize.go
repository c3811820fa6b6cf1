// ABOUTME: Text canonicalization for intent matching: lower-case, strip non-word runes, collapse spaces
// ABOUTME: Built on x/text rune transformers; total and idempotent for any input string

package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// isWordOrSpace reports whether r survives normalization. Word runes are
// letters, marks, numbers and the underscore.
func isWordOrSpace(r rune) bool {
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsMark(r) ||
		unicode.IsNumber(r) ||
		unicode.IsSpace(r)
}

// newNormalizer returns a fresh transformer chain. transform.Transformer values
// carry state, so each call gets its own.
func newNormalizer() transform.Transformer {
	return transform.Chain(
		runes.Map(unicode.ToLower),
		runes.Remove(runes.Predicate(func(r rune) bool { return !isWordOrSpace(r) })),
	)
}

// Normalize reduces text to its comparable form: lower-cased, with every rune
// that is neither a word rune nor whitespace removed, whitespace runs
// collapsed to a single space and the ends trimmed.
//
// Normalize(Normalize(s)) == Normalize(s) for every s. Invalid UTF-8 is
// decoded as U+FFFD, which is not a word rune and is dropped.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	mapped, _, err := transform.String(newNormalizer(), text)
	if err != nil {
		// The chain only maps and removes runes; fall back to the rune loop
		// so the function stays total.
		mapped = normalizeSlow(text)
	}
	return strings.Join(strings.Fields(mapped), " ")
}

func normalizeSlow(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		r = unicode.ToLower(r)
		if isWordOrSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens normalizes text and splits it on whitespace.
// The empty string yields a nil slice.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}
