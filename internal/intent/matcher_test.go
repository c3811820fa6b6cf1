// ABOUTME: Tests for the two-phase matcher
// ABOUTME: Covers exact priority, catalog-order tie-breaks, the fuzzy threshold and rejection

package intent

import (
	"math"
	"testing"
)

func TestMatcher_Exact(t *testing.T) {
	t.Parallel()

	m := NewMatcher(testCatalog())

	tests := []struct {
		name        string
		message     string
		wantID      string
		wantPattern string
	}{
		{"plain", "hello", "greeting", "hello"},
		{"case insensitive", "HeLLo there", "greeting", "hello"},
		{"substring in sentence", "I am so sad today", "sadness", "sad"},
		{"catalog order wins", "sad but I need help", "sadness", "sad"},
		{"earlier category wins over later pattern", "hello, I'm anxious", "greeting", "hello"},
		{"pattern order within category", "I feel anxious", "anxiety", "anxious"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := m.MatchExact(tt.message)
			if !ok {
				t.Fatalf("MatchExact(%q) missed", tt.message)
			}
			if got.CategoryID != tt.wantID || got.Pattern != tt.wantPattern {
				t.Errorf("MatchExact(%q) = %s/%q; want %s/%q", tt.message, got.CategoryID, got.Pattern, tt.wantID, tt.wantPattern)
			}
			if got.Confidence != 1.0 || got.Phase != PhaseExact {
				t.Errorf("MatchExact(%q) confidence=%v phase=%v; want 1.0 exact", tt.message, got.Confidence, got.Phase)
			}
		})
	}
}

func TestMatcher_ExactMiss(t *testing.T) {
	t.Parallel()

	m := NewMatcher(testCatalog())
	for _, msg := range []string{"", "zzqq xxyy", "I feel very anxius today"} {
		if got, ok := m.MatchExact(msg); ok {
			t.Errorf("MatchExact(%q) = %+v; want miss", msg, got)
		}
	}
}

func TestMatcher_Fuzzy(t *testing.T) {
	t.Parallel()

	m := NewMatcher(testCatalog())

	got := m.Match("I feel very anxius today")
	if got.Phase != PhaseFuzzy || got.CategoryID != "anxiety" {
		t.Fatalf("Match() = %+v; want fuzzy anxiety", got)
	}
	if got.Pattern != "feel anxious" {
		t.Errorf("Pattern = %q; want %q", got.Pattern, "feel anxious")
	}
	if math.Abs(got.Confidence-0.4) > 1e-9 {
		t.Errorf("Confidence = %v; want 0.4", got.Confidence)
	}
}

func TestMatcher_FuzzyTieKeepsCatalogOrder(t *testing.T) {
	t.Parallel()

	c := MustCatalog("tie", []Category{
		{ID: "first", Patterns: []string{"alpha beta"}, Responses: []string{"1"}},
		{ID: "second", Patterns: []string{"alpha gamma"}, Responses: []string{"2"}},
	}, []string{"fb"})

	got := NewMatcher(c).MatchFuzzy("alpha zzz")
	if got.CategoryID != "first" {
		t.Errorf("MatchFuzzy() = %+v; want first", got)
	}
}

func TestMatcher_FuzzyThresholdIsStrict(t *testing.T) {
	t.Parallel()

	c := MustCatalog("threshold", []Category{
		{ID: "abc", Patterns: []string{"aaa bbb ccc"}, Responses: []string{"r"}},
	}, []string{"fb"})
	m := NewMatcher(c)

	// 3 of 10 tokens match: exactly 0.3, rejected.
	rejected := m.Match("ccc bbb aaa w x y z u v t")
	if rejected.Accepted() {
		t.Errorf("Match() accepted at confidence %v; want rejection at 0.3", rejected.Confidence)
	}
	if math.Abs(rejected.Confidence-0.3) > 1e-9 {
		t.Errorf("rejected Confidence = %v; want 0.3", rejected.Confidence)
	}

	// 4 of 10: 0.4, accepted.
	accepted := m.Match("ccc bbb aaa aaa w x y z u v")
	if !accepted.Accepted() || accepted.CategoryID != "abc" {
		t.Errorf("Match() = %+v; want accepted abc", accepted)
	}
}

func TestMatcher_Rejects(t *testing.T) {
	t.Parallel()

	m := NewMatcher(testCatalog())
	for _, msg := range []string{"", "zzqq xxyy", "?!?!", "   "} {
		got := m.Match(msg)
		if got.Accepted() || got.Phase != PhaseFallback || got.CategoryID != "" {
			t.Errorf("Match(%q) = %+v; want rejection", msg, got)
		}
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseFallback, "fallback"},
		{PhaseExact, "exact"},
		{PhaseFuzzy, "fuzzy"},
		{Phase(42), "unknown(42)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q; want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestPhase_UnmarshalText(t *testing.T) {
	t.Parallel()

	for _, want := range []Phase{PhaseFallback, PhaseExact, PhaseFuzzy} {
		var got Phase
		if err := got.UnmarshalText([]byte(want.String())); err != nil || got != want {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", want, got, err, want)
		}
	}
	var p Phase
	if err := p.UnmarshalText([]byte("maybe")); err == nil {
		t.Error("UnmarshalText(maybe) succeeded")
	}
}

func TestMatcher_ExactTrimsMessage(t *testing.T) {
	t.Parallel()

	m := NewMatcher(MustCatalog("padded", []Category{
		{ID: "farewell", Patterns: []string{"bye "}, Responses: []string{"Take care."}},
	}, []string{"Sorry?"}))

	tests := []struct {
		message string
		wantHit bool
	}{
		{"bye now", true},
		{"  BYE for today", true},
		{"goodbye ", false},
		{"bye\t\n", false},
	}
	for _, tt := range tests {
		if _, ok := m.MatchExact(tt.message); ok != tt.wantHit {
			t.Errorf("MatchExact(%q) hit = %v; want %v", tt.message, ok, tt.wantHit)
		}
	}
}

// A catalog holding only the single-word pattern "anxious" cannot accept the
// misspelled sentence: one matched token out of five input tokens is 0.2.
func TestMatcher_SingleWordPatternBelowThreshold(t *testing.T) {
	t.Parallel()

	m := NewMatcher(MustCatalog("literal", []Category{
		{ID: "greeting", Patterns: []string{"hello"}, Responses: greetingResponses},
		{ID: "anxiety", Patterns: []string{"anxious"}, Responses: anxietyResponses},
	}, testFallback))

	got := m.Match("I feel very anxius today")
	if got.Accepted() || got.Phase != PhaseFallback {
		t.Fatalf("Match() = %+v; want fallback", got)
	}
	if math.Abs(got.Confidence-0.2) > 1e-9 {
		t.Errorf("Confidence = %v; want 0.2", got.Confidence)
	}

	e := NewEngine(m.catalog, WithPicker(NewPicker(3)))
	if r := e.Respond("I feel very anxius today"); !contains(testFallback, r) {
		t.Errorf("Respond() = %q; want a fallback response", r)
	}
}
