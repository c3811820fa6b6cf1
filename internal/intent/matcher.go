// ABOUTME: Two-phase pattern matcher: exact substring scan, then fuzzy token scoring
// ABOUTME: Catalog order breaks every tie so results are deterministic

package intent

import (
	"fmt"
	"strings"

	"github.com/mauromedda/supportbot-go/internal/textmatch"
)

// AcceptThreshold is the fuzzy confidence a category must strictly exceed
// to be accepted.
const AcceptThreshold = 0.3

// Phase identifies which step of matching produced a result.
type Phase int

const (
	PhaseFallback Phase = iota // No category accepted
	PhaseExact                 // Pattern found as a substring
	PhaseFuzzy                 // Token similarity above AcceptThreshold
)

// String returns the human-readable name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseFallback:
		return "fallback"
	case PhaseExact:
		return "exact"
	case PhaseFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// MarshalText lets Phase serialize as its name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name written by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fallback":
		*p = PhaseFallback
	case "exact":
		*p = PhaseExact
	case "fuzzy":
		*p = PhaseFuzzy
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Match is the per-message matching result. It is never stored.
type Match struct {
	Index      int     // category position in the catalog; -1 when rejected
	CategoryID string  // empty when rejected
	Pattern    string  // pattern that produced the score
	Confidence float64 // 1.0 for exact hits, [0,1] otherwise
	Phase      Phase
}

// Accepted reports whether a category was selected.
func (m Match) Accepted() bool { return m.Index >= 0 }

// Matcher scores messages against a catalog.
type Matcher struct {
	catalog *Catalog
	lowered [][]string // lower-cased patterns, parallel to catalog.categories
}

// NewMatcher prepares a matcher for the given catalog.
func NewMatcher(c *Catalog) *Matcher {
	lowered := make([][]string, len(c.categories))
	for i, cat := range c.categories {
		lp := make([]string, len(cat.Patterns))
		for j, p := range cat.Patterns {
			lp[j] = strings.ToLower(p)
		}
		lowered[i] = lp
	}
	return &Matcher{catalog: c, lowered: lowered}
}

// Match runs the exact phase and, on a miss, the fuzzy phase.
func (m *Matcher) Match(message string) Match {
	if res, ok := m.MatchExact(message); ok {
		return res
	}
	return m.MatchFuzzy(message)
}

// MatchExact returns the first category, in catalog then pattern order,
// with a pattern contained case-insensitively in the trimmed message.
func (m *Matcher) MatchExact(message string) (Match, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	for i, patterns := range m.lowered {
		for j, p := range patterns {
			if strings.Contains(msg, p) {
				return Match{
					Index:      i,
					CategoryID: m.catalog.categories[i].ID,
					Pattern:    m.catalog.categories[i].Patterns[j],
					Confidence: 1.0,
					Phase:      PhaseExact,
				}, true
			}
		}
	}
	return Match{Index: -1, Phase: PhaseFallback}, false
}

// MatchFuzzy picks the category whose best pattern has the highest phrase
// confidence. Ties go to the earlier category. The result is accepted only
// when the confidence is strictly above AcceptThreshold; a rejected result
// still reports the best confidence seen.
func (m *Matcher) MatchFuzzy(message string) Match {
	best := Match{Index: -1, Phase: PhaseFallback}
	for i, cat := range m.catalog.categories {
		pm := textmatch.BestPatternMatch(message, cat.Patterns)
		if pm.Confidence > best.Confidence {
			best = Match{
				Index:      i,
				CategoryID: cat.ID,
				Pattern:    pm.Pattern,
				Confidence: pm.Confidence,
				Phase:      PhaseFuzzy,
			}
		}
	}

	if best.Confidence > AcceptThreshold {
		return best
	}
	return Match{Index: -1, Confidence: best.Confidence, Phase: PhaseFallback}
}
