// ABOUTME: Token and phrase similarity scoring on top of edit distance
// ABOUTME: Order-insensitive token overlap normalized by the longer token set

package textmatch

const (
	// TokenMatchThreshold is the similarity at or above which two tokens are
	// considered equivalent.
	TokenMatchThreshold = 0.7
)

// PatternMatch is the best pattern found for an input and its confidence.
type PatternMatch struct {
	Pattern    string
	Index      int // position in the pattern list; -1 when nothing scored
	Confidence float64
}

// TokenSimilarity returns (maxLen - Distance(a, b)) / maxLen, where maxLen is
// the longer token's length in grapheme clusters. Two empty tokens score 0,
// not 1.
func TokenSimilarity(a, b string) float64 {
	return tokenSimilarity(graphemes(a), graphemes(b))
}

func tokenSimilarity(a, b []string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	return float64(maxLen-distance(a, b)) / float64(maxLen)
}

// lengthsCompatible reports whether tokens of these lengths can reach
// TokenMatchThreshold. The distance is at least the length difference, so
// similarity never exceeds shorter/longer.
func lengthsCompatible(a, b int) bool {
	longer := max(a, b)
	if longer == 0 {
		return false
	}
	return float64(min(a, b))/float64(longer) >= TokenMatchThreshold
}

// PhraseConfidence scores how well input matches pattern. Both are
// normalized and tokenized; an input token counts as matched when some
// pattern token is at least TokenMatchThreshold similar to it. The matched
// count is divided by the larger of the two token counts, which keeps the
// result in [0, 1] and penalizes length mismatch in either direction.
func PhraseConfidence(input, pattern string) float64 {
	return phraseConfidence(splitGraphemes(Tokens(input)), splitGraphemes(Tokens(pattern)))
}

func splitGraphemes(tokens []string) [][]string {
	out := make([][]string, len(tokens))
	for i, tok := range tokens {
		out[i] = graphemes(tok)
	}
	return out
}

func phraseConfidence(in, pat [][]string) float64 {
	denom := max(len(in), len(pat))
	if denom == 0 {
		return 0
	}

	matched := 0
	for _, w := range in {
		for _, p := range pat {
			if !lengthsCompatible(len(w), len(p)) {
				continue
			}
			if tokenSimilarity(w, p) >= TokenMatchThreshold {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(denom)
}

// BestPatternMatch returns the pattern with the highest PhraseConfidence
// against input. Ties keep the earliest pattern. When no pattern scores above
// zero the result has an empty Pattern, Index -1 and Confidence 0.
func BestPatternMatch(input string, patterns []string) PatternMatch {
	in := splitGraphemes(Tokens(input))
	best := PatternMatch{Index: -1}
	for i, p := range patterns {
		c := phraseConfidence(in, splitGraphemes(Tokens(p)))
		if c > best.Confidence {
			best = PatternMatch{Pattern: p, Index: i, Confidence: c}
		}
	}
	return best
}
