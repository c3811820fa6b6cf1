// ABOUTME: Levenshtein edit distance between two tokens, measured in grapheme clusters
// ABOUTME: Full dynamic-programming table; tokens in this domain are single words

package textmatch

import "github.com/rivo/uniseg"

// graphemes splits s into user-perceived characters so that a base letter and
// its combining marks count as one edit unit.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Length returns the number of grapheme clusters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-character insertions, deletions or substitutions turning
// one into the other. It is symmetric and Distance(a, a) == 0.
func Distance(a, b string) int {
	return distance(graphemes(a), graphemes(b))
}

func distance(a, b []string) int {
	// matrix[j][i] is the distance between b[:j] and a[:i].
	matrix := make([][]int, len(b)+1)
	for j := range matrix {
		matrix[j] = make([]int, len(a)+1)
		matrix[j][0] = j
	}
	for i := 0; i <= len(a); i++ {
		matrix[0][i] = i
	}

	for j := 1; j <= len(b); j++ {
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[j][i] = min(
				matrix[j][i-1]+1,
				matrix[j-1][i]+1,
				matrix[j-1][i-1]+cost,
			)
		}
	}

	return matrix[len(b)][len(a)]
}
