package grading

import (
	"strings"

	"github.com/tkondo/kioku-api/internal/domain"
)

// Verdict bands over the similarity score, evaluated in order. Bands are
// closed above: exactly 0.95 grades OK and exactly 0.75 grades MAYBE.
const (
	okThreshold    = 0.95
	maybeThreshold = 0.75
)

// Result carries the verdict together with the similarity score and both
// normalized strings, for debugging and UI display.
type Result struct {
	Verdict            domain.Verdict `json:"verdict"`
	Similarity         float64        `json:"similarity"`
	NormalizedAnswer   string         `json:"normalized_answer"`
	NormalizedExpected string         `json:"normalized_expected"`
}

// Grade scores a learner's answer against the reference answer and returns
// the three-way verdict. Comparison is case- and punctuation-insensitive.
// An empty (post-trim) answer grades NG unconditionally.
func Grade(answer, expected string) domain.Verdict {
	return Evaluate(answer, expected).Verdict
}

// Evaluate is the diagnostic variant of Grade. It returns the verdict along
// with the computed similarity and the normalized forms of both strings.
// Grade is defined in terms of Evaluate so the two entry points can never
// drift apart.
func Evaluate(answer, expected string) Result {
	normalizedAnswer := normalize(answer)
	normalizedExpected := normalize(expected)

	result := Result{
		NormalizedAnswer:   normalizedAnswer,
		NormalizedExpected: normalizedExpected,
	}

	if normalizedAnswer == "" {
		result.Verdict = domain.VerdictNG
		return result
	}

	result.Similarity = similarity(normalizedAnswer, normalizedExpected)

	switch {
	case result.Similarity >= okThreshold:
		result.Verdict = domain.VerdictOK
	case result.Similarity >= maybeThreshold:
		result.Verdict = domain.VerdictMaybe
	default:
		result.Verdict = domain.VerdictNG
	}

	return result
}

// normalize lowercases s, strips sentence punctuation and quote characters,
// and collapses internal whitespace runs to single spaces.
func normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '.', ',', '!', '?', ';', ':', '"', '\'':
			// Stripped
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// similarity computes 1 − d/max(len(a), len(b)) where d is the Levenshtein
// distance between the normalized strings. Identical strings short-circuit
// to 1.0.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the classic single-character edit distance between a
// and b with unit cost for insertion, deletion, and substitution, using the
// full dynamic-programming table.
func levenshtein(a, b []rune) int {
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := table[i-1][j] + 1
			insertion := table[i][j-1] + 1
			substitution := table[i-1][j-1] + cost

			minimum := deletion
			if insertion < minimum {
				minimum = insertion
			}
			if substitution < minimum {
				minimum = substitution
			}

			table[i][j] = minimum
		}
	}

	return table[len(a)][len(b)]
}
