package segment

import (
	"strings"
	"unicode"
)

// scanState tracks whether the scanner is inside a quoted region. Each quote
// character toggles the state; an unmatched quote therefore leaves the rest
// of the scan "inside a quote". That is a known limitation inherited from
// the boundary rules, not something the scanner tries to repair.
type scanState int

const (
	outsideQuote scanState = iota
	insideQuote
)

// abbreviations is the fixed table of trailing words whose period does not
// end a sentence. Matching is case-insensitive.
var abbreviations = map[string]struct{}{
	"mr.":   {},
	"mrs.":  {},
	"dr.":   {},
	"ms.":   {},
	"prof.": {},
	"etc.":  {},
	"vs.":   {},
	"e.g.":  {},
	"i.e.":  {},
	"u.s.":  {},
	"u.k.":  {},
	"ph.d.": {},
	"jr.":   {},
	"sr.":   {},
	"inc.":  {},
	"ltd.":  {},
	"co.":   {},
	"a.m.":  {},
	"p.m.":  {},
	"no.":   {},
	"vol.":  {},
}

// Split breaks text into an ordered list of sentences.
//
// Input containing a newline is treated as line-oriented: each non-blank
// trimmed line becomes exactly one sentence. Otherwise whitespace runs are
// normalized to single spaces and a single left-to-right scan looks for
// sentence boundaries at '.', '!', and '?' outside quoted regions, with
// heuristics to reject boundaries inside abbreviations such as "Dr. Smith".
//
// Empty or whitespace-only input yields an empty list. Output order is input
// order; no deduplication is performed.
func Split(text string) []string {
	if strings.ContainsRune(text, '\n') {
		return splitLines(text)
	}

	text = normalizeWhitespace(text)
	if text == "" {
		return nil
	}

	var (
		sentences []string
		current   strings.Builder
		state     = outsideQuote
		runes     = []rune(text)
	)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r == '"' || r == '\'' {
			if state == outsideQuote {
				state = insideQuote
			} else {
				state = outsideQuote
			}
			continue
		}

		if state == insideQuote {
			continue
		}

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if !boundaryFollows(runes, i) {
			continue
		}

		if r == '.' && isAbbreviation(trailingWord(current.String())) {
			continue
		}

		if sentence := strings.TrimSpace(current.String()); sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()

		// Skip the single space that separates this sentence from the next.
		if i+1 < len(runes) && runes[i+1] == ' ' {
			i++
		}
	}

	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// splitLines is the fast path for line-oriented input from a
// sentence-per-line upstream source: each non-blank trimmed line is exactly
// one sentence.
func splitLines(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sentences = append(sentences, line)
		}
	}
	return sentences
}

// normalizeWhitespace collapses whitespace runs to single spaces and trims
// the ends.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// boundaryFollows reports whether the terminator at index i is followed by
// something that can start a new sentence: end of input, or a space followed
// by end of input, an uppercase letter, or a digit. This rejects boundaries
// inside abbreviated names mid-sentence.
func boundaryFollows(runes []rune, i int) bool {
	next := i + 1
	if next >= len(runes) {
		return true
	}

	if runes[next] != ' ' {
		return false
	}

	after := next + 1
	if after >= len(runes) {
		return true
	}

	return unicode.IsUpper(runes[after]) || unicode.IsDigit(runes[after])
}

// trailingWord returns the last whitespace-delimited token of s with
// surrounding quote characters stripped.
func trailingWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], `"'`)
}

// isAbbreviation reports whether the trailing word suppresses a period
// boundary: either a known abbreviation from the fixed table, or a short
// token of at most two characters ending in '.' (initials such as "A.").
func isAbbreviation(word string) bool {
	if word == "" {
		return false
	}

	lower := strings.ToLower(word)
	if _, ok := abbreviations[lower]; ok {
		return true
	}

	return len([]rune(lower)) <= 2 && strings.HasSuffix(lower, ".")
}
