package text

import (
	"regexp"
	"strings"
)

// abbreviations whose trailing periods must not be read as sentence
// boundaries. Their dots are swapped for a guard before splitting and
// restored afterwards.
var abbreviations = []string{
	"Dr.", "Mr.", "Mrs.", "Ms.", "U.S.", "U.K.", "etc.", "Ltd.", "Inc.", "Co.",
}

// dotGuard stands in for a protected period during the boundary scan.
// It contains no sentence punctuation and no uppercase ASCII, so guarded
// abbreviations can never produce a boundary.
const dotGuard = "<dot>"

// hindiBoundaryRegex matches a Hindi sentence terminator followed by
// whitespace. Purna viram (danda) ends most sentences; PIB releases also
// mix in Latin punctuation.
var hindiBoundaryRegex = regexp.MustCompile(`[।.!?]\s+`)

// SplitEnglish splits English text into sentences. A boundary is a period,
// exclamation mark, or question mark followed by whitespace and an
// uppercase letter; the punctuation stays attached to its sentence.
// Common abbreviations (Dr., U.S., etc.) do not end a sentence.
func SplitEnglish(text string) []string {
	for _, abbr := range abbreviations {
		text = strings.ReplaceAll(text, abbr, strings.ReplaceAll(abbr, ".", dotGuard))
	}

	var parts []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}

		// Consume the whitespace run after the terminator; a boundary
		// needs at least one whitespace rune and then an uppercase letter.
		next := i + 1
		for next < len(runes) && isSpaceRune(runes[next]) {
			next++
		}
		if next == i+1 || next >= len(runes) || runes[next] < 'A' || runes[next] > 'Z' {
			continue
		}

		parts = append(parts, string(runes[start:i+1]))
		start = next
		i = next - 1
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ReplaceAll(p, dotGuard, ".")
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// SplitHindi splits Hindi text into sentences on purna viram or Latin
// terminators followed by whitespace. The terminator is dropped from the
// sentence; a terminator flush against the end of the text stays attached.
func SplitHindi(text string) []string {
	parts := hindiBoundaryRegex.Split(text, -1)

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// isSpaceRune mirrors the \s character class over runes.
func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
