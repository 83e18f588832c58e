package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Artifacts common to text extracted from scanned government publications.
var (
	pageNumberRegex   = regexp.MustCompile(`(?m)^\d+\s*\n`)
	brokenWordRegex   = regexp.MustCompile(`([a-z])\s([a-z])\s([a-z])`)
	splitHyphenRegex  = regexp.MustCompile(`(\w)\s+-\s+(\w)`)
	multiSpaceRegex   = regexp.MustCompile(` {2,}`)
	multiNewlineRegex = regexp.MustCompile(`\n{3,}`)
	wikipediaRegex    = regexp.MustCompile(`(?i)©\s*Wikipedia`)
	reprintRegex      = regexp.MustCompile(`Reprint\s+\d{4}-\d{2}`)
	detailsRegex      = regexp.MustCompile(`For more details.*?(\n|$)`)
)

// CleanEnglish normalizes English text extracted from PDFs: leading page
// numbers, broken intra-word spacing, hyphenated words split across lines,
// runs of whitespace, and publisher boilerplate.
func CleanEnglish(s string) string {
	if s == "" {
		return ""
	}

	s = pageNumberRegex.ReplaceAllString(s, "")
	s = brokenWordRegex.ReplaceAllString(s, "${1}${2}${3}")
	s = splitHyphenRegex.ReplaceAllString(s, "${1}-${2}")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = multiNewlineRegex.ReplaceAllString(s, "\n\n")
	s = wikipediaRegex.ReplaceAllString(s, "")
	s = reprintRegex.ReplaceAllString(s, "")
	s = detailsRegex.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// CleanHindi normalizes Hindi text extracted from PDFs: leading page
// numbers, OCR-duplicated vowel signs and consonants, Unicode composition
// (NFC), runs of whitespace, and publisher boilerplate.
func CleanHindi(s string) string {
	if s == "" {
		return ""
	}

	s = pageNumberRegex.ReplaceAllString(s, "")
	s = collapseRuns(s, isVowelSign, 2)
	s = collapseRuns(s, isConsonant, 3)
	s = norm.NFC.String(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = multiNewlineRegex.ReplaceAllString(s, "\n\n")
	s = reprintRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "विकीपीडिया", "")

	return strings.TrimSpace(s)
}

// isVowelSign reports whether r is a Devanagari dependent vowel sign,
// anusvara, or visarga. OCR engines frequently emit these twice.
func isVowelSign(r rune) bool {
	return (r >= 'ा' && r <= 'ौ') || r == 'ं' || r == 'ः'
}

// isConsonant reports whether r is a Devanagari consonant.
func isConsonant(r rune) bool {
	return r >= 'क' && r <= 'ह'
}

// collapseRuns rewrites runs of a repeated rune to a single occurrence.
// Only runs of at least minRun runes satisfying class are collapsed;
// shorter runs pass through untouched, so legitimate doubled consonants
// survive while triplets and doubled vowel signs do not. Go's regexp has
// no backreferences, so this is a rune scan rather than a pattern.
func collapseRuns(s string, class func(rune) bool, minRun int) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		run := 1
		for i+run < len(runes) && runes[i+run] == r {
			run++
		}

		if class(r) && run >= minRun {
			b.WriteRune(r)
		} else {
			for j := 0; j < run; j++ {
				b.WriteRune(r)
			}
		}
		i += run
	}

	return b.String()
}
