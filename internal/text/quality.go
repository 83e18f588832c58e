package text

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Hard validity limits for chunk pairs. Lengths are rune counts, since
// Devanagari is multi-byte in UTF-8.
const (
	DefaultMinChunkLength = 20
	maxEnglishLength      = 1000
	maxHindiLength        = 1500
	minLengthRatio        = 0.5
	maxLengthRatio        = 3.5
	minDevanagariShare    = 0.3
)

// metadataKeywords near the start of the English side mark chunks polluted
// with publication boilerplate.
var metadataKeywords = []string{
	"Reprint 20", "© Wikipedia", "For more details",
	"Exercise", "Question", "Answer",
}

// Assessment is the outcome of scoring one English/Hindi chunk pair.
// Valid means every hard rule passed; Score is computed either way.
type Assessment struct {
	Valid  bool
	Score  float64
	Issues []string
}

// Assessor scores chunk pairs for training-data quality. The zero value
// applies the default minimum length.
type Assessor struct {
	// MinLength is the minimum rune count required on both sides.
	// Non-positive values fall back to DefaultMinChunkLength.
	MinLength int
}

// Assess runs the hard validity rules and the weighted quality score over
// one pair. Every failed rule contributes an issue.
func (a Assessor) Assess(english, hindi string) Assessment {
	var issues []string

	englishLen := utf8.RuneCountInString(english)
	hindiLen := utf8.RuneCountInString(hindi)
	minLen := a.minLength()

	if englishLen < minLen {
		issues = append(issues, fmt.Sprintf("english shorter than %d chars", minLen))
	}
	if hindiLen < minLen {
		issues = append(issues, fmt.Sprintf("hindi shorter than %d chars", minLen))
	}
	if englishLen > maxEnglishLength {
		issues = append(issues, fmt.Sprintf("english longer than %d chars", maxEnglishLength))
	}
	if hindiLen > maxHindiLength {
		issues = append(issues, fmt.Sprintf("hindi longer than %d chars", maxHindiLength))
	}

	ratio := LengthRatio(english, hindi)
	if ratio < minLengthRatio || ratio > maxLengthRatio {
		issues = append(issues, fmt.Sprintf("length ratio %.2f out of range", ratio))
	}

	if DevanagariShare(hindi) < minDevanagariShare {
		issues = append(issues, "hindi side is not predominantly devanagari")
	}

	if kw := metadataKeyword(english); kw != "" {
		issues = append(issues, fmt.Sprintf("metadata detected: %s", kw))
	}

	if strings.TrimSpace(english) == "" || strings.TrimSpace(hindi) == "" {
		issues = append(issues, "empty or whitespace-only side")
	}

	return Assessment{
		Valid:  len(issues) == 0,
		Score:  score(english, hindi),
		Issues: issues,
	}
}

func (a Assessor) minLength() int {
	if a.MinLength > 0 {
		return a.MinLength
	}
	return DefaultMinChunkLength
}

// LengthRatio is the Hindi to English rune-count ratio. Hindi prose
// typically runs 1.2 to 2.2 times the English length. Empty English
// yields 0.
func LengthRatio(english, hindi string) float64 {
	e := utf8.RuneCountInString(english)
	if e == 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(hindi)) / float64(e)
}

// DevanagariShare reports the fraction of runes in the Devanagari block,
// ignoring spaces and newlines. Empty input counts as 0.
func DevanagariShare(s string) float64 {
	devanagari, total := devanagariCounts(s)
	if total == 0 {
		return 0
	}
	return float64(devanagari) / float64(total)
}

// score is the weighted 0..1 quality score. Each factor multiplies the
// running score by (base + weight*factor): the length ratio and English
// length carry 20% each, the Devanagari share 30%, and character
// diversity 10%.
func score(english, hindi string) float64 {
	s := 1.0

	ratio := LengthRatio(english, hindi)
	ratioScore := 0.3
	switch {
	case ratio >= 1.2 && ratio <= 2.2:
		ratioScore = 1.0
	case (ratio >= 0.8 && ratio < 1.2) || (ratio > 2.2 && ratio <= 2.8):
		ratioScore = 0.7
	}
	s *= 0.8 + 0.2*ratioScore

	hindiScore := 0.0
	if devanagari, total := devanagariCounts(hindi); total > 0 {
		share := float64(devanagari) / float64(total)
		switch {
		case share >= 0.5:
			hindiScore = 1.0
		case share >= 0.3:
			hindiScore = 0.7
		default:
			hindiScore = 0.3
		}
	}
	s *= 0.7 + 0.3*hindiScore

	englishLen := utf8.RuneCountInString(english)
	lengthScore := 0.4
	switch {
	case englishLen >= 80 && englishLen <= 400:
		lengthScore = 1.0
	case (englishLen >= 40 && englishLen < 80) || (englishLen > 400 && englishLen <= 600):
		lengthScore = 0.7
	}
	s *= 0.8 + 0.2*lengthScore

	englishUnique := uniqueRunes(strings.ToLower(english))
	hindiUnique := uniqueRunes(hindi)
	diversityScore := 0.4
	switch {
	case englishUnique >= 20 && hindiUnique >= 20:
		diversityScore = 1.0
	case englishUnique >= 10 && hindiUnique >= 10:
		diversityScore = 0.7
	}
	s *= 0.9 + 0.1*diversityScore

	return math.Round(s*1000) / 1000
}

// devanagariCounts returns the number of Devanagari runes in s and the
// total rune count excluding spaces and newlines.
func devanagariCounts(s string) (devanagari, total int) {
	for _, r := range s {
		if r == ' ' || r == '\n' {
			continue
		}
		total++
		if r >= 'ऀ' && r <= 'ॿ' {
			devanagari++
		}
	}
	return devanagari, total
}

// metadataKeyword reports the first boilerplate keyword found in the
// opening 50 runes of the English side, or "" when clean.
func metadataKeyword(english string) string {
	runes := []rune(english)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	head := string(runes)

	for _, kw := range metadataKeywords {
		if strings.Contains(head, kw) {
			return kw
		}
	}
	return ""
}

// uniqueRunes counts distinct runes in s.
func uniqueRunes(s string) int {
	set := make(map[rune]struct{})
	for _, r := range s {
		set[r] = struct{}{}
	}
	return len(set)
}
