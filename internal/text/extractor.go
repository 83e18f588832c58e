package text

import (
	"fmt"
	"regexp"
)

// Chapter references in extracted matches, either language.
var (
	chapterEnglishRegex = regexp.MustCompile(`(?i)Chapter\s+(\d+)`)
	chapterHindiRegex   = regexp.MustCompile(`अध्याय\s+(\d+)`)
)

// DefaultPatterns returns the metadata patterns applied to chunk text when
// no custom set is configured: years, chapter, page, and exercise
// references in both languages. The Devanagari patterns carry no \b guard
// because Go's word boundary is ASCII-only and would never match before a
// Devanagari letter.
func DefaultPatterns() []string {
	return []string{
		`\b\d{4}\b`,
		`Chapter \d+`,
		`अध्याय \d+`,
		`\bPage \d+\b`,
		`पृष्ठ \d+`,
		`Exercise \d+`,
	}
}

// Extractor pulls structured metadata values out of chunk text using a
// fixed set of compiled patterns.
type Extractor struct {
	patterns []*regexp.Regexp
}

// NewExtractor compiles the given patterns. An invalid pattern fails the
// constructor rather than being skipped silently at match time.
func NewExtractor(patterns []string) (*Extractor, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &Extractor{patterns: compiled}, nil
}

// Extract returns every pattern match found in text, deduplicated with
// first-seen order preserved.
func (e *Extractor) Extract(text string) []string {
	seen := make(map[string]struct{})
	var matches []string
	for _, re := range e.patterns {
		for _, m := range re.FindAllString(text, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			matches = append(matches, m)
		}
	}
	return matches
}

// ChapterNumber pulls the first chapter reference out of extracted matches,
// in either language. Returns the bare number, or "" when none is present.
func ChapterNumber(matches []string) string {
	for _, m := range matches {
		if sub := chapterEnglishRegex.FindStringSubmatch(m); sub != nil {
			return sub[1]
		}
		if sub := chapterHindiRegex.FindStringSubmatch(m); sub != nil {
			return sub[1]
		}
	}
	return ""
}
