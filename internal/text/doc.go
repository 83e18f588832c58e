// Package text implements the language-aware processing stack used by the
// pipeline's heuristic mode and by quality reporting: OCR artifact cleanup,
// sentence splitting with abbreviation handling, fixed-size sentence
// chunking, regex metadata extraction, and quality assessment of
// English/Hindi chunk pairs.
package text
