package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/phrazzld/setu/internal/domain"
)

// maxLineBytes bounds a single corpus line. Entries are paragraph-sized;
// anything beyond this is a malformed file, not data.
const maxLineBytes = 4 * 1024 * 1024

type rawEntry struct {
	English string `json:"english"`
	Hindi   string `json:"hindi"`
	Source  string `json:"source"`
}

// ReadEntries loads a JSONL corpus. Each non-blank line becomes one
// domain.Entry whose ID is the zero-based record index, the identity the
// checkpoint store tracks across runs. Blank lines are skipped without
// consuming an ID; malformed lines fail the whole read with the physical
// line number.
func ReadEntries(path string) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []domain.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var raw rawEntry
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("parse corpus line %d: %w", lineNo, err)
		}

		entries = append(entries, domain.Entry{
			ID:      len(entries),
			English: raw.English,
			Hindi:   raw.Hindi,
			Source:  raw.Source,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	return entries, nil
}
