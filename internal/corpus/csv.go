package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/phrazzld/setu/internal/domain"
)

// utf8BOM leads new report files so spreadsheet tools detect UTF-8 and
// render Devanagari instead of mojibake.
const utf8BOM = "\xef\xbb\xbf"

// reportHeaders are the quality report columns, one row per chunk pair.
var reportHeaders = []string{
	"entry_id", "chunk_id", "english", "hindi",
	"grade", "score", "char_count_eng", "char_count_hin", "length_ratio",
	"chapter_num", "regex_matches", "issues", "created_at",
}

// ReportRow is one quality report line for a single chunk pair.
type ReportRow struct {
	EntryID int
	ChunkID int
	Pair    domain.ChunkPair
	Ratio   float64
	Chapter string
	Matches []string
}

// ReportWriter emits the CSV quality report.
type ReportWriter struct {
	file *os.File
	csv  *csv.Writer
}

// NewReportWriter opens the report at path. A fresh or truncated file gets
// the BOM and header row; appending to a non-empty file does not repeat
// them.
func NewReportWriter(path string, appendMode bool) (*ReportWriter, error) {
	f, err := openOutputFile(path, appendMode)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat report file: %w", err)
	}

	w := &ReportWriter{file: f, csv: csv.NewWriter(f)}

	if info.Size() == 0 {
		if _, err := f.WriteString(utf8BOM); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write report BOM: %w", err)
		}
		if err := w.csv.Write(reportHeaders); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write report header: %w", err)
		}
	}

	return w, nil
}

// Write appends one report row.
func (w *ReportWriter) Write(row ReportRow) error {
	matches := row.Matches
	if matches == nil {
		matches = []string{}
	}
	matchesJSON, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encode regex matches: %w", err)
	}

	record := []string{
		strconv.Itoa(row.EntryID),
		strconv.Itoa(row.ChunkID),
		row.Pair.English,
		row.Pair.Hindi,
		string(row.Pair.Grade),
		strconv.FormatFloat(row.Pair.Score, 'f', 3, 64),
		strconv.Itoa(utf8.RuneCountInString(row.Pair.English)),
		strconv.Itoa(utf8.RuneCountInString(row.Pair.Hindi)),
		strconv.FormatFloat(row.Ratio, 'f', 2, 64),
		row.Chapter,
		string(matchesJSON),
		strings.Join(row.Pair.Issues, "; "),
		time.Now().UTC().Format(time.RFC3339),
	}

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

// Flush pushes buffered rows to the OS.
func (w *ReportWriter) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *ReportWriter) Close() error {
	flushErr := w.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
