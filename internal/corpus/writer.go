package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phrazzld/setu/internal/domain"
)

// Writer appends chunk pairs to a JSONL output file, one JSON object per
// line with Devanagari kept as raw UTF-8.
type Writer struct {
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewWriter opens path for writing, creating parent directories as needed.
// With appendMode true an existing file is extended, which is how resumed
// runs keep chunks from earlier sessions; otherwise the file is truncated.
func NewWriter(path string, appendMode bool) (*Writer, error) {
	f, err := openOutputFile(path, appendMode)
	if err != nil {
		return nil, err
	}

	buf := bufio.NewWriter(f)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	return &Writer{file: f, buf: buf, enc: enc}, nil
}

// Write appends one pair as a single JSON line.
func (w *Writer) Write(pair domain.ChunkPair) error {
	if err := w.enc.Encode(pair); err != nil {
		return fmt.Errorf("encode chunk pair: %w", err)
	}
	return nil
}

// Flush pushes buffered lines to the OS. The pipeline flushes alongside
// every checkpoint save so the output file never trails the processed set.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush output: %w", flushErr)
	}
	return closeErr
}

// openOutputFile opens path with create semantics shared by the JSONL and
// CSV writers.
func openOutputFile(path string, appendMode bool) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return f, nil
}
