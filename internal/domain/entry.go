package domain

import (
	"errors"
	"strings"
)

// Common validation errors for Entry
var (
	ErrNegativeEntryID  = errors.New("entry ID cannot be negative")
	ErrEmptyEnglishText = errors.New("english text cannot be empty")
	ErrEmptyHindiText   = errors.New("hindi text cannot be empty")
)

// Entry represents one English/Hindi record read from the input corpus.
// The ID is the zero-based position of the record in the input file and
// is the identity the checkpoint store tracks across resumed runs.
type Entry struct {
	ID      int    `json:"id"`
	English string `json:"english"`
	Hindi   string `json:"hindi"`
	Source  string `json:"source,omitempty"`
}

// NewEntry creates an Entry with the given id and texts.
// Returns an error if validation fails.
func NewEntry(id int, english, hindi, source string) (*Entry, error) {
	entry := &Entry{
		ID:      id,
		English: english,
		Hindi:   hindi,
		Source:  source,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the Entry has valid data.
// Returns an error if any field fails validation.
func (e *Entry) Validate() error {
	if e.ID < 0 {
		return ErrNegativeEntryID
	}

	if strings.TrimSpace(e.English) == "" {
		return ErrEmptyEnglishText
	}

	if strings.TrimSpace(e.Hindi) == "" {
		return ErrEmptyHindiText
	}

	return nil
}
