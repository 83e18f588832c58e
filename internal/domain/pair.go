package domain

import (
	"errors"
	"strings"
)

// QualityGrade labels how usable an aligned chunk pair is as training data.
type QualityGrade string

// Possible quality grade values, best to worst.
const (
	QualityExcellent QualityGrade = "excellent"
	QualityGood      QualityGrade = "good"
	QualityFair      QualityGrade = "fair"
	QualityPoor      QualityGrade = "poor"
	QualityRejected  QualityGrade = "rejected"
)

// Score thresholds separating the grades.
const (
	excellentThreshold = 0.85
	goodThreshold      = 0.70
	fairThreshold      = 0.50
)

// Common validation errors for ChunkPair
var (
	ErrEmptyEnglishChunk   = errors.New("english chunk cannot be empty")
	ErrEmptyHindiChunk     = errors.New("hindi chunk cannot be empty")
	ErrInvalidQualityGrade = errors.New("invalid quality grade")
)

// ChunkPair is one aligned English/Hindi text chunk produced by the
// pipeline, together with its quality assessment. Quality fields are
// optional: pairs that never passed through scoring carry the zero values
// and marshal without them.
type ChunkPair struct {
	English string       `json:"english"`
	Hindi   string       `json:"hindi"`
	Grade   QualityGrade `json:"quality_grade,omitempty"`
	Score   float64      `json:"quality_score,omitempty"`
	Issues  []string     `json:"issues,omitempty"`
}

// NewChunkPair creates a ChunkPair from the given texts.
// Returns an error if validation fails.
func NewChunkPair(english, hindi string) (*ChunkPair, error) {
	pair := &ChunkPair{
		English: english,
		Hindi:   hindi,
	}

	if err := pair.Validate(); err != nil {
		return nil, err
	}

	return pair, nil
}

// Validate checks if the ChunkPair has valid data.
// Returns an error if any field fails validation.
func (p *ChunkPair) Validate() error {
	if strings.TrimSpace(p.English) == "" {
		return ErrEmptyEnglishChunk
	}

	if strings.TrimSpace(p.Hindi) == "" {
		return ErrEmptyHindiChunk
	}

	if p.Grade != "" && !isValidQualityGrade(p.Grade) {
		return ErrInvalidQualityGrade
	}

	return nil
}

// GradeFor maps a 0..1 quality score onto a grade.
func GradeFor(score float64) QualityGrade {
	switch {
	case score >= excellentThreshold:
		return QualityExcellent
	case score >= goodThreshold:
		return QualityGood
	case score >= fairThreshold:
		return QualityFair
	default:
		return QualityPoor
	}
}

// isValidQualityGrade checks if the given grade is a valid QualityGrade.
func isValidQualityGrade(grade QualityGrade) bool {
	switch grade {
	case QualityExcellent, QualityGood, QualityFair, QualityPoor, QualityRejected:
		return true
	default:
		return false
	}
}
