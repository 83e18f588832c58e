package gemini

import (
	"encoding/json"
	"strings"
)

// chunkSchema represents a single aligned chunk pair in the API response.
type chunkSchema struct {
	// English is the English side of the aligned chunk.
	English string `json:"english"`

	// Hindi is the Hindi side of the aligned chunk.
	Hindi string `json:"hindi"`
}

// cleanSchema represents the clean-and-verify object in the API response.
type cleanSchema struct {
	// English is the cleaned English text.
	English string `json:"english"`

	// Hindi is the cleaned Hindi text.
	Hindi string `json:"hindi"`

	// IsAligned reports whether the two sides express the same content.
	IsAligned bool `json:"is_aligned"`

	// IssuesFound lists the problems the model corrected or could not fix.
	IssuesFound issueList `json:"issues_found"`
}

// issueList accepts either a JSON array of strings or a bare string.
// The prompt asks for an array, but models sometimes answer with a single
// string such as "none" when nothing was wrong.
type issueList []string

func (l *issueList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	one = strings.TrimSpace(one)
	if one == "" || strings.EqualFold(one, "none") {
		*l = nil
		return nil
	}
	*l = issueList{one}
	return nil
}
