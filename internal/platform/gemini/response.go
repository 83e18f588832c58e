package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/setu/internal/align"
	"github.com/phrazzld/setu/internal/domain"
)

// stripFences removes the markdown code fences models wrap around JSON
// replies despite instructions not to. A reply of the form
// "```json\n[...]\n```" reduces to the bare JSON body.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	body := parts[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

// parseAlignResponse decodes a JSON array of aligned chunks. Chunks with an
// empty side are dropped; a response with no usable chunks is an error.
func parseAlignResponse(raw string) ([]domain.ChunkPair, error) {
	var chunks []chunkSchema
	if err := json.Unmarshal([]byte(stripFences(raw)), &chunks); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", align.ErrInvalidResponse, err)
	}

	pairs := make([]domain.ChunkPair, 0, len(chunks))
	for _, c := range chunks {
		english := strings.TrimSpace(c.English)
		hindi := strings.TrimSpace(c.Hindi)
		if english == "" || hindi == "" {
			continue
		}
		pairs = append(pairs, domain.ChunkPair{English: english, Hindi: hindi})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no usable chunks in response", align.ErrInvalidResponse)
	}

	return pairs, nil
}

// parseCleanResponse decodes the clean-and-verify JSON object.
func parseCleanResponse(raw string) (*align.Cleaned, error) {
	var result cleanSchema
	if err := json.Unmarshal([]byte(stripFences(raw)), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", align.ErrInvalidResponse, err)
	}

	return &align.Cleaned{
		English:   result.English,
		Hindi:     result.Hindi,
		IsAligned: result.IsAligned,
		Issues:    result.IssuesFound,
	}, nil
}
