package gemini

import (
	"testing"

	"github.com/phrazzld/setu/internal/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare_json_passes_through",
			input: `[{"english": "a", "hindi": "b"}]`,
			want:  `[{"english": "a", "hindi": "b"}]`,
		},
		{
			name:  "json_fence_with_language_tag",
			input: "```json\n[{\"english\": \"a\"}]\n```",
			want:  `[{"english": "a"}]`,
		},
		{
			name:  "fence_without_language_tag",
			input: "```\n{\"english\": \"a\"}\n```",
			want:  `{"english": "a"}`,
		},
		{
			name:  "trailing_commentary_after_fence_is_dropped",
			input: "```json\n[1, 2]\n```\nHope this helps!",
			want:  "[1, 2]",
		},
		{
			name:  "surrounding_whitespace_is_trimmed",
			input: "  \n[1]\n  ",
			want:  "[1]",
		},
		{
			name:  "empty_string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.input))
		})
	}
}

func TestParseAlignResponse(t *testing.T) {
	t.Run("valid_array_returns_pairs_in_order", func(t *testing.T) {
		raw := `[
			{"english": "The scheme was launched in 2019.", "hindi": "योजना 2019 में शुरू की गई थी।"},
			{"english": "It covers all districts.", "hindi": "इसमें सभी जिले शामिल हैं।"}
		]`

		pairs, err := parseAlignResponse(raw)
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, "The scheme was launched in 2019.", pairs[0].English)
		assert.Equal(t, "योजना 2019 में शुरू की गई थी।", pairs[0].Hindi)
		assert.Equal(t, "It covers all districts.", pairs[1].English)
	})

	t.Run("fenced_array_is_unwrapped", func(t *testing.T) {
		raw := "```json\n[{\"english\": \"One.\", \"hindi\": \"एक।\"}]\n```"

		pairs, err := parseAlignResponse(raw)
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "One.", pairs[0].English)
	})

	t.Run("chunks_with_empty_side_are_dropped", func(t *testing.T) {
		raw := `[
			{"english": "Kept.", "hindi": "रखा।"},
			{"english": "", "hindi": "खोया।"},
			{"english": "Lost.", "hindi": "   "}
		]`

		pairs, err := parseAlignResponse(raw)
		require.NoError(t, err)
		require.Len(t, pairs, 1, "only the chunk with both sides present should survive")
		assert.Equal(t, "Kept.", pairs[0].English)
	})

	t.Run("response_with_no_usable_chunks_is_an_error", func(t *testing.T) {
		raw := `[{"english": "", "hindi": ""}]`

		pairs, err := parseAlignResponse(raw)
		assert.Nil(t, pairs)
		require.Error(t, err)
		assert.ErrorIs(t, err, align.ErrInvalidResponse)
		assert.Contains(t, err.Error(), "no usable chunks")
	})

	t.Run("empty_array_is_an_error", func(t *testing.T) {
		_, err := parseAlignResponse(`[]`)
		assert.ErrorIs(t, err, align.ErrInvalidResponse)
	})

	t.Run("object_instead_of_array_is_an_error", func(t *testing.T) {
		_, err := parseAlignResponse(`{"english": "a", "hindi": "b"}`)
		assert.ErrorIs(t, err, align.ErrInvalidResponse)
	})

	t.Run("malformed_json_is_an_error", func(t *testing.T) {
		_, err := parseAlignResponse(`[{"english": "a"`)
		assert.ErrorIs(t, err, align.ErrInvalidResponse)
		assert.Contains(t, err.Error(), "failed to parse JSON response")
	})

	t.Run("pair_sides_are_trimmed", func(t *testing.T) {
		raw := `[{"english": "  A sentence.  ", "hindi": "  एक वाक्य।  "}]`

		pairs, err := parseAlignResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, "A sentence.", pairs[0].English)
		assert.Equal(t, "एक वाक्य।", pairs[0].Hindi)
	})
}

func TestParseCleanResponse(t *testing.T) {
	t.Run("valid_object_with_issue_array", func(t *testing.T) {
		raw := `{"english": "Clean text.", "hindi": "साफ पाठ।", "is_aligned": true, "issues_found": ["removed backslashes"]}`

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, "Clean text.", cleaned.English)
		assert.Equal(t, "साफ पाठ।", cleaned.Hindi)
		assert.True(t, cleaned.IsAligned)
		assert.Equal(t, []string{"removed backslashes"}, cleaned.Issues)
	})

	t.Run("misaligned_pair_is_reported", func(t *testing.T) {
		raw := `{"english": "a", "hindi": "b", "is_aligned": false, "issues_found": ["hindi is unrelated to english"]}`

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.False(t, cleaned.IsAligned)
	})

	t.Run("issues_as_bare_string_is_accepted", func(t *testing.T) {
		raw := `{"english": "a", "hindi": "b", "is_aligned": true, "issues_found": "stray escape sequences"}`

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"stray escape sequences"}, cleaned.Issues)
	})

	t.Run("issues_none_string_means_no_issues", func(t *testing.T) {
		raw := `{"english": "a", "hindi": "b", "is_aligned": true, "issues_found": "none"}`

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.Empty(t, cleaned.Issues)
	})

	t.Run("issues_empty_string_means_no_issues", func(t *testing.T) {
		raw := `{"english": "a", "hindi": "b", "is_aligned": true, "issues_found": ""}`

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.Empty(t, cleaned.Issues)
	})

	t.Run("missing_issues_field_means_no_issues", func(t *testing.T) {
		raw := `{"english": "a", "hindi": "b", "is_aligned": true}`

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.Empty(t, cleaned.Issues)
	})

	t.Run("fenced_object_is_unwrapped", func(t *testing.T) {
		raw := "```json\n{\"english\": \"a\", \"hindi\": \"b\", \"is_aligned\": true}\n```"

		cleaned, err := parseCleanResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, "a", cleaned.English)
	})

	t.Run("malformed_json_is_an_error", func(t *testing.T) {
		cleaned, err := parseCleanResponse(`{"english": `)
		assert.Nil(t, cleaned)
		assert.ErrorIs(t, err, align.ErrInvalidResponse)
	})
}
