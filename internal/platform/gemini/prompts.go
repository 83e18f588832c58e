package gemini

import "fmt"

// alignSystemPrompt instructs the model to produce aligned chunk pairs as a
// bare JSON array.
const alignSystemPrompt = `You are an expert in English-Hindi bilingual text alignment.

Your task: Given English and Hindi text with DIFFERENT sentence counts, create aligned 3-sentence chunks.

RULES:
1. Identify which English sentences correspond to which Hindi sentences
2. Create chunks of UP TO 3 English sentences paired with their corresponding Hindi translation
3. Ensure semantic alignment - English chunk must match Hindi chunk in meaning
4. If counts are very different, some sentences might be combined or split

OUTPUT FORMAT (JSON array of chunks):
[
  {
    "english": "First 1-3 English sentences",
    "hindi": "Corresponding Hindi sentences"
  },
  {
    "english": "Next 1-3 English sentences",
    "hindi": "Corresponding Hindi sentences"
  }
]

Return ONLY the JSON array, no markdown, no explanation.`

// cleanSystemPrompt instructs the model to clean and verify a single pair and
// answer with a bare JSON object.
const cleanSystemPrompt = `You are a bilingual data quality expert specializing in English-Hindi translation pairs.

Your task is to clean and verify translation pairs. Follow these rules:

1. CLEANING:
   - Remove special characters like backslashes (\), forward slashes (/) that don't belong
   - Remove escape sequences or formatting artifacts
   - Preserve meaningful punctuation and numbers

2. VERIFICATION:
   - Check if English and Hindi are actual translations
   - Ensure semantic alignment
   - Do NOT retranslate or paraphrase

3. OUTPUT: Return ONLY a JSON object:
   {"english": "cleaned text", "hindi": "cleaned text", "is_aligned": true/false, "issues_found": ["issues corrected, empty if none"]}`

// buildAlignPrompt formats the user prompt for an alignment request. The
// sentence counts give the model the mismatch it is asked to reconcile.
func buildAlignPrompt(english, hindi string, engSentences, hinSentences int) string {
	return fmt.Sprintf(`Align these English-Hindi texts into 3-sentence chunks:

ENGLISH (%d sentences):
%s

HINDI (%d sentences):
%s

Create aligned chunks (max 3 English sentences per chunk) as JSON array.`,
		engSentences, english, hinSentences, hindi)
}

// buildCleanPrompt formats the user prompt for a clean-and-verify request.
func buildCleanPrompt(english, hindi string) string {
	return fmt.Sprintf(`Clean this English-Hindi translation pair:

ENGLISH: %s

HINDI: %s

Return cleaned version as JSON.`, english, hindi)
}
