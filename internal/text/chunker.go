package text

import "strings"

// Chunk groups sentences into windows of size sentences each, joining each
// window with single spaces. The final window may be shorter. A size below
// one is treated as one.
func Chunk(sentences []string, size int) []string {
	if size < 1 {
		size = 1
	}

	chunks := make([]string, 0, (len(sentences)+size-1)/size)
	for i := 0; i < len(sentences); i += size {
		end := i + size
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[i:end], " "))
	}
	return chunks
}
