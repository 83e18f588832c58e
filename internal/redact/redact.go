// Package redact scrubs credentials from strings before they are logged or
// surfaced in error messages. The Gemini REST transport carries the API key
// as a URL query parameter, and provider errors occasionally echo request
// details back, so every provider error passes through this package before
// it reaches a log line or a checkpoint record.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

// Precompiled regex patterns
var (
	// Google API keys: AIza prefix followed by the key body
	googleKeyRegex = regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{16,}`)

	// Generic key/token/secret assignments, including key= URL parameters
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Bearer credentials from Authorization headers echoed into errors
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// All patterns and their placeholders
	patterns = []*regexp.Regexp{
		googleKeyRegex, apiKeyRegex, bearerRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		googleKeyRegex: RedactedKeyPlaceholder,
		apiKeyRegex:    RedactedKeyPlaceholder,
		bearerRegex:    RedactedCredentialPlaceholder,
	}
)

// String redacts credentials from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts credentials from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
