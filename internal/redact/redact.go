// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. This package
// helps prevent the accidental leakage of credentials, remote endpoints, and
// bulky base64 image payloads that might be included in error messages.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedDataPlaceholder = "[REDACTED_DATA_URL]"
	RedactedHostPlaceholder = "[REDACTED_HOST]"
)

// Precompiled regex patterns
var (
	// API keys and tokens, including Google-style AIza keys
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_-]{10,}`)

	// Base64 data URLs; generated images embed megabytes of payload,
	// which must never reach a log line
	dataURLRegex = regexp.MustCompile(`data:[\w/+.-]+;base64,[A-Za-z0-9+/=]+`)

	// Hosts and file paths leaked by transport errors
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// All patterns and their placeholders, applied in order so data URLs
	// are collapsed before the host pattern can match inside them
	patterns = []*regexp.Regexp{
		dataURLRegex, apiKeyRegex, googleKeyRegex, unixPathRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dataURLRegex:   RedactedDataPlaceholder,
		apiKeyRegex:    RedactedKeyPlaceholder,
		googleKeyRegex: RedactedKeyPlaceholder,
		unixPathRegex:  RedactedPathPlaceholder,
		hostPortRegex:  RedactedHostPlaceholder,
	}
)

// String redacts sensitive information from the input string
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

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
