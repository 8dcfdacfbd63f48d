// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. Provider errors can echo API keys, bearer
// tokens or whole inline image payloads back at the caller; this package
// scrubs them so logs stay small and free of credentials.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedDataURLPlaceholder    = "[REDACTED_DATA_URL]"
	RedactedBase64Placeholder     = "[REDACTED_BASE64]"
)

// Precompiled regex patterns, applied in order.
var (
	// Inline images, e.g. data:image/png;base64,iVBOR...
	dataURLRegex = regexp.MustCompile(`data:[a-zA-Z0-9.+/-]+;base64,[A-Za-z0-9+/=]+`)

	// Provider credentials
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)
	openAIKeyRegex = regexp.MustCompile(`sk-[A-Za-z0-9_\-]{16,}`)
	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	bearerRegex   = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]{8,}`)
	apiKeyRegex   = regexp.MustCompile(`(?i)(api[_-]?key|key|token|secret)=[^&\s"']+`)

	// Raw base64 payloads long enough to be image data
	base64BlobRegex = regexp.MustCompile(`[A-Za-z0-9+/]{200,}={0,2}`)

	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// All patterns and their placeholders
	patterns = []*regexp.Regexp{
		dataURLRegex, googleKeyRegex, openAIKeyRegex, jwtTokenRegex, bearerRegex,
		apiKeyRegex, base64BlobRegex, emailRegex, unixPathRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dataURLRegex:    RedactedDataURLPlaceholder,
		googleKeyRegex:  RedactedKeyPlaceholder,
		openAIKeyRegex:  RedactedKeyPlaceholder,
		jwtTokenRegex:   "[REDACTED_JWT]",
		bearerRegex:     RedactedCredentialPlaceholder,
		apiKeyRegex:     RedactedKeyPlaceholder,
		base64BlobRegex: RedactedBase64Placeholder,
		emailRegex:      "[REDACTED_EMAIL]",
		unixPathRegex:   RedactedPathPlaceholder,
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

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
