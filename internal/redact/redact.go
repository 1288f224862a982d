// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. This prevents the accidental leakage of
// credentials, connection strings, tokens, and user emails through error
// messages that end up in log output.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	HashPlaceholder       = "[REDACTED_HASH]"
)

// Precompiled patterns for the sensitive material this service handles:
// database URLs with inline credentials, signed JWTs, bcrypt hashes, raw
// passwords in key=value form, and email addresses.
var (
	dbConnRegex   = regexp.MustCompile(`(?i)(postgres|postgresql|redis|mysql)://[^@\s]+@`)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	bcryptRegex   = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	placeholders = []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{dbConnRegex, CredentialPlaceholder + "@"},
		{jwtTokenRegex, TokenPlaceholder},
		{bcryptRegex, HashPlaceholder},
		{passwordRegex, "$1$2" + CredentialPlaceholder},
		{emailRegex, EmailPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range placeholders {
		result = p.pattern.ReplaceAllString(result, p.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
