package domain

import (
	"regexp"
	"strings"
)

// Patterns for stripping executable markup from free-text fields.
// Script blocks are removed with their content; any remaining tags are
// stripped but their text is kept.
var (
	scriptPattern = regexp.MustCompile(`(?is)<script.*?</script>`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// SanitizeText strips HTML and script markup from user-supplied text so it
// is safe to store and echo back. It never fails; empty input yields an
// empty string.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}

	text = scriptPattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
