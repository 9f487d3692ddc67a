package utils

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// FirstNonEmpty returns the first non-empty string of the two
func FirstNonEmpty(str1, str2 string) string {
	if str1 != "" {
		return str1
	}
	return str2
}

// Slugify derives a tenant code from a display name: lower-cased,
// trimmed, runs of whitespace collapsed to a single underscore.
// "Acme Corp" becomes "acme_corp".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return whitespaceRe.ReplaceAllString(s, "_")
}
