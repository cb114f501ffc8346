package utils

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// StripTags reduces rich section markup to plain text: tags removed,
// non-breaking spaces collapsed, surrounding whitespace trimmed.
func StripTags(s string) string {
	clean := tagPattern.ReplaceAllString(s, "")
	clean = strings.ReplaceAll(clean, "&nbsp;", " ")
	return strings.TrimSpace(clean)
}
