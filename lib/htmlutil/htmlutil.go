package htmlutil

import (
	"regexp"
	"strings"
)

var tagRegex = regexp.MustCompile(`(?s)<.*?>`)
var innerWhitespace = regexp.MustCompile(`\s+`)

// StripTags removes embedded markup from an HTML fragment, leaving
// only its text content.
func StripTags(fragment string) string {
	return tagRegex.ReplaceAllString(fragment, "")
}

// CollapseWhitespace folds runs of whitespace (including newlines left
// behind by StripTags) into single spaces and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

// CleanCell normalizes the text of a single table cell: non-breaking
// spaces become regular spaces before whitespace collapsing.
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return CollapseWhitespace(s)
}
