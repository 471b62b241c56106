package courses

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ASCII hyphen plus the Unicode dash variants that show up in course
// titles: hyphen, figure dash, en dash, em dash, minus sign.
const leadingDashes = "-‐‒–—−"

// CleanLeadingDash strips any leading run of dash characters and the
// whitespace around them. Interior dashes are preserved.
func CleanLeadingDash(name string) string {
	name = strings.TrimSpace(name)
	for name != "" && strings.ContainsRune(leadingDashes, []rune(name)[0]) {
		name = strings.TrimSpace(strings.TrimLeft(name, leadingDashes))
	}
	return name
}

var courseIDRegex = regexp.MustCompile(`(?i)^([a-z]{2,4})[-: ]?(\d{4})$`)

// ParseCourseID splits a course identifier like "CS3414", "cs 3414" or
// "MATH-2534" into its uppercased subject and course number. Anything
// not matching the subject-letters + 4-digit shape is a caller error.
func ParseCourseID(id string) (subject, number string, err error) {
	m := courseIDRegex.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return "", "", fmt.Errorf("invalid course identifier %q", id)
	}
	return strings.ToUpper(m[1]), m[2], nil
}

var (
	creditRangeRegex = regexp.MustCompile(`(?i)^(\d+)\s*(?:-|to)\s*(\d+)$`)
	creditValueRegex = regexp.MustCompile(`(?i)^(\d+)(?:\.0+)?\s*(?:credits?|cr)?\.?$`)
)

// NormalizeCredits turns a raw credit-hours string into [n] for a fixed
// value or [low, high] for a range. Unrecognized input yields nil, not
// zero.
func NormalizeCredits(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if m := creditRangeRegex.FindStringSubmatch(raw); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		return []int{low, high}
	}
	if m := creditValueRegex.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return []int{n}
	}
	return nil
}

var courseCodeTokenRegex = regexp.MustCompile(`[A-Za-z]{2,4}[-: ]?\d{4}`)

func normalizeCourseCode(token string) string {
	token = strings.Map(func(r rune) rune {
		switch r {
		case '-', ':', ' ':
			return -1
		}
		return r
	}, token)
	return strings.ToUpper(token)
}

// ExtractCourseCodes pulls course-code-shaped tokens out of free text,
// normalizing each to a concatenated uppercase code and deduplicating
// in first-occurrence order. This is the degraded prerequisite path: it
// loses the OR-grouping the structured form carries.
func ExtractCourseCodes(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, token := range courseCodeTokenRegex.FindAllString(text, -1) {
		code := normalizeCourseCode(token)
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// PathwaysFromString splits a comma-delimited pathway tag list.
func PathwaysFromString(s string) []string {
	var out []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

var categoryPrefixRegex = regexp.MustCompile(`^[A-Z]{2,4}`)

// when neither a subject nor a code prefix is available
const fallbackCategory = "CS"

func categoryFor(subject, code string) string {
	if subject != "" {
		return subject
	}
	if m := categoryPrefixRegex.FindString(code); m != "" {
		return m
	}
	return fallbackCategory
}
