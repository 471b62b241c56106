package timetable

import "regexp"

// Pathway tags come in two shapes: four-character CLE codes ("AR01")
// and GenEd-style codes with a one or two letter prefix, two digits and
// an optional trailing letter ("G02", "G01A"). Any token of either
// shape is accepted; there is no validation against a known list, so
// look-alike tokens are a known false-positive risk.
var pathwayTokenRegex = regexp.MustCompile(`\b(?:[A-Z]{2}[0-9]{2}|[A-Z]{1,2}[0-9]{2}[A-Z]?)\b`)

// ExtractPathways scans a raw search response for degree-pathway tag
// codes, deduplicating while preserving first-seen order.
func ExtractPathways(page string) []string {
	var out []string
	seen := map[string]bool{}
	for _, token := range pathwayTokenRegex.FindAllString(page, -1) {
		if seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}
