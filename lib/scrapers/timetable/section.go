package timetable

import (
	"slices"
	"strings"
)

// Meeting is one scheduled occurrence of a section. Immutable once
// built; all fields are opaque upstream strings.
type Meeting struct {
	Day      Day
	Start    string
	End      string
	Location string
}

// Schedule maps a weekday to the set of meetings held on it. A day may
// host several distinct blocks; identical day/time/location meetings
// collapse since the inner map is a set. Arranged meetings carry no
// day or time and never appear here.
type Schedule map[Day]map[Meeting]struct{}

func (s Schedule) add(m Meeting) {
	if s[m.Day] == nil {
		s[m.Day] = map[Meeting]struct{}{}
	}
	s[m.Day][m] = struct{}{}
}

// Days returns the scheduled weekdays in Monday-first order.
func (s Schedule) Days() []Day {
	days := make([]Day, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b Day) int {
		return dayOrder[a] - dayOrder[b]
	})
	return days
}

// Meetings returns the meetings on a given day sorted by start time,
// then end time, then location.
func (s Schedule) Meetings(day Day) []Meeting {
	meetings := make([]Meeting, 0, len(s[day]))
	for m := range s[day] {
		meetings = append(meetings, m)
	}
	slices.SortFunc(meetings, func(a, b Meeting) int {
		if c := strings.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := strings.Compare(a.End, b.End); c != 0 {
			return c
		}
		return strings.Compare(a.Location, b.Location)
	})
	return meetings
}

// CourseMetadata is the supplementary per-course text fetched from the
// comments endpoint. Fields hold "No <field> found." sentinels when the
// page carries no matching label, and "Error retrieving data: ..."
// sentinels when the fetch itself failed.
type CourseMetadata struct {
	Prerequisites      string
	CatalogDescription string
	Comments           string
}

// Section is one offered section of a course in one term. CRN is
// unique within (Year, Semester).
type Section struct {
	Year     int
	Semester Semester

	CRN          string
	Subject      string
	CourseNumber string
	Name         string
	Kind         SectionType
	Modality     Modality
	CreditHours  string
	Capacity     string
	Instructor   string
	Schedule     Schedule

	// filled in by the enrichment pass when enabled, shared between
	// sections of the same course
	Metadata *CourseMetadata
}

// CourseID is the concatenated subject and course number, e.g. "CS3414".
func (s Section) CourseID() string {
	return s.Subject + s.CourseNumber
}
