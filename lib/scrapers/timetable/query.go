package timetable

import (
	"net/url"
	"strconv"
)

// SearchQuery is one structured timetable search. Year and Semester are
// required; every other field's zero value encodes as the upstream
// "no filter" code.
type SearchQuery struct {
	Year         int
	Semester     Semester
	Campus       Campus
	Pathway      Pathway
	Subject      string
	SectionType  SectionType
	CourseNumber string
	CRN          string
	Status       Status
	Modality     Modality
}

// TermYear builds the six-character term code. The upstream academic
// year for a Winter term is the prior calendar year.
func (q SearchQuery) TermYear() string {
	year := q.Year
	if q.Semester == SemesterWinter {
		year--
	}
	return strconv.Itoa(year) + q.Semester.Code()
}

// Values maps the query onto the exact form fields the search endpoint
// expects. An empty subject filter is spelled "%" upstream.
func (q SearchQuery) Values() url.Values {
	subject := q.Subject
	if subject == "" {
		subject = "%"
	}
	return url.Values{
		"CAMPUS":      {q.Campus.Code()},
		"TERMYEAR":    {q.TermYear()},
		"CORE_CODE":   {q.Pathway.Code()},
		"subj_code":   {subject},
		"SCHDTYPE":    {q.SectionType.Code()},
		"CRSE_NUMBER": {q.CourseNumber},
		"crn":         {q.CRN},
		"open_only":   {q.Status.Code()},
		"sess_code":   {q.Modality.Code()},
	}
}

func (q SearchQuery) cacheKey() string {
	return q.Values().Encode()
}
