package timetable

import (
	"fmt"
	"regexp"
	"strings"

	"courseplan-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// the search page carries four layout tables before the results table
const sectionTableIndex = 4

const additionalTimesMarker = "* Additional Times *"

// Summer titles carry a leading "- DD-MON-YYYY" session date stamp.
var summerTitleRegex = regexp.MustCompile(`- \d{2}-[A-Z]{3}-\d{4}(.+)$`)

// rawRow is a section row after positional extraction but before any
// interpretation. Keeping it named avoids index arithmetic leaking
// past this file.
type rawRow struct {
	index      int
	crn        string
	course     string
	title      string
	kind       string
	modality   string
	credits    string
	capacity   string
	instructor string
	days       string
	begin      string
	end        string
	location   string
}

const rowWidth = 12

func rawRowFromCells(index int, cells []string) rawRow {
	return rawRow{
		index:      index,
		crn:        cells[0],
		course:     cells[1],
		title:      cells[2],
		kind:       cells[3],
		modality:   cells[4],
		credits:    cells[5],
		capacity:   cells[6],
		instructor: cells[7],
		days:       cells[8],
		begin:      cells[9],
		end:        cells[10],
		location:   cells[11],
	}
}

// parseSections extracts every Section from a successful search page.
// Rows alternate between primary section rows (non-empty first cell)
// and optional "* Additional Times *" continuation rows that merge into
// the preceding section's schedule.
func parseSections(year int, semester Semester, page string) ([]Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	table := doc.Find("table").Eq(sectionTableIndex)
	if table.Length() == 0 {
		return nil, fmt.Errorf("search page is missing the section table")
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, htmlutil.CleanCell(td.Text()))
		})
		rows = append(rows, cells)
	})

	var sections []Section
	for i, cells := range rows {
		if len(cells) < rowWidth || cells[0] == "" {
			continue
		}
		row := rawRowFromCells(i, cells)

		var extra *rawRow
		if i+1 < len(rows) {
			next := rows[i+1]
			if len(next) >= rowWidth && next[4] == additionalTimesMarker {
				e := rawRowFromCells(i+1, next)
				extra = &e
			}
		}

		section, err := buildSection(year, semester, row, extra)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// buildSection turns a raw row (plus its optional continuation row)
// into a typed Section. Structural failures abort the whole query.
func buildSection(year int, semester Semester, row rawRow, extra *rawRow) (Section, error) {
	subject, number, found := strings.Cut(row.course, "-")
	if !found {
		return Section{}, &MalformedRowError{
			Row:   row.index,
			Cause: fmt.Sprintf("course %q has no subject-number separator", row.course),
		}
	}

	name := row.title
	if semester == SemesterSummer {
		m := summerTitleRegex.FindStringSubmatch(name)
		if m == nil {
			return Section{}, &MalformedRowError{
				Row:   row.index,
				Cause: fmt.Sprintf("summer title %q is missing its date stamp", name),
			}
		}
		name = m[1]
	}

	kind, ok := sectionTypeFromMarker(row.kind)
	if !ok {
		return Section{}, &MalformedRowError{
			Row:   row.index,
			Cause: fmt.Sprintf("unknown section type marker %q", row.kind),
		}
	}

	schedule := Schedule{}
	err := addMeetings(schedule, row)
	if err != nil {
		return Section{}, err
	}
	if extra != nil {
		err = addMeetings(schedule, *extra)
		if err != nil {
			return Section{}, err
		}
	}

	// upstream pads the identifier beyond the 5-character CRN
	crn := row.crn
	if len(crn) > 5 {
		crn = crn[:5]
	}

	return Section{
		Year:         year,
		Semester:     semester,
		CRN:          crn,
		Subject:      subject,
		CourseNumber: number,
		Name:         name,
		Kind:         kind,
		Modality:     modalityFromLabel(row.modality),
		CreditHours:  row.credits,
		Capacity:     row.capacity,
		Instructor:   row.instructor,
		Schedule:     schedule,
	}, nil
}

// addMeetings explodes the weekday-letters cell into one Meeting per
// day. Arranged tokens contribute nothing: the section exists but has
// no fixed schedule entry.
func addMeetings(schedule Schedule, row rawRow) error {
	for _, letter := range strings.Fields(row.days) {
		day, ok := dayLetters[letter]
		if !ok {
			return &MalformedRowError{
				Row:   row.index,
				Cause: fmt.Sprintf("unknown weekday letter %q", letter),
			}
		}
		if day == DayArranged {
			continue
		}
		schedule.add(Meeting{
			Day:      day,
			Start:    row.begin,
			End:      row.end,
			Location: row.location,
		})
	}
	return nil
}
