package timetable

import (
	"fmt"
	"strings"
)

// Semester is one of the four academic terms the timetable knows about.
type Semester string

const (
	SemesterSpring Semester = "Spring"
	SemesterSummer Semester = "Summer"
	SemesterFall   Semester = "Fall"
	SemesterWinter Semester = "Winter"
)

// Code returns the two-digit term code the upstream form expects.
func (s Semester) Code() string {
	switch s {
	case SemesterSpring:
		return "01"
	case SemesterSummer:
		return "06"
	case SemesterFall:
		return "09"
	case SemesterWinter:
		return "12"
	}
	return ""
}

func ParseSemester(name string) (Semester, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "spring":
		return SemesterSpring, nil
	case "summer":
		return SemesterSummer, nil
	case "fall":
		return SemesterFall, nil
	case "winter":
		return SemesterWinter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSemester, name)
}

type Campus string

const (
	CampusBlacksburg Campus = "Blacksburg"
	CampusVirtual    Campus = "Virtual"
)

func (c Campus) Code() string {
	if c == CampusVirtual {
		return "10"
	}
	return "0"
}

// Modality is the instruction mode of a section. The zero value encodes
// as the upstream "all modalities" filter.
type Modality string

const (
	ModalityAll         Modality = ""
	ModalityInPerson    Modality = "In-Person"
	ModalityHybrid      Modality = "Hybrid"
	ModalityOnlineSync  Modality = "Online Synchronous"
	ModalityOnlineAsync Modality = "Online Asynchronous"
	ModalityUnknown     Modality = "Unknown"
)

func (m Modality) Code() string {
	switch m {
	case ModalityInPerson:
		return "A"
	case ModalityHybrid:
		return "H"
	case ModalityOnlineSync:
		return "N"
	case ModalityOnlineAsync:
		return "O"
	}
	return "%"
}

var modalityLabels = map[string]Modality{
	"Face-to-Face Instruction":       ModalityInPerson,
	"Hybrid (F2F & Online Instruc.)": ModalityHybrid,
	"Online with Synchronous Mtgs.":  ModalityOnlineSync,
	"Online: Asynchronous":           ModalityOnlineAsync,
}

// unrecognized labels are not an error, the portal grows new ones
func modalityFromLabel(label string) Modality {
	if m, ok := modalityLabels[label]; ok {
		return m
	}
	return ModalityUnknown
}

// SectionType is the kind of section (lecture, lab, ...). The zero
// value encodes as the upstream "all types" filter.
type SectionType string

const (
	SectionTypeAll              SectionType = ""
	SectionTypeIndependentStudy SectionType = "Independent Study"
	SectionTypeLab              SectionType = "Lab"
	SectionTypeLecture          SectionType = "Lecture"
	SectionTypeRecitation       SectionType = "Recitation"
	SectionTypeResearch         SectionType = "Research"
	SectionTypeOnline           SectionType = "Online"
)

func (t SectionType) Code() string {
	switch t {
	case SectionTypeIndependentStudy:
		return "%I%"
	case SectionTypeLab:
		return "%B%"
	case SectionTypeLecture:
		return "%L%"
	case SectionTypeRecitation:
		return "%C%"
	case SectionTypeResearch:
		return "%R%"
	case SectionTypeOnline:
		return "ONLINE"
	}
	return "%"
}

var sectionTypeMarkers = map[byte]SectionType{
	'I': SectionTypeIndependentStudy,
	'B': SectionTypeLab,
	'L': SectionTypeLecture,
	'C': SectionTypeRecitation,
	'R': SectionTypeResearch,
	'O': SectionTypeOnline,
}

// sectionTypeFromMarker decodes the single-letter marker cell, or the
// literal "ONLINE COURSE" used for fully-online sections.
func sectionTypeFromMarker(cell string) (SectionType, bool) {
	if strings.HasPrefix(cell, "ONLINE COURSE") {
		return SectionTypeOnline, true
	}
	if cell == "" {
		return "", false
	}
	t, ok := sectionTypeMarkers[cell[0]]
	return t, ok
}

type Status string

const (
	StatusAll  Status = ""
	StatusOpen Status = "Open"
)

func (s Status) Code() string {
	if s == StatusOpen {
		return "on"
	}
	return ""
}

// Pathway is a degree-pathway (CLE or Pathways to General Education)
// filter. The zero value encodes as the upstream "all pathways" filter.
type Pathway string

const (
	PathwayAll Pathway = ""
	CLE1       Pathway = "CLE 1"
	CLE2       Pathway = "CLE 2"
	CLE3       Pathway = "CLE 3"
	CLE4       Pathway = "CLE 4"
	CLE5       Pathway = "CLE 5"
	CLE6       Pathway = "CLE 6"
	CLE7       Pathway = "CLE 7"
	Pathway1A  Pathway = "Pathway 1A"
	Pathway1F  Pathway = "Pathway 1F"
	Pathway2   Pathway = "Pathway 2"
	Pathway3   Pathway = "Pathway 3"
	Pathway4   Pathway = "Pathway 4"
	Pathway5A  Pathway = "Pathway 5A"
	Pathway5F  Pathway = "Pathway 5F"
	Pathway6A  Pathway = "Pathway 6A"
	Pathway6D  Pathway = "Pathway 6D"
	Pathway7   Pathway = "Pathway 7"
)

func (p Pathway) Code() string {
	switch p {
	case CLE1:
		return "AR01"
	case CLE2:
		return "AR02"
	case CLE3:
		return "AR03"
	case CLE4:
		return "AR04"
	case CLE5:
		return "AR05"
	case CLE6:
		return "AR06"
	case CLE7:
		return "AR07"
	case Pathway1A:
		return "G01A"
	case Pathway1F:
		return "G01F"
	// pathways 4, 5A and 5F share a filter code with pathway 2 upstream
	case Pathway2, Pathway4, Pathway5A, Pathway5F:
		return "G02"
	case Pathway3:
		return "G03"
	case Pathway6A:
		return "G06A"
	case Pathway6D:
		return "G06D"
	case Pathway7:
		return "G07"
	}
	return "AR%"
}

// Day is a meeting weekday. Arranged marks sections without fixed
// meeting times.
type Day string

const (
	Monday      Day = "Monday"
	Tuesday     Day = "Tuesday"
	Wednesday   Day = "Wednesday"
	Thursday    Day = "Thursday"
	Friday      Day = "Friday"
	Saturday    Day = "Saturday"
	Sunday      Day = "Sunday"
	DayArranged Day = "Arranged"
)

var dayLetters = map[string]Day{
	"M":     Monday,
	"T":     Tuesday,
	"W":     Wednesday,
	"R":     Thursday,
	"F":     Friday,
	"S":     Saturday,
	"U":     Sunday,
	"(ARR)": DayArranged,
}

var dayOrder = map[Day]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3,
	Friday: 4, Saturday: 5, Sunday: 6,
}
