// Package courses composes the timetable, banner and catalog scrapers
// into course search and normalization. It owns the final Record
// schema written out by the seeding driver.
package courses

import (
	"context"
	"log/slog"
	"strings"

	"courseplan-backend/lib/scrapers/banner"
	"courseplan-backend/lib/scrapers/catalog"
	"courseplan-backend/lib/scrapers/timetable"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	timetable *timetable.Client
	banner    *banner.Client
	// optional, used as a fallback source when a search comes back
	// empty
	catalog *catalog.Client
}

func NewService(tt *timetable.Client, bn *banner.Client, cat *catalog.Client) Service {
	return Service{
		timetable: tt,
		banner:    bn,
		catalog:   cat,
	}
}

// SearchResult aggregates everything one course query produced: the
// sections, the descriptive fields taken from the first section, the
// shared enrichment metadata, and the pathway tags scanned out of the
// same response.
type SearchResult struct {
	Subject      string
	CourseNumber string

	// taken from the first returned section; empty when no sections
	// were found
	Name        string
	CreditHours string

	Sections []timetable.Section
	Metadata *timetable.CourseMetadata

	// structured OR-group prerequisites, set only when an upstream
	// source provides them pre-grouped
	PrereqGroups [][]string

	Pathways []string
}

func (r SearchResult) CourseID() string {
	return r.Subject + r.CourseNumber
}

// SearchCourseID runs one course lookup. The courseID must match the
// subject-letters + 4-digit-number shape; the semester is parsed by
// name. An empty upstream result is a valid SearchResult with no
// sections, not an error.
func (s Service) SearchCourseID(ctx context.Context, year int, semesterName, courseID string, enrich bool) (SearchResult, error) {
	ctx, span := tracer.Start(ctx, "service:SearchCourseID")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", year),
		attribute.String("semester", semesterName),
		attribute.String("course_id", courseID),
	)

	semester, err := timetable.ParseSemester(semesterName)
	if err != nil {
		span.RecordError(err)
		return SearchResult{}, err
	}
	subject, number, err := ParseCourseID(courseID)
	if err != nil {
		span.RecordError(err)
		return SearchResult{}, err
	}

	page, err := s.timetable.Search(ctx, timetable.SearchQuery{
		Year:         year,
		Semester:     semester,
		Subject:      subject,
		CourseNumber: number,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "timetable search failed")
		return SearchResult{}, err
	}

	result := SearchResult{
		Subject:      subject,
		CourseNumber: number,
		Sections:     page.Sections,
		Pathways:     timetable.ExtractPathways(page.RawHTML),
	}
	if len(page.Sections) == 0 {
		return result, nil
	}

	first := page.Sections[0]
	result.Name = first.Name
	result.CreditHours = first.CreditHours

	if enrich {
		meta := s.banner.Fetch(ctx, banner.Request{
			CRN:          first.CRN,
			Year:         year,
			Semester:     semester,
			Subject:      subject,
			CourseNumber: number,
		})
		result.Metadata = &meta
		// sections of one course share the same metadata
		for i := range result.Sections {
			result.Sections[i].Metadata = &meta
		}
	}
	return result, nil
}

// sentinel prefixes that mean a metadata field carries no usable text
func usableMetadataText(text string) bool {
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, "No ") && strings.HasSuffix(text, " found.") {
		return false
	}
	return !strings.HasPrefix(text, "Error retrieving data:")
}

// RecordFromSearch builds the normalized record from a search result
// and an optional catalog fallback for the name and credits.
func RecordFromSearch(res SearchResult, fallback *catalog.Course) Record {
	code := res.CourseID()
	if code == "" && fallback != nil {
		code = fallback.Code
	}

	name := res.Name
	if name == "" && fallback != nil {
		name = fallback.Title
	}

	credits := NormalizeCredits(res.CreditHours)
	if credits == nil && fallback != nil {
		credits = fallback.Credits
	}

	prereqs := Prerequisites{Groups: res.PrereqGroups}
	if prereqs.Empty() && res.Metadata != nil && usableMetadataText(res.Metadata.Prerequisites) {
		prereqs.Flat = ExtractCourseCodes(res.Metadata.Prerequisites)
	}

	description := ""
	if res.Metadata != nil && usableMetadataText(res.Metadata.CatalogDescription) {
		description = res.Metadata.CatalogDescription
	}

	// a course without pathway tokens still writes "pathways": []
	pathways := res.Pathways
	if pathways == nil {
		pathways = []string{}
	}

	return Record{
		Code:          code,
		Name:          CleanLeadingDash(name),
		Credits:       credits,
		Prerequisites: prereqs,
		Corequisites:  []string{},
		Category:      categoryFor(res.Subject, code),
		// a static declaration, not derived from availability data
		Semesters:   []string{"Fall", "Spring"},
		Description: description,
		Pathways:    pathways,
	}
}

// BuildRecords processes a batch of course identifiers. A failure on
// one course is that course's failure alone: it is logged and the rest
// of the batch continues.
func (s Service) BuildRecords(ctx context.Context, year int, semesterName string, courseIDs []string, enrich bool) []Record {
	ctx, span := tracer.Start(ctx, "service:BuildRecords")
	defer span.End()
	span.SetAttributes(attribute.Int("courses", len(courseIDs)))

	fallbacks := map[string]map[string]catalog.Course{}
	records := make([]Record, 0, len(courseIDs))

	for _, id := range courseIDs {
		res, err := s.SearchCourseID(ctx, year, semesterName, id, enrich)
		if err != nil {
			slog.WarnContext(ctx, "failed to process course", "course", id, "err", err)
			continue
		}

		var fallback *catalog.Course
		if len(res.Sections) == 0 {
			if course, ok := s.catalogFallback(ctx, fallbacks, res)[res.CourseID()]; ok {
				fallback = &course
			}
		}
		records = append(records, RecordFromSearch(res, fallback))
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records
}

// catalogFallback lazily fetches and memoizes one subject's catalog
// page. Catalog failures degrade to no fallback, never fail the batch.
func (s Service) catalogFallback(ctx context.Context, memo map[string]map[string]catalog.Course, res SearchResult) map[string]catalog.Course {
	if s.catalog == nil {
		return nil
	}
	if bySubject, ok := memo[res.Subject]; ok {
		return bySubject
	}

	bySubject := map[string]catalog.Course{}
	memo[res.Subject] = bySubject

	listing, err := s.catalog.Courses(ctx, res.Subject)
	if err != nil {
		slog.WarnContext(ctx, "catalog fallback unavailable", "subject", res.Subject, "err", err)
		return bySubject
	}
	for _, course := range listing {
		bySubject[course.Code] = course
	}
	return bySubject
}
