// Package banner fetches the supplementary per-course comments page:
// prerequisites, catalog description, and registrar comments.
//
// Failures here are absorbed, never surfaced: a section without
// enrichment data is still a usable section, so every outcome is
// reported through the returned text fields.
package banner

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"strconv"
	"time"

	"courseplan-backend/lib/cache"
	"courseplan-backend/lib/htmlutil"
	"courseplan-backend/lib/restyutil"
	"courseplan-backend/lib/scrapers/timetable"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultBaseURL = "https://selfservice.banner.vt.edu/ssb/HZSKVTSC.P_ProcComments"

const (
	noPrerequisites = "No prerequisites found."
	noDescription   = "No catalog description found."
	noComments      = "No comments found."
)

// label-anchored extraction: the label cell is followed by a sibling
// "pldefault" cell holding the text
func labelRegex(label string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?is)<td[^>]*>` + label + `:?</td>\s*<td[^>]*class="pldefault"[^>]*>(.*?)</td>`,
	)
}

var (
	prerequisitesRegex = labelRegex("Prerequisites")
	descriptionRegex   = labelRegex("Catalog Description")
	commentsRegex      = labelRegex("Comments")
)

// Request identifies one course section's comments page. All five
// fields participate in the cache key.
type Request struct {
	CRN          string
	Year         int
	Semester     timetable.Semester
	Subject      string
	CourseNumber string
}

func (r Request) cacheKey() string {
	return fmt.Sprintf("%s:%d:%s:%s:%s",
		r.CRN, r.Year, r.Semester.Code(), r.Subject, r.CourseNumber)
}

// Client fetches and caches course metadata. Repeated fetches for the
// same (CRN, year, term, subject, course number) issue at most one
// underlying request per cache lifetime.
type Client struct {
	http     *resty.Client
	endpoint string
	cache    *cache.Cache[timetable.CourseMetadata]
}

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// per-request timeout, defaults to 10s
	Timeout time.Duration
	// metadata cache capacity, defaults to 1024 entries
	CacheSize int
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = 1024
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetTimeout(opts.Timeout)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:     client,
		endpoint: opts.BaseURL,
		// metadata changes rarely, keep entries for the process run
		cache: cache.New[timetable.CourseMetadata](opts.CacheSize, time.Hour*12),
	}, nil
}

// Fetch returns the course metadata for a section. Transport failures
// yield "Error retrieving data: ..." sentinels in all three fields and
// are not cached, so a later call may still succeed.
func (c *Client) Fetch(ctx context.Context, req Request) timetable.CourseMetadata {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("crn", req.CRN),
		attribute.String("subject", req.Subject),
		attribute.String("course_number", req.CourseNumber),
	)

	meta, err := c.cache.GetOrCompute(req.cacheKey(), func() (timetable.CourseMetadata, error) {
		return c.fetch(ctx, req)
	})
	if err != nil {
		span.RecordError(err)
		message := fmt.Sprintf("Error retrieving data: %v", err)
		return timetable.CourseMetadata{
			Prerequisites:      message,
			CatalogDescription: message,
			Comments:           message,
		}
	}
	return meta
}

func (c *Client) fetch(ctx context.Context, req Request) (timetable.CourseMetadata, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"CRN":     req.CRN,
			"TERM":    req.Semester.Code(),
			"YEAR":    strconv.Itoa(req.Year),
			"SUBJ":    req.Subject,
			"CRSE":    req.CourseNumber,
			"history": "N",
		}).
		Get(c.endpoint)
	if err != nil {
		return timetable.CourseMetadata{}, err
	}
	if res.IsError() {
		return timetable.CourseMetadata{}, fmt.Errorf("comments page returned status %d", res.StatusCode())
	}

	page := res.String()
	return timetable.CourseMetadata{
		Prerequisites:      extractField(page, prerequisitesRegex, noPrerequisites),
		CatalogDescription: extractField(page, descriptionRegex, noDescription),
		Comments:           extractField(page, commentsRegex, noComments),
	}, nil
}

func extractField(page string, re *regexp.Regexp, fallback string) string {
	m := re.FindStringSubmatch(page)
	if m == nil {
		return fallback
	}
	return htmlutil.CollapseWhitespace(htmlutil.StripTags(m[1]))
}
