package timetable

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"strconv"
	"strings"
	"time"

	"courseplan-backend/lib/cache"
	"courseplan-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseURL = "https://apps.es.vt.edu/ssb/HZSKVTSC.P_ProcRequest"

const (
	invalidRequestMarker = "THERE IS AN ERROR WITH YOUR REQUEST"
	problemMarker        = "There was a problem with your request"
	noSectionsMarker     = "NO SECTIONS FOUND FOR THIS INQUIRY"
)

var redMessageRegex = regexp.MustCompile(`<b class=red_msg><li>(.+)</b>`)

// SearchPage is one successful (possibly empty) search response. The
// raw HTML is retained so pathway tags can be scanned out of the same
// response the sections came from.
type SearchPage struct {
	Sections []Section
	RawHTML  string
}

// Client queries the timetable search endpoint over a reused session.
// Repeated identical searches within the cache TTL are served from
// memory to bound load on the upstream portal.
type Client struct {
	http     *resty.Client
	endpoint string
	queries  *cache.Cache[SearchPage]
}

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// per-request timeout, defaults to 10s
	Timeout time.Duration
	// query result cache lifetime, defaults to 1 minute
	CacheTTL time.Duration
	// query result cache capacity, defaults to 256 entries
	CacheSize int
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = time.Minute
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = 256
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:     client,
		endpoint: opts.BaseURL,
		queries:  cache.New[SearchPage](opts.CacheSize, opts.CacheTTL),
	}, nil
}

// Search runs one timetable query. An upstream "no sections found"
// response is a valid empty SearchPage, not an error.
func (c *Client) Search(ctx context.Context, q SearchQuery) (SearchPage, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("term", q.TermYear()),
		attribute.String("subject", q.Subject),
		attribute.String("course_number", q.CourseNumber),
		attribute.String("crn", q.CRN),
	)

	page, err := c.queries.GetOrCompute(q.cacheKey(), func() (SearchPage, error) {
		return c.search(ctx, q)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return SearchPage{}, err
	}
	span.SetAttributes(attribute.Int("sections", len(page.Sections)))
	return page, nil
}

func (c *Client) search(ctx context.Context, q SearchQuery) (SearchPage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(q.Values()).
		Post(c.endpoint)
	if err != nil {
		return SearchPage{}, err
	}
	if res.IsError() {
		return SearchPage{}, fmt.Errorf("search returned status %d", res.StatusCode())
	}

	body := res.String()
	err = classifyResponse(body)
	if errors.Is(err, errNoSections) {
		return SearchPage{RawHTML: body}, nil
	}
	if err != nil {
		return SearchPage{}, err
	}

	sections, err := parseSections(q.Year, q.Semester, body)
	if err != nil {
		return SearchPage{}, err
	}
	return SearchPage{Sections: sections, RawHTML: body}, nil
}

// classifyResponse sorts a response body into the three failure
// outcomes the portal can signal inline. A nil return means the body is
// a real result page.
func classifyResponse(body string) error {
	if strings.Contains(body, invalidRequestMarker) {
		return ErrInvalidRequest
	}
	if strings.Contains(body, problemMarker) {
		if strings.Contains(body, noSectionsMarker) {
			return errNoSections
		}
		message := "no further detail provided"
		if m := redMessageRegex.FindStringSubmatch(body); m != nil {
			message = m[1]
		}
		return &RejectedError{Message: message}
	}
	return nil
}

// SearchCRN looks up the single section registered under a CRN.
// Returns nil when the CRN does not exist in the term.
func (c *Client) SearchCRN(ctx context.Context, year int, semester Semester, crn string) (*Section, error) {
	page, err := c.Search(ctx, SearchQuery{
		Year:     year,
		Semester: semester,
		CRN:      crn,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Sections) == 0 {
		return nil, nil
	}
	return &page.Sections[0], nil
}

// HasOpenSeats re-runs a CRN search with the open-only flag set.
func (c *Client) HasOpenSeats(ctx context.Context, s Section) (bool, error) {
	page, err := c.Search(ctx, SearchQuery{
		Year:     s.Year,
		Semester: s.Semester,
		CRN:      s.CRN,
		Status:   StatusOpen,
	})
	if err != nil {
		return false, err
	}
	return len(page.Sections) > 0, nil
}

// Term is one term the portal currently accepts searches for.
type Term struct {
	Semester Semester
	Year     int
}

var termOptionRegex = regexp.MustCompile(`<OPTION VALUE="\d{6}">([A-Z][a-z]+) (\d+)</OPTION>`)

// Terms discovers the searchable terms from the search form page.
func (c *Client) Terms(ctx context.Context) ([]Term, error) {
	ctx, span := tracer.Start(ctx, "client:Terms")
	defer span.End()

	body, err := c.get(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search form")
		return nil, err
	}

	var terms []Term
	seen := map[Term]bool{}
	for _, m := range termOptionRegex.FindAllStringSubmatch(body, -1) {
		semester, err := ParseSemester(m[1])
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		term := Term{Semester: semester, Year: year}
		if seen[term] {
			continue
		}
		seen[term] = true
		terms = append(terms, term)
	}
	return terms, nil
}

// Subject is one searchable subject prefix, e.g. {CS, Computer Science}.
type Subject struct {
	Code string
	Name string
}

var subjectOptionRegex = regexp.MustCompile(`\("([A-Z]+) - (.+?)"`)

// Subjects discovers the searchable subject codes from the search form
// page.
func (c *Client) Subjects(ctx context.Context) ([]Subject, error) {
	ctx, span := tracer.Start(ctx, "client:Subjects")
	defer span.End()

	body, err := c.get(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search form")
		return nil, err
	}

	var subjects []Subject
	seen := map[string]bool{}
	for _, m := range subjectOptionRegex.FindAllStringSubmatch(body, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		subjects = append(subjects, Subject{Code: m[1], Name: m[2]})
	}
	return subjects, nil
}

func (c *Client) get(ctx context.Context) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.endpoint)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("search form returned status %d", res.StatusCode())
	}
	return res.String(), nil
}
