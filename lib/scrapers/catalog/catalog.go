// Package catalog scrapes the university course-catalog pages into a
// flat list of {code, title, credits} records, used as the fallback
// source when a timetable search comes back empty.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"courseplan-backend/lib/htmlutil"
	"courseplan-backend/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseURL = "https://catalog.vt.edu/undergraduate/course-descriptions/"

// Course is one catalog entry. Credits is [n] for a fixed value,
// [low, high] for a range, or nil when the page carried nothing
// parseable.
type Course struct {
	Code    string
	Title   string
	Credits []int
}

type Client struct {
	http    *resty.Client
	baseURL string
}

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// per-request timeout, defaults to 15s
	Timeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 15
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:    client,
		baseURL: opts.BaseURL,
	}
}

// Courses scrapes every course block on a subject's catalog page.
func (c *Client) Courses(ctx context.Context, subject string) ([]Course, error) {
	ctx, span := tracer.Start(ctx, "client:Courses")
	defer span.End()
	span.SetAttributes(attribute.String("subject", subject))

	link := c.baseURL + strings.ToLower(subject) + "/"
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch catalog page")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("catalog page returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch catalog page")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, err
	}

	var courses []Course
	doc.Find("div.courseblock").Each(func(_ int, block *goquery.Selection) {
		code := htmlutil.CollapseWhitespace(block.Find("span.detail-code").First().Text())
		title := htmlutil.CollapseWhitespace(block.Find("span.detail-title").First().Text())
		creditText := htmlutil.CollapseWhitespace(block.Find("span.detail-hours_html").First().Text())
		if code == "" || title == "" || creditText == "" {
			return
		}

		courses = append(courses, Course{
			Code:    strings.ReplaceAll(code, " ", ""),
			Title:   title,
			Credits: parseCreditText(creditText),
		})
	})

	span.SetAttributes(attribute.Int("courses", len(courses)))
	return courses, nil
}

// parseCreditText handles the "(3 credits)" and "(1-19 credits)" forms.
// Anything else yields nil rather than an error: catalog formatting is
// not stable enough to be load-bearing.
func parseCreditText(text string) []int {
	if !strings.Contains(text, "(") || !strings.Contains(strings.ToLower(text), "credit") {
		return nil
	}

	trimmed := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(text), "("), ")")
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return nil
	}
	first := fields[0]

	if low, high, found := strings.Cut(first, "-"); found {
		lowN, err := strconv.Atoi(low)
		if err != nil {
			return nil
		}
		highN, err := strconv.Atoi(high)
		if err != nil {
			return nil
		}
		return []int{lowN, highN}
	}

	n, err := strconv.Atoi(first)
	if err != nil {
		return nil
	}
	return []int{n}
}
