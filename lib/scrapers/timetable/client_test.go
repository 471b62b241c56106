package timetable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{
		BaseURL:  server.URL,
		Timeout:  time.Second * 5,
		CacheTTL: time.Minute,
	})
	require.Nil(t, err)
	return client, server
}

func TestSearchNoSectionsIsEmptyNotError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>There was a problem with your request.
			NO SECTIONS FOUND FOR THIS INQUIRY.</body></html>`))
	})

	page, err := client.Search(context.Background(), SearchQuery{
		Year: 2026, Semester: SemesterSpring, Subject: "CS", CourseNumber: "9999",
	})
	require.Nil(t, err)
	require.Empty(t, page.Sections)
}

func TestSearchUpstreamRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>There was a problem with your request.
			<b class=red_msg><li>Term is not available for search.</b></body></html>`))
	})

	_, err := client.Search(context.Background(), SearchQuery{
		Year: 1990, Semester: SemesterSpring,
	})
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, "Term is not available for search.", rejected.Message)
}

func TestSearchInvalidRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>THERE IS AN ERROR WITH YOUR REQUEST</body></html>`))
	})

	_, err := client.Search(context.Background(), SearchQuery{
		Year: 2026, Semester: SemesterSpring,
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSearchEncodesFormFields(t *testing.T) {
	var form map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, r.ParseForm())
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(searchPage(lectureRow())))
	})

	_, err := client.Search(context.Background(), SearchQuery{
		Year: 2026, Semester: SemesterSpring, Subject: "CS", CourseNumber: "3414",
	})
	require.Nil(t, err)
	require.Equal(t, "202601", form["TERMYEAR"])
	require.Equal(t, "CS", form["subj_code"])
	require.Equal(t, "3414", form["CRSE_NUMBER"])
	require.Equal(t, "AR%", form["CORE_CODE"])
}

func TestRepeatedSearchesAreCached(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(searchPage(lectureRow())))
	})

	query := SearchQuery{Year: 2026, Semester: SemesterSpring, Subject: "CS", CourseNumber: "3414"}
	for i := 0; i < 3; i++ {
		page, err := client.Search(context.Background(), query)
		require.Nil(t, err)
		require.Len(t, page.Sections, 1)
	}
	require.Equal(t, 1, requests)

	// a different query misses the cache
	query.CourseNumber = "2114"
	_, err := client.Search(context.Background(), query)
	require.Nil(t, err)
	require.Equal(t, 2, requests)
}

func TestSearchCRN(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, r.ParseForm())
		if r.PostForm.Get("crn") == "12345" {
			w.Write([]byte(searchPage(lectureRow())))
			return
		}
		w.Write([]byte(`There was a problem with your request. NO SECTIONS FOUND FOR THIS INQUIRY.`))
	})

	section, err := client.SearchCRN(context.Background(), 2026, SemesterSpring, "12345")
	require.Nil(t, err)
	require.NotNil(t, section)
	require.Equal(t, "CS3414", section.CourseID())

	missing, err := client.SearchCRN(context.Background(), 2026, SemesterSpring, "99999")
	require.Nil(t, err)
	require.Nil(t, missing)
}

func TestHasOpenSeats(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, r.ParseForm())
		if r.PostForm.Get("open_only") == "on" {
			w.Write([]byte(`There was a problem with your request. NO SECTIONS FOUND FOR THIS INQUIRY.`))
			return
		}
		w.Write([]byte(searchPage(lectureRow())))
	})

	section, err := client.SearchCRN(context.Background(), 2026, SemesterSpring, "12345")
	require.Nil(t, err)
	require.NotNil(t, section)

	open, err := client.HasOpenSeats(context.Background(), *section)
	require.Nil(t, err)
	require.False(t, open)
}

func TestTermsAndSubjectsDiscovery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`<html><body>
			<OPTION VALUE="202601">Spring 2026</OPTION>
			<OPTION VALUE="202509">Fall 2025</OPTION>
			<OPTION VALUE="202601">Spring 2026</OPTION>
			<script>new Option("CS - Computer Science", "CS");
			new Option("MATH - Mathematics", "MATH");</script>
		</body></html>`))
	})

	terms, err := client.Terms(context.Background())
	require.Nil(t, err)
	require.Equal(t, []Term{
		{Semester: SemesterSpring, Year: 2026},
		{Semester: SemesterFall, Year: 2025},
	}, terms)

	subjects, err := client.Subjects(context.Background())
	require.Nil(t, err)
	require.Equal(t, []Subject{
		{Code: "CS", Name: "Computer Science"},
		{Code: "MATH", Name: "Mathematics"},
	}, subjects)
}
