package banner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courseplan-backend/lib/scrapers/timetable"

	"github.com/stretchr/testify/require"
)

const commentsFixture = `<html><body><table>
<tr><td class="pldefault"><b>Prerequisites:</b></td></tr>
<tr><td>Prerequisites:</td>
<td class="pldefault">CS 2114 <span>and</span>
	(MATH 2534 or MATH 3034)</td></tr>
<tr><td>Catalog Description:</td>
<td CLASS="pldefault">Study of <i>classic</i> data structures.</td></tr>
<tr><td>Comments:</td>
<td class="pldefault"> Laptop required. </td></tr>
</table></body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{
		BaseURL: server.URL,
		Timeout: time.Second * 5,
	})
	require.Nil(t, err)
	return client
}

func request() Request {
	return Request{
		CRN:          "12345",
		Year:         2026,
		Semester:     timetable.SemesterSpring,
		Subject:      "CS",
		CourseNumber: "3414",
	}
}

func TestFetchExtractsLabeledFields(t *testing.T) {
	var query map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(commentsFixture))
	})

	meta := client.Fetch(context.Background(), request())
	require.Equal(t, "CS 2114 and (MATH 2534 or MATH 3034)", meta.Prerequisites)
	require.Equal(t, "Study of classic data structures.", meta.CatalogDescription)
	require.Equal(t, "Laptop required.", meta.Comments)

	require.Equal(t, map[string]string{
		"CRN":     "12345",
		"TERM":    "01",
		"YEAR":    "2026",
		"SUBJ":    "CS",
		"CRSE":    "3414",
		"history": "N",
	}, query)
}

func TestFetchMissingFieldsUseSentinels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table>
			<tr><td>Comments:</td><td class="pldefault">None.</td></tr>
		</table></body></html>`))
	})

	meta := client.Fetch(context.Background(), request())
	require.Equal(t, "No prerequisites found.", meta.Prerequisites)
	require.Equal(t, "No catalog description found.", meta.CatalogDescription)
	require.Equal(t, "None.", meta.Comments)
}

func TestFetchIsCached(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(commentsFixture))
	})

	first := client.Fetch(context.Background(), request())
	second := client.Fetch(context.Background(), request())
	require.Equal(t, first, second)
	require.Equal(t, 1, requests)

	// a different CRN is a different cache entry
	other := request()
	other.CRN = "54321"
	client.Fetch(context.Background(), other)
	require.Equal(t, 2, requests)
}

func TestTransportFailureYieldsSentinels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	meta := client.Fetch(context.Background(), request())
	require.True(t, strings.HasPrefix(meta.Prerequisites, "Error retrieving data: "))
	require.Equal(t, meta.Prerequisites, meta.CatalogDescription)
	require.Equal(t, meta.Prerequisites, meta.Comments)
}

func TestFailuresAreNotCached(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(commentsFixture))
	})

	meta := client.Fetch(context.Background(), request())
	require.True(t, strings.HasPrefix(meta.Prerequisites, "Error retrieving data: "))

	meta = client.Fetch(context.Background(), request())
	require.Equal(t, "CS 2114 and (MATH 2534 or MATH 3034)", meta.Prerequisites)
	require.Equal(t, 2, requests)
}
