package archivist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func archiveStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch(t *testing.T) {
	srv := archiveStub(t, `{
		"response": {
			"numFound": 7,
			"docs": [
				{"identifier": "climate-1", "title": "Climate Research Archive"},
				{"identifier": "climate-2", "title": "Climate porn"}
			]
		}
	}`)
	c := newTestClient(t, WithArchiveBaseURL(srv.URL), WithDefaultMode(ModeModerate))

	resp, err := c.Search(context.Background(), "climate research", &SearchOptions{Fuzzy: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.NumFound != 7 {
		t.Errorf("NumFound = %d", resp.NumFound)
	}
	if resp.Expression == "" || len(resp.Suggestions) == 0 {
		t.Errorf("expansion missing: %q / %v", resp.Expression, resp.Suggestions)
	}
	// Moderate mode drops the explicit record.
	if len(resp.Results) != 1 || resp.Results[0].Identifier != "climate-1" {
		t.Fatalf("results = %+v", resp.Results)
	}
	r := resp.Results[0]
	if r.Scores.Primary <= 0 || r.Scores.TrustLevel == "" {
		t.Errorf("scores = %+v", r.Scores)
	}
	if r.NSFW.Flagged {
		t.Error("clean record flagged")
	}
	if r.Record["title"] != "Climate Research Archive" {
		t.Errorf("record = %v", r.Record)
	}
}

func TestSearch_InvalidQuery(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.Search(context.Background(), "   ", nil); err == nil {
		t.Fatal("expected error for blank query")
	}
}

func TestSearchBuilder(t *testing.T) {
	srv := archiveStub(t, `{"response": {"numFound": 1, "docs": [
		{"identifier": "climate-1", "title": "Climate Atlas"}
	]}}`)
	c := newTestClient(t, WithArchiveBaseURL(srv.URL))

	resp, err := c.Query("climate").Mode(ModeUnrestricted).Page(1).Rows(10).Fuzzy().Do(context.Background())
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d", len(resp.Results))
	}
}

func TestSearchBuilder_NoQuery(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.Query("  ").Do(context.Background()); !errors.Is(err, errNoQuery) {
		t.Errorf("err = %v, want errNoQuery", err)
	}
}

func TestSuggest(t *testing.T) {
	c := newTestClient(t)
	expression, suggestions := c.Suggest("climate research", true)
	if expression == "" {
		t.Error("empty expression")
	}
	if len(suggestions) == 0 {
		t.Error("no suggestions")
	}
}

func TestClassifyText(t *testing.T) {
	c := newTestClient(t)
	if got := c.ClassifyText("vintage porn reel"); !got.Flagged || got.Severity != "explicit" {
		t.Errorf("classification = %+v", got)
	}
	if got := c.ClassifyText("climate analysis of coastal regions"); got.Flagged {
		t.Errorf("false positive: %+v", got)
	}
}

func TestPing_NoStore(t *testing.T) {
	c := newTestClient(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping without cache = %v, want nil", err)
	}
}

func TestNew_ArchiveTimeoutOption(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"response": {"numFound": 0, "docs": []}}`))
	}))
	t.Cleanup(slow.Close)

	c := newTestClient(t, WithArchiveBaseURL(slow.URL), WithArchiveTimeout(50*time.Millisecond))
	if _, err := c.Search(context.Background(), "climate", nil); err == nil {
		t.Fatal("expected timeout error")
	}
}
