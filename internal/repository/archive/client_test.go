package archive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Logger:  zap.NewNop(),
	})
}

func TestSearch(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"numFound": 2571,
				"docs": [
					{"identifier": "climate-1", "title": "Climate Research", "downloads": 120},
					{"identifier": "climate-2", "title": "Weather Atlas"}
				]
			}
		}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL).Search(context.Background(), Query{
		Expression: "(climate research)",
		Page:       2,
		Rows:       50,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/advancedsearch.php" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery.Get("q") != "(climate research)" {
		t.Errorf("q = %q", gotQuery.Get("q"))
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("rows") != "50" {
		t.Errorf("paging = %s/%s", gotQuery.Get("page"), gotQuery.Get("rows"))
	}
	if gotQuery.Get("output") != "json" {
		t.Errorf("output = %q", gotQuery.Get("output"))
	}
	if fl := gotQuery["fl[]"]; len(fl) != len(returnedFields) {
		t.Errorf("fl[] has %d entries, want %d", len(fl), len(returnedFields))
	}

	if page.NumFound != 2571 {
		t.Errorf("NumFound = %d", page.NumFound)
	}
	if len(page.Records) != 2 {
		t.Fatalf("records = %d", len(page.Records))
	}
	if page.Records[0].Identifier() != "climate-1" {
		t.Errorf("identifier = %q", page.Records[0].Identifier())
	}
	if page.Records[0].Number("downloads") != 120 {
		t.Errorf("downloads = %v", page.Records[0].Number("downloads"))
	}
}

func TestSearch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), Query{Expression: "x", Page: 1, Rows: 10})
	if !errors.Is(err, domain.ErrArchiveUnavailable) {
		t.Errorf("err = %v, want ErrArchiveUnavailable", err)
	}
}

func TestSearch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), Query{Expression: "x", Page: 1, Rows: 10})
	if !errors.Is(err, domain.ErrArchiveUnavailable) {
		t.Errorf("err = %v, want ErrArchiveUnavailable", err)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), Query{Expression: "x", Page: 1, Rows: 10})
	if !errors.Is(err, domain.ErrArchiveUnavailable) {
		t.Errorf("err = %v, want ErrArchiveUnavailable", err)
	}
}
