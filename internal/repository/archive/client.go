// Package archive is the upstream archive.org advancedsearch client. The
// scoring core never performs I/O; this repository is the collaborator
// that fetches raw records for it.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/metrics"
)

// returnedFields are requested from the advancedsearch API.
var returnedFields = []string{
	"identifier", "title", "description", "mediatype", "creator",
	"collection", "subject", "year", "date", "publicdate", "downloads",
	"language", "publisher",
}

// Query holds one upstream search request.
type Query struct {
	Expression string
	Page       int
	Rows       int
}

// Page is one page of raw archive records.
type Page struct {
	Records  []record.Record
	NumFound int
}

// Client calls the archive advancedsearch endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// Config holds archive client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates an archive API client.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		logger:     cfg.Logger,
	}
}

// Search fetches one page of results for a search expression.
// Upstream failures wrap domain.ErrArchiveUnavailable.
func (c *Client) Search(ctx context.Context, q Query) (Page, error) {
	endpoint, err := c.searchURL(q)
	if err != nil {
		return Page{}, fmt.Errorf("build search url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.ArchiveRequestDuration.WithLabelValues("error").Observe(duration.Seconds())
		return Page{}, fmt.Errorf("archive request failed: %w", domain.ErrArchiveUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.ArchiveRequestDuration.
		WithLabelValues(strconv.Itoa(resp.StatusCode)).
		Observe(duration.Seconds())

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Archive API returned non-200",
			zap.Int("status", resp.StatusCode), zap.String("url", endpoint))
		return Page{}, fmt.Errorf("archive status %d: %w", resp.StatusCode, domain.ErrArchiveUnavailable)
	}

	var body struct {
		Response struct {
			NumFound int              `json:"numFound"`
			Docs     []map[string]any `json:"docs"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Page{}, fmt.Errorf("decode archive response: %w", domain.ErrArchiveUnavailable)
	}

	records := make([]record.Record, 0, len(body.Response.Docs))
	for _, doc := range body.Response.Docs {
		records = append(records, record.FromAnyMap(doc))
	}

	return Page{Records: records, NumFound: body.Response.NumFound}, nil
}

func (c *Client) searchURL(q Query) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	base.Path = "/advancedsearch.php"

	params := url.Values{}
	params.Set("q", q.Expression)
	params.Set("output", "json")
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("rows", strconv.Itoa(q.Rows))
	for _, f := range returnedFields {
		params.Add("fl[]", f)
	}
	base.RawQuery = params.Encode()
	return base.String(), nil
}
