// Package search orchestrates one search request: query expansion,
// upstream fetch, and the scoring/filtering pipeline.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/metrics"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/repository/archive"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/expand"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/rank"
)

// Paging limits.
const (
	DefaultRows = 20
	MaxRows     = 100
	MaxQueryLen = 1024
)

// Request is one validated search request.
type Request struct {
	Query string
	Mode  mode.Mode
	Page  int
	Rows  int
	Fuzzy bool
}

// Response is one ranked result page.
type Response struct {
	Results     []rank.Result
	Expression  string
	Suggestions []string
	NumFound    int
}

// Service handles end-to-end archive search.
type Service struct {
	archive Archive
	expand  *expand.Service
	rank    *rank.Service

	defaultMode mode.Mode
	defaultRows int
	maxRows     int
}

// New creates a search service.
func New(arch Archive, exp *expand.Service, rnk *rank.Service) *Service {
	return &Service{
		archive:     arch,
		expand:      exp,
		rank:        rnk,
		defaultMode: mode.Moderate,
		defaultRows: DefaultRows,
		maxRows:     MaxRows,
	}
}

// WithDefaults overrides the request defaults. Zero values keep the
// built-in defaults.
func (s *Service) WithDefaults(m mode.Mode, defaultRows, maxRows int) *Service {
	if m.IsValid() {
		s.defaultMode = m
	}
	if defaultRows > 0 {
		s.defaultRows = defaultRows
	}
	if maxRows > 0 {
		s.maxRows = maxRows
	}
	return s
}

// Search expands the query, fetches one upstream page, and runs the
// ranking pipeline over it.
func (s *Service) Search(ctx context.Context, req Request) (Response, error) {
	req, err := s.normalizeRequest(req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode), "invalid").Inc()
		return Response{}, err
	}

	expression := s.expand.BuildHybridExpression(req.Query, req.Fuzzy)

	page, err := s.archive.Search(ctx, archive.Query{
		Expression: expression,
		Page:       req.Page,
		Rows:       req.Rows,
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode), "upstream_error").Inc()
		return Response{}, fmt.Errorf("fetch archive page: %w", err)
	}

	qc := s.expand.Context(req.Query)
	results := s.rank.Rank(ctx, &qc, page.Records, req.Mode)

	for _, r := range results {
		if r.Classification.Flagged() {
			metrics.NSFWFlaggedTotal.WithLabelValues(string(r.Classification.Severity())).Inc()
		}
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode), "success").Inc()

	return Response{
		Results:     results,
		Expression:  expression,
		Suggestions: s.expand.SuggestAlternatives(req.Query),
		NumFound:    page.NumFound,
	}, nil
}

// normalizeRequest validates the query and mode and applies paging
// defaults.
func (s *Service) normalizeRequest(req Request) (Request, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return req, fmt.Errorf("query is required: %w", domain.ErrInvalidQuery)
	}
	if len(req.Query) > MaxQueryLen {
		return req, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLen, domain.ErrInvalidQuery)
	}
	if req.Mode == "" {
		req.Mode = s.defaultMode
	}
	if !req.Mode.IsValid() {
		return req, fmt.Errorf("unknown mode %q: %w", req.Mode, domain.ErrInvalidMode)
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Rows <= 0 {
		req.Rows = s.defaultRows
	}
	if req.Rows > s.maxRows {
		req.Rows = s.maxRows
	}
	return req, nil
}
