// Package chi is the HTTP transport: a hand-rolled REST surface over the
// search, suggestion, and classification use cases.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/nsfw"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/classify"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/expand"
	healthuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/health"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/rank"
	searchuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/search"
)

// maxClassifyBody bounds the POST /api/classify request body.
const maxClassifyBody = 1 << 20

// Error codes returned in the JSON error body.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeArchiveUnavailable = "archive_unavailable"
	codeEmbeddingError     = "embedding_provider_error"
	codeInternalError      = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	search        *searchuc.Service
	expand        *expand.Service
	classify      *classify.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	exp *expand.Service,
	cl *classify.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		expand:   exp,
		classify: cl,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidMode, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrArchiveUnavailable, http.StatusBadGateway, codeArchiveUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
	}
	return s
}

// RegisterRoutes mounts the API on the router. Middleware is applied by
// the caller before mounting.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/suggest", s.handleSuggest)
	r.Post("/api/classify", s.handleClassify)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// searchParams are the bound GET /api/search query parameters.
type searchParams struct {
	Query string
	Mode  *string
	Page  *int
	Rows  *int
	Fuzzy *bool
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "q", q, &p.Query); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "mode", q, &p.Mode); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &p.Page); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "rows", q, &p.Rows); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "fuzzy", q, &p.Fuzzy); err != nil {
		return p, err
	}
	return p, nil
}

// scoresResponse is the per-result score breakdown on the wire.
type scoresResponse struct {
	Keyword         float64 `json:"keyword"`
	Semantic        float64 `json:"semantic"`
	Primary         float64 `json:"primary"`
	Relevance       float64 `json:"relevance"`
	Authenticity    float64 `json:"authenticity"`
	HistoricalValue float64 `json:"historicalValue"`
	Transparency    float64 `json:"transparency"`
	DocumentQuality float64 `json:"documentQuality"`
	Popularity      float64 `json:"popularity"`
	Combined        float64 `json:"combined"`
	TrustLevel      string  `json:"trustLevel"`
	Availability    string  `json:"availability"`
}

type classificationResponse struct {
	Flagged  bool     `json:"flagged"`
	Severity string   `json:"severity"`
	Matches  []string `json:"matches,omitempty"`
}

type searchResultItem struct {
	Identifier string                 `json:"identifier"`
	Record     map[string]any         `json:"record"`
	Scores     scoresResponse         `json:"scores"`
	NSFW       classificationResponse `json:"nsfw"`
}

type searchResponse struct {
	Items       []searchResultItem `json:"items"`
	NumFound    int                `json:"numFound"`
	Expression  string             `json:"expression"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// handleSearch handles GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	p, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	req := searchuc.Request{Query: p.Query}
	if p.Mode != nil {
		req.Mode = mode.Mode(*p.Mode)
	}
	if p.Page != nil {
		req.Page = *p.Page
	}
	if p.Rows != nil {
		req.Rows = *p.Rows
	}
	if p.Fuzzy != nil {
		req.Fuzzy = *p.Fuzzy
	}

	resp, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToResponse(&resp.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items:       items,
		NumFound:    resp.NumFound,
		Expression:  resp.Expression,
		Suggestions: resp.Suggestions,
	})
}

type suggestResponse struct {
	Expression  string   `json:"expression"`
	Suggestions []string `json:"suggestions"`
}

// handleSuggest handles GET /api/suggest.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var query string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &query); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	var fuzzy bool
	if err := runtime.BindQueryParameter("form", true, false, "fuzzy", r.URL.Query(), &fuzzy); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		Expression:  s.expand.BuildHybridExpression(query, fuzzy),
		Suggestions: s.expand.SuggestAlternatives(query),
	})
}

type classifyRequest struct {
	Text   string         `json:"text,omitempty"`
	Record map[string]any `json:"record,omitempty"`
}

type classifyResponse struct {
	classificationResponse
	Record map[string]any `json:"record,omitempty"`
}

// handleClassify handles POST /api/classify. Exactly one of text or
// record must be provided; record requests return the annotated copy.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	body := http.MaxBytesReader(w, r.Body, maxClassifyBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	switch {
	case req.Text != "" && req.Record != nil:
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Provide either text or record, not both")
	case req.Text != "":
		c := s.classify.ClassifyText(req.Text)
		writeJSON(w, http.StatusOK, classifyResponse{
			classificationResponse: classificationToResponse(c),
		})
	case req.Record != nil:
		rec := record.FromAnyMap(req.Record)
		c := s.classify.Classify(rec)
		writeJSON(w, http.StatusOK, classifyResponse{
			classificationResponse: classificationToResponse(c),
			Record:                 s.classify.Annotate(rec).AsMap(),
		})
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Either text or record is required")
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func resultToResponse(res *rank.Result) searchResultItem {
	b := res.Breakdown
	return searchResultItem{
		Identifier: res.Record.Identifier(),
		Record:     res.Record.AsMap(),
		Scores: scoresResponse{
			Keyword:         res.KeywordRelevance,
			Semantic:        res.SemanticRelevance,
			Primary:         res.PrimaryScore,
			Relevance:       b.Relevance(),
			Authenticity:    b.Authenticity(),
			HistoricalValue: b.HistoricalValue(),
			Transparency:    b.Transparency(),
			DocumentQuality: b.DocumentQuality(),
			Popularity:      b.Popularity(),
			Combined:        b.Combined(),
			TrustLevel:      string(b.TrustLevel()),
			Availability:    string(b.Availability()),
		},
		NSFW: classificationToResponse(res.Classification),
	}
}

func classificationToResponse(c nsfw.Classification) classificationResponse {
	return classificationResponse{
		Flagged:  c.Flagged(),
		Severity: string(c.Severity()),
		Matches:  c.Matches(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client
// without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidMode,
		domain.ErrInvalidRecord,
		domain.ErrArchiveUnavailable,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
