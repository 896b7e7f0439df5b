package archivist

import (
	"context"
	"fmt"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/rank"
	searchuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/search"
)

// Mode is the content visibility mode.
type Mode string

// Visibility modes.
const (
	ModeSafe         Mode = "safe"
	ModeModerate     Mode = "moderate"
	ModeUnrestricted Mode = "unrestricted"
	ModeNSFWOnly     Mode = "nsfw-only"
)

// SearchOptions configures one search request.
type SearchOptions struct {
	Mode  Mode
	Page  int
	Rows  int
	Fuzzy bool
}

// Scores is the public score breakdown of one result.
type Scores struct {
	Keyword         float64
	Semantic        float64
	Primary         float64
	Relevance       float64
	Authenticity    float64
	HistoricalValue float64
	Transparency    float64
	DocumentQuality float64
	Popularity      float64
	Combined        float64
	TrustLevel      string
	Availability    string
}

// Classification is the public NSFW classification of one result.
type Classification struct {
	Flagged  bool
	Severity string
	Matches  []string
}

// SearchResult is one scored archive record.
type SearchResult struct {
	Identifier string
	Record     map[string]any
	Scores     Scores
	NSFW       Classification
}

// SearchResponse is one ranked result page.
type SearchResponse struct {
	Results     []SearchResult
	Expression  string
	Suggestions []string
	NumFound    int
}

// Search runs the full pipeline for one query.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (SearchResponse, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	resp, err := c.search.Search(ctx, searchuc.Request{
		Query: query,
		Mode:  mode.Mode(opts.Mode),
		Page:  opts.Page,
		Rows:  opts.Rows,
		Fuzzy: opts.Fuzzy,
	})
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	return SearchResponse{
		Results:     fromRankResults(resp.Results),
		Expression:  resp.Expression,
		Suggestions: resp.Suggestions,
		NumFound:    resp.NumFound,
	}, nil
}

// Suggest returns the hybrid expression and alternative query
// suggestions without hitting the archive.
func (c *Client) Suggest(query string, fuzzy bool) (expression string, suggestions []string) {
	return c.expand.BuildHybridExpression(query, fuzzy), c.expand.SuggestAlternatives(query)
}

// ClassifyText classifies one piece of text.
func (c *Client) ClassifyText(text string) Classification {
	cl := c.classify.ClassifyText(text)
	return Classification{
		Flagged:  cl.Flagged(),
		Severity: string(cl.Severity()),
		Matches:  cl.Matches(),
	}
}

func fromRankResults(results []rank.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		b := r.Breakdown
		out[i] = SearchResult{
			Identifier: r.Record.Identifier(),
			Record:     r.Record.AsMap(),
			Scores: Scores{
				Keyword:         r.KeywordRelevance,
				Semantic:        r.SemanticRelevance,
				Primary:         r.PrimaryScore,
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
			NSFW: Classification{
				Flagged:  r.Classification.Flagged(),
				Severity: string(r.Classification.Severity()),
				Matches:  r.Classification.Matches(),
			},
		}
	}
	return out
}
