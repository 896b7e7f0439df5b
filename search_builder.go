package archivist

import (
	"context"
	"strings"
)

// SearchBuilder is a fluent builder for search queries.
type SearchBuilder struct {
	client *Client
	query  string
	opts   SearchOptions
}

// Query starts a fluent search.
func (c *Client) Query(q string) *SearchBuilder {
	return &SearchBuilder{client: c, query: q}
}

// Mode sets the visibility mode.
func (b *SearchBuilder) Mode(m Mode) *SearchBuilder {
	b.opts.Mode = m
	return b
}

// Page sets the result page, 1-based.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.opts.Page = n
	return b
}

// Rows sets the page size.
func (b *SearchBuilder) Rows(n int) *SearchBuilder {
	b.opts.Rows = n
	return b
}

// Fuzzy enables fuzzy terms in the hybrid expression.
func (b *SearchBuilder) Fuzzy() *SearchBuilder {
	b.opts.Fuzzy = true
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (SearchResponse, error) {
	if strings.TrimSpace(b.query) == "" {
		return SearchResponse{}, errNoQuery
	}
	return b.client.Search(ctx, b.query, &b.opts)
}
