// Package query holds the parsed search query shared by the expansion and
// scoring engines.
package query

import (
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/text"
)

// Context is a parsed search query: the original text, its normalized
// form, and the deduplicated keyword list.
type Context struct {
	original   string
	normalized string
	keywords   []string
}

// New parses a raw query against a stopword set. Keywords are
// stopword-filtered, longer than two characters, deduplicated, and capped;
// when filtering would empty the set the raw tokens are kept instead.
func New(original string, stopwords map[string]struct{}) Context {
	return Context{
		original:   original,
		normalized: text.Normalize(original),
		keywords:   text.ExtractKeywords(original, stopwords),
	}
}

// Original returns the query as the caller typed it.
func (c *Context) Original() string { return c.original }

// Normalized returns the normalized query text.
func (c *Context) Normalized() string { return c.normalized }

// Keywords returns the extracted keyword list. Callers must not mutate it.
func (c *Context) Keywords() []string { return c.keywords }

// IsEmpty reports whether the query normalizes to nothing.
func (c *Context) IsEmpty() bool { return c.normalized == "" }
