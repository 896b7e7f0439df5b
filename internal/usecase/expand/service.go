// Package expand builds hybrid archive search expressions and alternate
// query suggestions from a static synonym dictionary.
package expand

import (
	"strings"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/query"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/text"
)

// Expansion limits.
const (
	// MaxSynonymsPerToken caps the quoted synonym OR-group per token.
	MaxSynonymsPerToken = 4
	// MaxSuggestions caps synonym-substitution rewrites.
	MaxSuggestions = 5
	// WildcardMinLen is the minimum token length for a wildcard clause.
	WildcardMinLen = 4
)

// Service is the query expansion engine.
type Service struct {
	lex *lexicon.Lexicon
}

// New creates a query expansion service.
func New(lex *lexicon.Lexicon) *Service {
	return &Service{lex: lex}
}

// Context parses a raw query into a query.Context.
func (s *Service) Context(q string) query.Context {
	return query.New(q, s.lex.Stopwords())
}

// BuildHybridExpression combines exact, fuzzy, wildcard, and synonym
// clauses into one OR-joined archive search expression. A blank query
// yields "".
func (s *Service) BuildHybridExpression(q string, includeFuzzy bool) string {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return ""
	}

	tokens := text.Tokenize(q)

	var segments []string
	seen := make(map[string]struct{})
	add := func(seg string) {
		if seg == "" {
			return
		}
		if _, dup := seen[seg]; dup {
			return
		}
		seen[seg] = struct{}{}
		segments = append(segments, seg)
	}

	// Verbatim query, parenthesized.
	add("(" + trimmed + ")")

	// Fuzzy clause per token.
	if includeFuzzy {
		for _, tok := range tokens {
			add(tok + "~")
		}
	}

	// Wildcard clause for long tokens only.
	for _, tok := range tokens {
		if len(tok) >= WildcardMinLen {
			add(tok + "*")
		}
	}

	// Quoted synonym OR-group per token.
	for _, tok := range tokens {
		syns := s.lex.Synonyms(tok)
		if len(syns) == 0 {
			continue
		}
		if len(syns) > MaxSynonymsPerToken {
			syns = syns[:MaxSynonymsPerToken]
		}
		quoted := make([]string, len(syns))
		for i, syn := range syns {
			quoted[i] = `"` + syn + `"`
		}
		add("(" + strings.Join(quoted, " OR ") + ")")
	}

	return strings.Join(segments, " OR ")
}

// SuggestAlternatives proposes up to MaxSuggestions synonym-substituted
// rewrites of the query, plus one wildcard variant. No suggestion ever
// equals the input, compared case-insensitively.
func (s *Service) SuggestAlternatives(q string) []string {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return nil
	}

	qc := s.Context(q)
	lowerInput := strings.ToLower(trimmed)

	var suggestions []string
	seen := make(map[string]struct{})
	add := func(candidate string) bool {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || strings.EqualFold(candidate, trimmed) {
			return false
		}
		key := strings.ToLower(candidate)
		if key == lowerInput {
			return false
		}
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, candidate)
		return true
	}

	for _, kw := range qc.Keywords() {
		if len(suggestions) >= MaxSuggestions {
			break
		}
		for _, syn := range s.lex.Synonyms(kw) {
			if add(substituteToken(qc.Normalized(), kw, syn)) && len(suggestions) >= MaxSuggestions {
				break
			}
		}
	}

	if len(suggestions) < MaxSuggestions {
		add(qc.Normalized() + "*")
	}

	return suggestions
}

// substituteToken replaces whole-token occurrences of old with repl in a
// normalized query.
func substituteToken(normalized, old, repl string) string {
	tokens := strings.Fields(normalized)
	for i, tok := range tokens {
		if tok == old {
			tokens[i] = repl
		}
	}
	return strings.Join(tokens, " ")
}
