// Package text holds the shared normalization, tokenization, and string
// distance primitives used by query expansion, scoring, and classification.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text, strips diacritics via Unicode NFD
// decomposition, collapses every non-letter/non-digit run to a single
// space, and trims the result.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// The chained transformer is stateful, so build it per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSpace := false
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// Tokenize normalizes text and splits it on the same word boundary,
// dropping empty tokens.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// MaxKeywords caps the keyword list extracted from a query.
const MaxKeywords = 24

// ExtractKeywords tokenizes a query, drops stopwords and tokens of length
// <= 2, dedupes in first-seen order, and caps the list at MaxKeywords.
// When filtering empties the set, the raw token list is returned instead,
// so any non-blank query yields at least one keyword.
func ExtractKeywords(query string, stopwords map[string]struct{}) []string {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
		if len(keywords) == MaxKeywords {
			break
		}
	}

	if len(keywords) == 0 {
		if len(tokens) > MaxKeywords {
			tokens = tokens[:MaxKeywords]
		}
		return tokens
	}
	return keywords
}

// TokenSet converts a token list into a membership set.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
