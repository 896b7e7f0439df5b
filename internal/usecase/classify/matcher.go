package classify

import (
	"strings"
	"unicode"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/text"
)

// matcher evaluates one normalized text against the keyword tiers.
// Short targets with morphology tables ("anal", "cum") are matched
// token-wise against their suffix and next-word lists; every other keyword
// matches on token equality, token prefix, or substring of the full text.
type matcher struct {
	groups       lexicon.KeywordGroups
	morphologies map[string]lexicon.Morphology
}

func newMatcher(groups lexicon.KeywordGroups) *matcher {
	return &matcher{
		groups:       groups,
		morphologies: lexicon.Morphologies(),
	}
}

// matchTier returns the terms from a tier found in the text.
func (m *matcher) matchTier(terms []string, normalized string, tokens []string) []string {
	var matched []string
	for _, term := range terms {
		if m.matchTerm(term, normalized, tokens) {
			matched = append(matched, term)
		}
	}
	return matched
}

func (m *matcher) matchTerm(term, normalized string, tokens []string) bool {
	if morph, guarded := m.morphologies[term]; guarded {
		return matchMorphology(morph, tokens)
	}

	for _, tok := range tokens {
		if tok == term || strings.HasPrefix(tok, term) {
			return true
		}
	}
	return strings.Contains(normalized, term)
}

// matchMorphology applies the declarative exception table of a guarded
// target across the token stream.
func matchMorphology(morph lexicon.Morphology, tokens []string) bool {
	for i, tok := range tokens {
		if tok == morph.Target {
			// A bare target token matches outright; the next-word list
			// confirms compound phrases like "anal sex".
			if i+1 < len(tokens) && containsWord(morph.NextWords, tokens[i+1]) {
				return true
			}
			return true
		}

		if !strings.HasPrefix(tok, morph.Target) {
			continue
		}
		rest := tok[len(morph.Target):]
		if hasAnyPrefix(rest, morph.SafeSuffixes) {
			continue
		}
		if hasAnyPrefix(rest, morph.ExplicitSuffixes) {
			return true
		}
		// Unknown short or digit-leading remainders assume the worst.
		if len(rest) <= 2 || leadsWithDigit(rest) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsWord(words []string, w string) bool {
	for _, cand := range words {
		if cand == w {
			return true
		}
	}
	return false
}

func leadsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// tokenizeForMatch normalizes once and splits; both views feed the tiers.
func tokenizeForMatch(raw string) (normalized string, tokens []string) {
	normalized = text.Normalize(raw)
	if normalized == "" {
		return "", nil
	}
	return normalized, strings.Fields(normalized)
}
