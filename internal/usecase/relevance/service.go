// Package relevance scores archive records against a parsed query:
// keyword coverage, semantic similarity, and a field-weighted score with
// fuzzy and proximity credit.
package relevance

import (
	"math"
	"strings"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/query"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/score"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/text"
)

// Scoring constants.
const (
	// synonymCredit is the semantic credit for a synonym-set hit.
	synonymCredit = 0.85
	// repeatCreditFactor scales keyword credit for occurrences after the
	// first (diminishing returns).
	repeatCreditFactor = 0.05
	// fuzzyMaxDistance is the edit-distance ceiling for fuzzy credit.
	fuzzyMaxDistance = 2
	// fuzzyMinSimilarity is the similarity floor for fuzzy credit.
	fuzzyMinSimilarity = 0.35
	// noKeywordScore is the field-weighted default for keyword-less queries.
	noKeywordScore = 0.2
)

// Primary combined-score weights.
const (
	keywordWeight    = 0.5
	semanticWeight   = 0.3
	qualityWeight    = 0.1
	popularityWeight = 0.1
)

// Service is the relevance scorer.
type Service struct {
	lex *lexicon.Lexicon
}

// New creates a relevance scorer.
func New(lex *lexicon.Lexicon) *Service {
	return &Service{lex: lex}
}

// KeywordRelevance is the fraction of query keywords literally present in
// the document token set.
func (s *Service) KeywordRelevance(qc *query.Context, rec record.Record) float64 {
	keywords := qc.Keywords()
	if len(keywords) == 0 {
		return 0
	}
	docSet := text.TokenSet(text.Tokenize(DocumentText(rec)))
	hits := 0
	for _, kw := range keywords {
		if _, ok := docSet[kw]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// SemanticRelevance averages, per query token, the best of exact match,
// synonym-set membership, and Levenshtein similarity against the document
// tokens.
func (s *Service) SemanticRelevance(qc *query.Context, rec record.Record) float64 {
	queryTokens := text.Tokenize(qc.Original())
	if len(queryTokens) == 0 {
		return 0
	}
	docTokens := text.Tokenize(DocumentText(rec))
	docSet := text.TokenSet(docTokens)

	var total float64
	for _, tok := range queryTokens {
		total += s.tokenAffinity(tok, docTokens, docSet)
	}
	return score.Clamp01(total / float64(len(queryTokens)))
}

func (s *Service) tokenAffinity(tok string, docTokens []string, docSet map[string]struct{}) float64 {
	if _, ok := docSet[tok]; ok {
		return 1.0
	}
	for _, syn := range s.lex.Synonyms(tok) {
		// Multi-word synonyms cannot appear in a token set.
		if strings.ContainsRune(syn, ' ') {
			continue
		}
		if _, ok := docSet[syn]; ok {
			return synonymCredit
		}
	}

	best := 0.0
	for _, dt := range docTokens {
		if sim := text.Similarity(tok, dt); sim > best {
			best = sim
		}
	}
	return best
}

// FieldRelevance is the field-weighted relevance used by trust scoring:
// exact-substring, per-occurrence keyword, fuzzy, and proximity credit
// summed across fields, compressed with 1-e^(-raw). Queries without
// keywords default to a flat 0.2.
func (s *Service) FieldRelevance(qc *query.Context, rec record.Record) float64 {
	keywords := qc.Keywords()
	if len(keywords) == 0 {
		return noKeywordScore
	}

	weights := lexicon.WeightsFor(rec.MediaType())
	fields := FieldsFor(rec)

	var raw float64
	for name, fieldText := range fields {
		if fieldText == "" {
			continue
		}
		w, ok := weights[name]
		if !ok {
			continue
		}
		raw += scoreField(qc, keywords, fieldText, w)
	}

	return score.Clamp01(1 - math.Exp(-raw))
}

func scoreField(qc *query.Context, keywords []string, fieldText string, w lexicon.FieldWeight) float64 {
	normalized := text.Normalize(fieldText)
	if normalized == "" {
		return 0
	}
	tokens := strings.Fields(normalized)

	var raw float64

	// Whole-query exact substring.
	if qc.Normalized() != "" && strings.Contains(normalized, qc.Normalized()) {
		raw += w.Base
	}

	for _, kw := range keywords {
		occurrences := strings.Count(normalized, kw)
		if occurrences > 0 {
			// First occurrence earns full credit, repeats earn a sliver.
			raw += w.KeywordCredit + float64(occurrences-1)*repeatCreditFactor*w.Base
			continue
		}
		if sim := bestFuzzySimilarity(kw, tokens); sim > 0 {
			raw += w.FuzzyCredit * sim
		}
	}

	raw += proximityBonus(keywords, tokens) * w.Base

	return raw
}

// bestFuzzySimilarity finds the closest document token within the fuzzy
// window. Returns 0 when nothing qualifies.
func bestFuzzySimilarity(kw string, tokens []string) float64 {
	best := 0.0
	for _, tok := range tokens {
		if text.Levenshtein(kw, tok) > fuzzyMaxDistance {
			continue
		}
		sim := text.Similarity(kw, tok)
		if sim > fuzzyMinSimilarity && sim > best {
			best = sim
		}
	}
	return best
}

// Proximity window tiers: tightest qualifying tier only.
var proximityTiers = []struct {
	window int
	credit float64
}{
	{3, 0.20},
	{6, 0.12},
	{10, 0.08},
}

// proximityBonus rewards two or more distinct keywords co-occurring within
// a small token window.
func proximityBonus(keywords []string, tokens []string) float64 {
	if len(keywords) < 2 {
		return 0
	}

	// Token positions per keyword present in the field.
	positions := make(map[string][]int)
	for i, tok := range tokens {
		for _, kw := range keywords {
			if tok == kw {
				positions[kw] = append(positions[kw], i)
			}
		}
	}
	if len(positions) < 2 {
		return 0
	}

	minGap := math.MaxInt
	kws := make([]string, 0, len(positions))
	for kw := range positions {
		kws = append(kws, kw)
	}
	for i := 0; i < len(kws); i++ {
		for j := i + 1; j < len(kws); j++ {
			for _, a := range positions[kws[i]] {
				for _, b := range positions[kws[j]] {
					gap := a - b
					if gap < 0 {
						gap = -gap
					}
					if gap < minGap {
						minGap = gap
					}
				}
			}
		}
	}

	for _, tier := range proximityTiers {
		if minGap <= tier.window {
			return tier.credit
		}
	}
	return 0
}

// PrimaryScore is the combined ranking score:
// keyword*0.5 + semantic*0.3 + quality*0.1 + popularity*0.1.
func (s *Service) PrimaryScore(keyword, semantic, quality, popularity float64) float64 {
	return score.Clamp01(
		keyword*keywordWeight +
			semantic*semanticWeight +
			quality*qualityWeight +
			popularity*popularityWeight,
	)
}
