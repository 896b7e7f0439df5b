// Package classify flags NSFW archive records by matching harvested
// metadata text against tiered keyword groups, with morphology-aware
// exception rules for short ambiguous targets.
package classify

import (
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/nsfw"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
)

// Annotation field names written onto records.
const (
	FieldFlag    = "nsfw"
	FieldLevel   = "nsfwLevel"
	FieldMatches = "nsfwMatches"
)

// Service is the NSFW classifier. Classification is pure and
// deterministic; the service is safe for unlimited concurrent use.
type Service struct {
	matcher *matcher
}

// New creates a classifier over the lexicon's keyword groups.
func New(lex *lexicon.Lexicon) *Service {
	return &Service{matcher: newMatcher(lex.Groups())}
}

// Classify harvests a record's allowlisted fields and classifies the
// combined text.
func (s *Service) Classify(rec record.Record) nsfw.Classification {
	return s.ClassifyText(harvestText(rec))
}

// ClassifyText classifies one piece of text. Blank text is never flagged.
func (s *Service) ClassifyText(raw string) nsfw.Classification {
	normalized, tokens := tokenizeForMatch(raw)
	if normalized == "" {
		return nsfw.None()
	}

	groups := s.matcher.groups
	explicit := s.matcher.matchTier(groups.Explicit, normalized, tokens)
	violent := s.matcher.matchTier(groups.Violent, normalized, tokens)
	mild := s.matcher.matchTier(groups.Adult, normalized, tokens)

	// Highest tier wins; matches aggregate the triggering tier and below.
	switch {
	case len(explicit) > 0:
		all := append(append(explicit, violent...), mild...)
		return nsfw.New(nsfw.SeverityExplicit, all)
	case len(violent) > 0:
		return nsfw.New(nsfw.SeverityViolent, append(violent, mild...))
	case len(mild) > 0:
		return nsfw.New(nsfw.SeverityMild, mild)
	default:
		return nsfw.None()
	}
}

// Annotate returns a copy of the record with classification fields
// attached. Unflagged records get any stale annotation cleared, so
// re-annotating is idempotent.
func (s *Service) Annotate(rec record.Record) record.Record {
	c := s.Classify(rec)

	out := rec.Clone()
	if !c.Flagged() {
		out[FieldFlag] = record.String("false")
		delete(out, FieldLevel)
		delete(out, FieldMatches)
		return out
	}

	matches := make([]record.Value, len(c.Matches()))
	for i, m := range c.Matches() {
		matches[i] = record.String(m)
	}
	out[FieldFlag] = record.String("true")
	out[FieldLevel] = record.String(string(c.Severity()))
	out[FieldMatches] = record.List(matches...)
	return out
}
