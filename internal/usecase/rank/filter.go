package rank

import (
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/nsfw"
)

// fallbackResultCount bounds the unfiltered fallback for nsfw-only mode.
const fallbackResultCount = 10

// MatchesMode applies the visibility policy to one classification.
// Moderate blocks both explicit and violent content.
func MatchesMode(c nsfw.Classification, m mode.Mode) bool {
	switch m {
	case mode.Unrestricted:
		return true
	case mode.Safe:
		return !c.Flagged()
	case mode.Moderate:
		return c.Severity() != nsfw.SeverityExplicit && c.Severity() != nsfw.SeverityViolent
	case mode.NSFWOnly:
		return c.Flagged()
	default:
		return false
	}
}

// filterByMode selects the results admitted by the mode. When nsfw-only
// matches nothing, the top fallbackResultCount unfiltered results are
// returned instead of an empty page.
func filterByMode(items []Result, m mode.Mode) []Result {
	kept := make([]Result, 0, len(items))
	for _, item := range items {
		if MatchesMode(item.Classification, m) {
			kept = append(kept, item)
		}
	}

	if len(kept) == 0 && m == mode.NSFWOnly && len(items) > 0 {
		n := len(items)
		if n > fallbackResultCount {
			n = fallbackResultCount
		}
		return items[:n]
	}
	return kept
}

// ShouldSuppressGeneration gates whether a downstream generative step may
// run on the given text under a mode. nsfw-only requires a positive NSFW
// signal and suppresses clean text.
func (s *Service) ShouldSuppressGeneration(text string, m mode.Mode) bool {
	c := s.classifier.ClassifyText(text)
	switch m {
	case mode.Safe:
		return c.Flagged()
	case mode.Moderate:
		return c.Severity() == nsfw.SeverityExplicit || c.Severity() == nsfw.SeverityViolent
	case mode.NSFWOnly:
		return !c.Flagged()
	case mode.Unrestricted:
		return false
	default:
		return false
	}
}
