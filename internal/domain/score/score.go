// Package score holds the scoring output types: the per-record breakdown,
// the categorical trust level, and record availability.
package score

import "math"

// TrustLevel is the categorical credibility rating of a record.
type TrustLevel string

// Trust levels.
const (
	TrustHigh   TrustLevel = "high"
	TrustMedium TrustLevel = "medium"
	TrustLow    TrustLevel = "low"
)

// Availability reports whether a record points at a live original source.
type Availability string

// Availability states. Online means an original/source URL is present;
// live connectivity is not probed.
const (
	Online       Availability = "online"
	ArchivedOnly Availability = "archived-only"
)

// Breakdown is the full set of sub-scores attached to a ranked record.
// Every score is clamped to [0,1] and rounded to three decimals at
// construction.
type Breakdown struct {
	relevance       float64
	authenticity    float64
	historicalValue float64
	transparency    float64
	documentQuality float64
	popularity      float64
	combined        float64
	trustLevel      TrustLevel
	availability    Availability
}

// New builds a Breakdown, clamping and rounding every sub-score.
func New(
	relevance, authenticity, historicalValue, transparency,
	documentQuality, popularity, combined float64,
	trustLevel TrustLevel, availability Availability,
) Breakdown {
	return Breakdown{
		relevance:       Round3(Clamp01(relevance)),
		authenticity:    Round3(Clamp01(authenticity)),
		historicalValue: Round3(Clamp01(historicalValue)),
		transparency:    Round3(Clamp01(transparency)),
		documentQuality: Round3(Clamp01(documentQuality)),
		popularity:      Round3(Clamp01(popularity)),
		combined:        Round3(Clamp01(combined)),
		trustLevel:      trustLevel,
		availability:    availability,
	}
}

// Relevance returns the field-weighted relevance score.
func (b *Breakdown) Relevance() float64 { return b.relevance }

// Authenticity returns the source-credibility score.
func (b *Breakdown) Authenticity() float64 { return b.authenticity }

// HistoricalValue returns the age-based value score.
func (b *Breakdown) HistoricalValue() float64 { return b.historicalValue }

// Transparency returns the metadata-completeness score.
func (b *Breakdown) Transparency() float64 { return b.transparency }

// DocumentQuality returns the lightweight completeness score.
func (b *Breakdown) DocumentQuality() float64 { return b.documentQuality }

// Popularity returns the download-derived popularity score.
func (b *Breakdown) Popularity() float64 { return b.popularity }

// Combined returns the weighted combination of the sub-scores.
func (b *Breakdown) Combined() float64 { return b.combined }

// TrustLevel returns the categorical trust rating.
func (b *Breakdown) TrustLevel() TrustLevel { return b.trustLevel }

// Availability returns the record availability.
func (b *Breakdown) Availability() Availability { return b.availability }

// Clamp01 clamps v to [0,1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Round3 rounds v to three decimals.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
