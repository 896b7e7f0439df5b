// Package trust derives credibility scores from record metadata:
// authenticity, historical value, transparency, document quality, and
// popularity, combined into one truth score and a categorical trust level.
package trust

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/query"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/score"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/text"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/relevance"
)

// Authenticity credit per signal.
const (
	curatedCollectionCredit    = 0.45
	institutionalCollection    = 0.12
	institutionalCreator       = 0.18
	institutionalPublisher     = 0.15
	trustedTLDCredit           = 0.30
	archiveHostCredit          = 0.10
	primarySourceCredit        = 0.10
	historicalPrimaryHintBonus = 0.10
)

// Truth-score combination weights.
const (
	relevanceWeight    = 0.40
	authenticityWeight = 0.30
	historicalWeight   = 0.15
	transparencyWeight = 0.15
)

// Trust-level thresholds over popularity + curated-collection credit.
const (
	trustCollectionCredit = 0.3
	trustHighThreshold    = 0.8
	trustMediumThreshold  = 0.4
)

// Service is the trust scorer.
type Service struct {
	lex *lexicon.Lexicon
	rel *relevance.Service
	now func() time.Time
}

// New creates a trust scorer.
func New(lex *lexicon.Lexicon, rel *relevance.Service) *Service {
	return &Service{lex: lex, rel: rel, now: time.Now}
}

// Evaluate scores a record against a query and assembles the full
// breakdown, including the combined truth score, trust level, and
// availability.
func (s *Service) Evaluate(qc *query.Context, rec record.Record) score.Breakdown {
	rel := s.rel.FieldRelevance(qc, rec)
	auth := s.Authenticity(rec)
	hist := s.HistoricalValue(rec)
	transp := s.Transparency(rec)
	quality := s.DocumentQuality(rec)
	pop := s.Popularity(rec)

	combined := rel*relevanceWeight + auth*authenticityWeight +
		hist*historicalWeight + transp*transparencyWeight
	if combined <= 0 {
		combined = rel
	}

	return score.New(
		rel, auth, hist, transp, quality, pop, combined,
		s.TrustLevel(rec), availability(rec),
	)
}

// Authenticity estimates source credibility from curated collections,
// institutional wording, source URL hosts, and primary-source hints.
func (s *Service) Authenticity(rec record.Record) float64 {
	var total float64

	seenCurated := make(map[string]struct{})
	for _, coll := range rec.Strings("collection") {
		norm := strings.ToLower(strings.TrimSpace(coll))
		if norm == "" {
			continue
		}
		if _, curated := lexicon.CuratedCollections[norm]; curated {
			if _, dup := seenCurated[norm]; !dup {
				seenCurated[norm] = struct{}{}
				total += curatedCollectionCredit
			}
		}
		if containsInstitutional(norm) {
			total += institutionalCollection
		}
	}

	if containsInstitutional(text.Normalize(rec.Text("creator"))) {
		total += institutionalCreator
	}
	if containsInstitutional(text.Normalize(rec.Text("publisher"))) {
		total += institutionalPublisher
	}

	if host := sourceHost(rec); host != "" {
		for _, tld := range lexicon.TrustedTLDs {
			if strings.HasSuffix(host, tld) {
				total += trustedTLDCredit
				break
			}
		}
		if strings.Contains(host, "archive.org") {
			total += archiveHostCredit
		}
	}

	titleAndMeta := text.Normalize(rec.Text("title") + " " + metadataText(rec))
	if containsPrimarySourceHint(titleAndMeta) {
		total += primarySourceCredit
	}

	return score.Clamp01(total)
}

// HistoricalValue maps record age onto fixed steps, with a small bonus for
// primary-source hints. Records without a plausible year default to 0.35.
func (s *Service) HistoricalValue(rec record.Record) float64 {
	total := 0.35
	if year, ok := earliestYear(rec, s.now().Year()); ok {
		total = ageCredit(s.now().Year() - year)
	}

	combined := text.Normalize(rec.Text("title") + " " + rec.Text("description") + " " + metadataText(rec))
	if containsPrimarySourceHint(combined) {
		total += historicalPrimaryHintBonus
	}
	return score.Clamp01(total)
}

// ageCredit is the fixed age-to-value step table.
func ageCredit(age int) float64 {
	switch {
	case age >= 150:
		return 1.0
	case age >= 120:
		return 0.9
	case age >= 80:
		return 0.75
	case age >= 50:
		return 0.6
	case age >= 30:
		return 0.45
	case age >= 10:
		return 0.35
	default:
		return 0.25
	}
}

// Transparency is the fraction of the metadata-completeness checklist a
// record satisfies, with a citation bonus. A record with nothing on the
// checklist defaults to 0.35.
func (s *Service) Transparency(rec record.Record) float64 {
	var present, possible float64
	for _, check := range lexicon.TransparencyChecklist {
		possible += check.Weight
		if rec.Has(check.Field) {
			present += check.Weight
		}
	}

	// Half-weight checks: combined metadata text and a links object.
	possible += 0.5
	if metadataText(rec) != "" {
		present += 0.5
	}
	possible += 0.5
	if rec.Has("links") {
		present += 0.5
	}

	var total float64
	if present == 0 {
		total = 0.35
	} else {
		total = present / possible
	}

	desc := strings.ToLower(rec.Text("description"))
	if strings.Contains(desc, "http") || strings.Contains(desc, "doi") ||
		strings.Contains(desc, "isbn") {
		total += 0.1
	}
	return score.Clamp01(total)
}

// DocumentQuality is the lightweight completeness score used by the
// primary ranking formula.
func (s *Service) DocumentQuality(rec record.Record) float64 {
	var total float64
	if rec.Has("title") {
		total += 0.25
	}
	if rec.Has("description") {
		total += 0.25
	}
	if rec.Has("creator") {
		total += 0.2
	}
	if rec.Has("year") || rec.Has("date") || rec.Has("publicdate") {
		total += 0.15
	}
	if rec.Has("thumbnail") || rec.Has("image") {
		total += 0.1
	}
	if originalURL(rec) != "" {
		total += 0.05
	}
	return score.Clamp01(total)
}

// Popularity saturates near 10k downloads: log10(downloads+1)/4.
func (s *Service) Popularity(rec record.Record) float64 {
	downloads := rec.Number("downloads")
	if downloads < 0 {
		downloads = 0
	}
	return score.Clamp01(math.Log10(downloads+1) / 4)
}

// TrustLevel buckets popularity plus curated-collection credit into
// high/medium/low.
func (s *Service) TrustLevel(rec record.Record) score.TrustLevel {
	total := s.Popularity(rec)
	seen := make(map[string]struct{})
	for _, coll := range rec.Strings("collection") {
		norm := strings.ToLower(strings.TrimSpace(coll))
		if _, curated := lexicon.CuratedCollections[norm]; !curated {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		total += trustCollectionCredit
	}

	switch {
	case total >= trustHighThreshold:
		return score.TrustHigh
	case total >= trustMediumThreshold:
		return score.TrustMedium
	default:
		return score.TrustLow
	}
}

// availability is online iff the record carries an original/source URL.
func availability(rec record.Record) score.Availability {
	if originalURL(rec) != "" {
		return score.Online
	}
	return score.ArchivedOnly
}

// originalURL finds the record's original-source URL, looking at both
// top-level fields and the links object.
func originalURL(rec record.Record) string {
	if s := rec.FirstText("original", "original_url", "source", "source_url"); s != "" {
		return s
	}
	links, ok := rec["links"]
	if !ok || links.Kind() != record.KindMap {
		return ""
	}
	if v, ok := links.Fields()["original"]; ok && v.Kind() == record.KindString {
		return v.Str()
	}
	return ""
}

// sourceHost parses the original URL's host. Malformed URLs score as
// absent.
func sourceHost(rec record.Record) string {
	raw := originalURL(rec)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// metadataText joins the record's catalog metadata fields.
func metadataText(rec record.Record) string {
	var parts []string
	for _, key := range []string{"subject", "tags", "keywords", "topic", "topics", "collection"} {
		if s := rec.Text(key); s != "" {
			parts = append(parts, s)
		}
	}
	if md, ok := rec["metadata"]; ok {
		record.Fold(md, func(leaf record.Value) {
			if leaf.Kind() == record.KindString && leaf.Str() != "" {
				parts = append(parts, leaf.Str())
			}
		})
	}
	return strings.Join(parts, " ")
}

func containsInstitutional(normalized string) bool {
	for _, kw := range lexicon.InstitutionalKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

func containsPrimarySourceHint(normalized string) bool {
	for _, hint := range lexicon.PrimarySourceHints {
		if strings.Contains(normalized, hint) {
			return true
		}
	}
	return false
}
