package lexicon

// FieldWeight drives field-weighted relevance scoring: the exact-substring
// bonus (Base), the first-occurrence keyword credit, and the base credit
// for fuzzy matches.
type FieldWeight struct {
	Base          float64
	KeywordCredit float64
	FuzzyCredit   float64
}

// FieldWeights maps a scored field name to its weights.
type FieldWeights map[string]FieldWeight

// Scored field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldMetadata    = "metadata"
	FieldFulltext    = "fulltext"
)

// baseFieldWeights is the default table; title never changes across media
// types.
var baseFieldWeights = FieldWeights{
	FieldTitle:       {Base: 1.0, KeywordCredit: 0.70, FuzzyCredit: 0.30},
	FieldDescription: {Base: 0.80, KeywordCredit: 0.550, FuzzyCredit: 0.25},
	FieldMetadata:    {Base: 0.50, KeywordCredit: 0.45, FuzzyCredit: 0.20},
	FieldFulltext:    {Base: 0.30, KeywordCredit: 0.30, FuzzyCredit: 0.18},
}

// mediaTypeWeights shifts description/metadata/fulltext weights per archive
// media type. Text-heavy types lean on fulltext; audiovisual types lean on
// description and catalog metadata.
var mediaTypeWeights = map[string]FieldWeights{
	"texts": {
		FieldDescription: {Base: 0.85, KeywordCredit: 0.575, FuzzyCredit: 0.26},
		FieldMetadata:    {Base: 0.60, KeywordCredit: 0.50, FuzzyCredit: 0.22},
		FieldFulltext:    {Base: 0.65, KeywordCredit: 0.45, FuzzyCredit: 0.20},
	},
	"audio": {
		FieldDescription: {Base: 0.95, KeywordCredit: 0.625, FuzzyCredit: 0.28},
		FieldMetadata:    {Base: 0.90, KeywordCredit: 0.60, FuzzyCredit: 0.26},
		FieldFulltext:    {Base: 0.30, KeywordCredit: 0.30, FuzzyCredit: 0.18},
	},
	"movies": {
		FieldDescription: {Base: 0.95, KeywordCredit: 0.625, FuzzyCredit: 0.28},
		FieldMetadata:    {Base: 0.85, KeywordCredit: 0.575, FuzzyCredit: 0.25},
		FieldFulltext:    {Base: 0.35, KeywordCredit: 0.32, FuzzyCredit: 0.18},
	},
	"image": {
		FieldDescription: {Base: 0.90, KeywordCredit: 0.60, FuzzyCredit: 0.27},
		FieldMetadata:    {Base: 0.90, KeywordCredit: 0.60, FuzzyCredit: 0.26},
		FieldFulltext:    {Base: 0.30, KeywordCredit: 0.30, FuzzyCredit: 0.18},
	},
	"software": {
		FieldDescription: {Base: 0.90, KeywordCredit: 0.60, FuzzyCredit: 0.27},
		FieldMetadata:    {Base: 0.75, KeywordCredit: 0.55, FuzzyCredit: 0.24},
		FieldFulltext:    {Base: 0.40, KeywordCredit: 0.35, FuzzyCredit: 0.19},
	},
	"web": {
		FieldDescription: {Base: 0.80, KeywordCredit: 0.55, FuzzyCredit: 0.25},
		FieldMetadata:    {Base: 0.55, KeywordCredit: 0.47, FuzzyCredit: 0.21},
		FieldFulltext:    {Base: 0.60, KeywordCredit: 0.42, FuzzyCredit: 0.20},
	},
	"data": {
		FieldDescription: {Base: 0.85, KeywordCredit: 0.575, FuzzyCredit: 0.26},
		FieldMetadata:    {Base: 0.90, KeywordCredit: 0.60, FuzzyCredit: 0.26},
		FieldFulltext:    {Base: 0.35, KeywordCredit: 0.32, FuzzyCredit: 0.18},
	},
}

// WeightsFor returns the field weight table for a media type, falling back
// to the base table for unknown types.
func WeightsFor(mediaType string) FieldWeights {
	override, ok := mediaTypeWeights[mediaType]
	if !ok {
		return baseFieldWeights
	}
	merged := make(FieldWeights, len(baseFieldWeights))
	for field, w := range baseFieldWeights {
		if o, ok := override[field]; ok {
			merged[field] = o
		} else {
			merged[field] = w
		}
	}
	return merged
}
