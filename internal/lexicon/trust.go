package lexicon

// CuratedCollections is the allowlist of archive sub-collections vetted as
// institutionally trustworthy. Entries are normalized collection names.
var CuratedCollections = toSet([]string{
	"smithsonian", "americana", "library_of_congress", "loc",
	"nasa", "nara", "gutenberg", "prelinger", "internetarchivebooks",
	"jstor_ejc", "biodiversity", "medicalheritagelibrary",
	"university_of_toronto", "europeanlibraries", "unitedstatesgovernment",
	"densho", "computerhistory", "metropolitanmuseumofart-gallery",
})

// InstitutionalKeywords mark collections, creators, and publishers tied to
// libraries, museums, universities, and public institutions.
var InstitutionalKeywords = []string{
	"library", "museum", "university", "college", "government",
	"archive", "archives", "institute", "institution", "society",
	"foundation", "national", "federal", "state", "ministry",
	"department", "agency", "council", "smithsonian", "historical",
}

// PrimarySourceHints are phrases that suggest a record is a primary
// historical source.
var PrimarySourceHints = []string{
	"manuscript", "diary", "official record", "original document",
	"first edition", "primary source", "eyewitness", "firsthand",
	"correspondence", "field notes", "court record", "census",
	"transcript", "proceedings", "minutes of",
}

// TrustedTLDs are URL host suffixes that raise authenticity.
var TrustedTLDs = []string{".gov", ".mil", ".edu", ".museum", ".int"}

// TransparencyChecklist is the metadata-completeness checklist: field name
// and its weight in the transparency fraction.
type TransparencyCheck struct {
	Field  string
	Weight float64
}

// TransparencyChecklist lists the single-field completeness checks
// (weight 1 each). The combined-metadata-text and links-object checks
// (weight 0.5 each) are applied separately by the scorer.
var TransparencyChecklist = []TransparencyCheck{
	{Field: "creator", Weight: 1},
	{Field: "description", Weight: 1},
	{Field: "publisher", Weight: 1},
	{Field: "contributor", Weight: 1},
	{Field: "language", Weight: 1},
	{Field: "subject", Weight: 1},
	{Field: "tags", Weight: 1},
	{Field: "keywords", Weight: 1},
	{Field: "source", Weight: 1},
	{Field: "references", Weight: 1},
}
