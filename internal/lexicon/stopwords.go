package lexicon

// defaultStopwords are common English words dropped during keyword
// extraction.
var defaultStopwords = toSet([]string{
	"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
	"can", "could", "did", "do", "does", "for", "from", "had", "has",
	"have", "he", "her", "his", "how", "i", "if", "in", "into", "is",
	"it", "its", "may", "me", "more", "most", "my", "no", "not", "of",
	"on", "or", "our", "out", "over", "she", "should", "so", "some",
	"such", "than", "that", "the", "their", "them", "then", "there",
	"these", "they", "this", "those", "to", "too", "up", "us", "was",
	"we", "were", "what", "when", "where", "which", "who", "why",
	"will", "with", "would", "you", "your",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
