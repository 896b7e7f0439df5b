package lexicon

// defaultSynonyms is the built-in synonym dictionary used for query
// expansion and semantic relevance. Keys and values are normalized tokens.
var defaultSynonyms = map[string][]string{
	"history":    {"historical", "heritage", "past", "chronicle"},
	"war":        {"conflict", "battle", "military", "warfare"},
	"music":      {"audio", "song", "recording", "sound"},
	"film":       {"movie", "cinema", "motion picture", "video"},
	"book":       {"text", "volume", "publication", "manuscript"},
	"photo":      {"photograph", "image", "picture", "snapshot"},
	"map":        {"atlas", "cartography", "chart"},
	"newspaper":  {"gazette", "journal", "periodical", "press"},
	"letter":     {"correspondence", "epistle", "mail"},
	"speech":     {"address", "oration", "talk", "lecture"},
	"science":    {"scientific", "research", "study"},
	"research":   {"study", "investigation", "survey", "inquiry"},
	"climate":    {"weather", "meteorology", "atmospheric"},
	"government": {"federal", "state", "official", "administration"},
	"ancient":    {"antique", "archaic", "classical", "old"},
	"art":        {"artwork", "painting", "illustration"},
	"medicine":   {"medical", "health", "clinical"},
	"law":        {"legal", "statute", "regulation", "legislation"},
	"railroad":   {"railway", "train", "locomotive"},
	"ship":       {"vessel", "boat", "maritime", "naval"},
	"farming":    {"agriculture", "agricultural", "rural"},
	"city":       {"urban", "municipal", "town", "metropolitan"},
	"school":     {"education", "academy", "college", "university"},
	"religion":   {"religious", "church", "theology", "faith"},
	"poetry":     {"poem", "verse", "lyric"},
	"economy":    {"economic", "finance", "commerce", "trade"},
	"disease":    {"illness", "epidemic", "plague", "sickness"},
	"immigrant":  {"immigration", "migrant", "settler"},
	"native":     {"indigenous", "aboriginal", "tribal"},
	"revolution": {"uprising", "rebellion", "revolt"},
}
