package lexicon

// Morphology is the exception table for a short NSFW target that appears
// inside many harmless words ("anal" in "analysis", "cum" in
// "cumulative"). Plain substring matching over-triggers on these, so they
// are matched token-wise against declarative suffix and next-word lists.
type Morphology struct {
	// Target is the literal term the table guards.
	Target string
	// ExplicitSuffixes: token = target+suffix is a match
	// ("cum"+"shot", "anal"+"sex").
	ExplicitSuffixes []string
	// SafeSuffixes: token = target+suffix is never a match
	// ("anal"+"ysis", "cum"+"ulative"). Checked before ExplicitSuffixes.
	SafeSuffixes []string
	// NextWords: a bare target token immediately followed by one of these
	// is a match ("anal sex").
	NextWords []string
}

// Morphologies returns the per-target exception tables, keyed by target.
// Suffix entries are prefixes of the token remainder, so "ulat" covers
// "ulate", "ulative", and "ulation".
func Morphologies() map[string]Morphology {
	return map[string]Morphology{
		"anal": {
			Target: "anal",
			ExplicitSuffixes: []string{
				"sex", "porn", "fuck", "play", "ingus", "job",
			},
			SafeSuffixes: []string{
				"ys", "yt", "yz", "yse", "og", "ogy", "ects", "gesi", "gesic",
			},
			NextWords: []string{"sex", "porn", "play", "penetration"},
		},
		"cum": {
			Target: "cum",
			ExplicitSuffixes: []string{
				"shot", "slut", "dump", "ming", "job",
			},
			SafeSuffixes: []string{
				"ulat", "ulus", "uli", "ber", "bersome", "in", "mins",
				"laude", "brian", "quat",
			},
			NextWords: []string{"shot", "shots", "inside"},
		},
	}
}
