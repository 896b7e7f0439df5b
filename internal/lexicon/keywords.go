package lexicon

// defaultKeywordGroups returns the built-in NSFW term tiers. The explicit
// and adult tiers overlap in source material; normalizeGroups enforces the
// explicit-wins rule.
func defaultKeywordGroups() KeywordGroups {
	return normalizeGroups(KeywordGroups{
		Explicit: []string{
			"porn", "pornography", "pornographic", "xxx", "hardcore",
			"anal", "cum", "fetish", "bdsm", "hentai", "orgy",
			"blowjob", "handjob", "masturbation", "dildo", "genitalia",
			"explicit sex", "sex tape", "sextape", "camgirl", "escort service",
		},
		Adult: []string{
			"nude", "nudity", "naked", "erotic", "erotica", "adult film",
			"adult movie", "adult content", "sensual", "topless",
			"lingerie", "stripper", "striptease", "softcore", "pinup",
			"burlesque", "seduction", "xxx", "hardcore",
		},
		Violent: []string{
			"gore", "graphic violence", "beheading", "decapitation",
			"torture", "mutilation", "snuff", "dismemberment",
			"massacre footage", "execution video", "brutality",
		},
	})
}
