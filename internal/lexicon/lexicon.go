// Package lexicon holds the static vocabulary the scoring and
// classification engines run on: stopwords, the synonym dictionary, NSFW
// keyword groups with their morphology exception tables, trust heuristics,
// and per-field relevance weights.
//
// A Lexicon is built once at startup and shared read-only across all
// goroutines; nothing in this package mutates it after construction.
package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is the immutable vocabulary snapshot.
type Lexicon struct {
	stopwords map[string]struct{}
	synonyms  map[string][]string
	groups    KeywordGroups
}

// Options selects external vocabulary files layered over the built-in
// defaults. Empty paths keep the defaults.
type Options struct {
	KeywordsPath string
	SynonymsPath string
}

// New builds a Lexicon from the built-in defaults plus any configured
// overrides.
func New(opts Options) (*Lexicon, error) {
	lex := &Lexicon{
		stopwords: defaultStopwords,
		synonyms:  defaultSynonyms,
		groups:    defaultKeywordGroups(),
	}

	if opts.KeywordsPath != "" {
		groups, err := LoadKeywordGroups(opts.KeywordsPath)
		if err != nil {
			return nil, fmt.Errorf("load keyword groups: %w", err)
		}
		lex.groups = groups
	}
	if opts.SynonymsPath != "" {
		syns, err := LoadSynonyms(opts.SynonymsPath)
		if err != nil {
			return nil, fmt.Errorf("load synonyms: %w", err)
		}
		lex.synonyms = syns
	}
	return lex, nil
}

// Default returns a Lexicon built entirely from the built-in vocabulary.
func Default() *Lexicon {
	lex, _ := New(Options{})
	return lex
}

// IsStopword reports whether a normalized token is a stopword.
func (l *Lexicon) IsStopword(tok string) bool {
	_, ok := l.stopwords[tok]
	return ok
}

// Stopwords returns the stopword set. Callers must not mutate it.
func (l *Lexicon) Stopwords() map[string]struct{} { return l.stopwords }

// Synonyms returns the synonyms of a normalized token, or nil.
func (l *Lexicon) Synonyms(tok string) []string { return l.synonyms[tok] }

// Groups returns the NSFW keyword groups.
func (l *Lexicon) Groups() KeywordGroups { return l.groups }

// KeywordGroups are the tiered NSFW term lists. Terms are stored
// normalized (lowercase). A term present in both Explicit and Adult counts
// only as explicit.
type KeywordGroups struct {
	Explicit []string
	Adult    []string
	Violent  []string
}

// keywordFile accepts both on-disk shapes: the flat
// {explicit, adult, violent} layout and the nested
// {categories: {explicit, mild}} layout.
type keywordFile struct {
	Explicit   []string `yaml:"explicit"`
	Adult      []string `yaml:"adult"`
	Violent    []string `yaml:"violent"`
	Categories struct {
		Explicit []string `yaml:"explicit"`
		Mild     []string `yaml:"mild"`
	} `yaml:"categories"`
}

// LoadKeywordGroups reads a keyword-group YAML document and normalizes it
// to the tiered model.
func LoadKeywordGroups(path string) (KeywordGroups, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return KeywordGroups{}, fmt.Errorf("read %s: %w", path, err)
	}

	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return KeywordGroups{}, fmt.Errorf("parse %s: %w", path, err)
	}

	groups := KeywordGroups{
		Explicit: file.Explicit,
		Adult:    file.Adult,
		Violent:  file.Violent,
	}
	// Nested shape: categories.mild maps onto the adult tier.
	if len(file.Categories.Explicit) > 0 || len(file.Categories.Mild) > 0 {
		groups.Explicit = append(groups.Explicit, file.Categories.Explicit...)
		groups.Adult = append(groups.Adult, file.Categories.Mild...)
	}

	groups = normalizeGroups(groups)
	if len(groups.Explicit) == 0 && len(groups.Adult) == 0 && len(groups.Violent) == 0 {
		return KeywordGroups{}, fmt.Errorf("%s defines no keyword groups", path)
	}
	return groups, nil
}

// LoadSynonyms reads a flat {term: [synonyms]} YAML dictionary.
func LoadSynonyms(path string) (map[string][]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	syns := make(map[string][]string, len(raw))
	for term, list := range raw {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || len(list) == 0 {
			continue
		}
		cleaned := make([]string, 0, len(list))
		for _, s := range list {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" && s != term {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			syns[term] = cleaned
		}
	}
	return syns, nil
}

// normalizeGroups lowercases and dedupes every tier and enforces explicit
// precedence: a term listed in both explicit and adult stays explicit only.
func normalizeGroups(g KeywordGroups) KeywordGroups {
	g.Explicit = dedupeLower(g.Explicit)
	g.Violent = dedupeLower(g.Violent)

	explicit := make(map[string]struct{}, len(g.Explicit))
	for _, term := range g.Explicit {
		explicit[term] = struct{}{}
	}
	adult := dedupeLower(g.Adult)
	kept := adult[:0]
	for _, term := range adult {
		if _, dup := explicit[term]; !dup {
			kept = append(kept, term)
		}
	}
	g.Adult = kept
	return g
}

func dedupeLower(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
