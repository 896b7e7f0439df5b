package relevance

import (
	"strings"
	"testing"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/query"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(lexicon.Default())
}

func queryFor(t *testing.T, q string) *query.Context {
	t.Helper()
	qc := query.New(q, lexicon.Default().Stopwords())
	return &qc
}

func recordWith(fields map[string]any) record.Record {
	return record.FromAnyMap(fields)
}

func TestKeywordRelevance(t *testing.T) {
	svc := newService(t)
	rec := recordWith(map[string]any{
		"title":       "Climate Change Research Archive",
		"description": "Longitudinal climate data",
	})

	if got := svc.KeywordRelevance(queryFor(t, "climate research"), rec); got != 1 {
		t.Errorf("all keywords present = %v, want 1", got)
	}
	if got := svc.KeywordRelevance(queryFor(t, "climate banjo"), rec); got != 0.5 {
		t.Errorf("half the keywords present = %v, want 0.5", got)
	}
	if got := svc.KeywordRelevance(queryFor(t, "banjo"), rec); got != 0 {
		t.Errorf("nothing present = %v, want 0", got)
	}
}

func TestSemanticRelevance_ExactBeatsSynonymBeatsFuzzy(t *testing.T) {
	svc := newService(t)

	exact := recordWith(map[string]any{"title": "climate"})
	synonym := recordWith(map[string]any{"title": "weather"})
	fuzzy := recordWith(map[string]any{"title": "climzzz"})
	unrelated := recordWith(map[string]any{"title": "zzzzqqq"})

	qc := queryFor(t, "climate")
	se := svc.SemanticRelevance(qc, exact)
	sy := svc.SemanticRelevance(qc, synonym)
	fu := svc.SemanticRelevance(qc, fuzzy)
	un := svc.SemanticRelevance(qc, unrelated)

	if se != 1 {
		t.Errorf("exact = %v, want 1", se)
	}
	if sy >= se || sy != 0.85 {
		t.Errorf("synonym = %v, want 0.85", sy)
	}
	if fu >= sy || fu <= un {
		t.Errorf("fuzzy = %v, want between unrelated (%v) and synonym (%v)", fu, un, sy)
	}
}

func TestFieldRelevance_Bounds(t *testing.T) {
	svc := newService(t)
	rec := recordWith(map[string]any{
		"title":       "Climate Change Research Archive",
		"description": "Comprehensive climate research data from 1950-2020",
		"subject":     []any{"climate", "research", "environment"},
		"mediatype":   "texts",
	})

	got := svc.FieldRelevance(queryFor(t, "climate change research"), rec)
	if got <= 0.7 || got > 1 {
		t.Errorf("strong match = %v, want in (0.7, 1]", got)
	}

	miss := svc.FieldRelevance(queryFor(t, "underwater basket weaving"), recordWith(map[string]any{
		"title": "Annual Report",
	}))
	if miss >= 0.2 {
		t.Errorf("total miss = %v, want near 0", miss)
	}
}

func TestFieldRelevance_NoKeywordsDefaults(t *testing.T) {
	svc := newService(t)
	rec := recordWith(map[string]any{"title": "Anything"})
	// Blank query context has no keywords at all.
	qc := query.New("", nil)
	if got := svc.FieldRelevance(&qc, rec); got != 0.2 {
		t.Errorf("keyword-less query = %v, want 0.2", got)
	}
}

func TestFieldRelevance_Monotonic(t *testing.T) {
	svc := newService(t)
	qc := queryFor(t, "climate research")

	weak := recordWith(map[string]any{"description": "climate notes"})
	strong := recordWith(map[string]any{
		"title":       "Climate Research",
		"description": "climate research climate research",
	})

	w := svc.FieldRelevance(qc, weak)
	s := svc.FieldRelevance(qc, strong)
	if s <= w {
		t.Errorf("more matches must not score lower: strong=%v weak=%v", s, w)
	}
}

func TestFieldRelevance_ProximityCredit(t *testing.T) {
	svc := newService(t)
	qc := queryFor(t, "climate research")

	near := recordWith(map[string]any{"description": "climate research progress report"})
	far := recordWith(map[string]any{
		"description": "climate a b c d e f g h i j k l m n o p q r s research",
	})

	n := svc.FieldRelevance(qc, near)
	f := svc.FieldRelevance(qc, far)
	if n <= f {
		t.Errorf("adjacent keywords should outscore distant ones: near=%v far=%v", n, f)
	}
}

func TestPrimaryScore(t *testing.T) {
	svc := newService(t)
	if got := svc.PrimaryScore(1, 1, 1, 1); got != 1 {
		t.Errorf("all ones = %v, want 1", got)
	}
	if got := svc.PrimaryScore(0, 0, 0, 0); got != 0 {
		t.Errorf("all zeros = %v, want 0", got)
	}
	// keyword 0.5 + semantic 0.3 + quality 0.1 + popularity 0.1
	got := svc.PrimaryScore(1, 0, 0, 0)
	if got != 0.5 {
		t.Errorf("keyword only = %v, want 0.5", got)
	}
	got = svc.PrimaryScore(0, 1, 0, 0)
	if got != 0.3 {
		t.Errorf("semantic only = %v, want 0.3", got)
	}
}

func TestFieldsFor(t *testing.T) {
	rec := recordWith(map[string]any{
		"title":       "T",
		"description": "D",
		"subject":     []any{"s1", "s2"},
		"fulltext":    "F",
		"metadata":    map[string]any{"tags": []any{"m1"}},
	})
	fields := FieldsFor(rec)
	if fields[lexicon.FieldTitle] != "T" {
		t.Errorf("title = %q", fields[lexicon.FieldTitle])
	}
	if fields[lexicon.FieldFulltext] != "F" {
		t.Errorf("fulltext = %q", fields[lexicon.FieldFulltext])
	}
	for _, want := range []string{"s1", "s2", "m1"} {
		if !strings.Contains(fields[lexicon.FieldMetadata], want) {
			t.Errorf("metadata %q missing %q", fields[lexicon.FieldMetadata], want)
		}
	}
}
