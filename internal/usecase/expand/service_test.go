package expand

import (
	"strings"
	"testing"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(lexicon.Default())
}

func TestBuildHybridExpression_Blank(t *testing.T) {
	svc := newService(t)
	if got := svc.BuildHybridExpression("   ", true); got != "" {
		t.Errorf("blank query = %q, want empty expression", got)
	}
}

func TestBuildHybridExpression_Structure(t *testing.T) {
	svc := newService(t)
	expr := svc.BuildHybridExpression("climate change", true)

	segments := strings.Split(expr, " OR ")
	if segments[0] != "(climate change)" {
		t.Errorf("first segment = %q, want verbatim query", segments[0])
	}
	for _, want := range []string{"climate~", "change~", "climate*", "change*"} {
		if !containsSegment(segments, want) {
			t.Errorf("expression missing segment %q: %s", want, expr)
		}
	}
	// Synonym groups are quoted and parenthesized.
	if !strings.Contains(expr, `("weather"`) {
		t.Errorf("expected quoted climate synonyms in %q", expr)
	}
}

func TestBuildHybridExpression_NoFuzzy(t *testing.T) {
	svc := newService(t)
	expr := svc.BuildHybridExpression("climate", false)
	if strings.Contains(expr, "~") {
		t.Errorf("fuzzy disabled but expression has ~: %q", expr)
	}
}

func TestBuildHybridExpression_WildcardMinLength(t *testing.T) {
	svc := newService(t)
	expr := svc.BuildHybridExpression("war era", false)
	if strings.Contains(expr, "war*") {
		t.Errorf("3-rune token must not get a wildcard: %q", expr)
	}
	if strings.Contains(expr, "era*") {
		t.Errorf("3-rune token must not get a wildcard: %q", expr)
	}

	expr = svc.BuildHybridExpression("wars", false)
	if !strings.Contains(expr, "wars*") {
		t.Errorf("4-rune token should get a wildcard: %q", expr)
	}
}

func TestBuildHybridExpression_NoDuplicateSegments(t *testing.T) {
	svc := newService(t)
	expr := svc.BuildHybridExpression("climate climate", true)
	segments := strings.Split(expr, " OR ")
	seen := make(map[string]int)
	for _, seg := range segments {
		seen[seg]++
		if seen[seg] > 1 {
			t.Errorf("duplicate segment %q in %q", seg, expr)
		}
	}
}

func TestBuildHybridExpression_SynonymCap(t *testing.T) {
	svc := newService(t)
	expr := svc.BuildHybridExpression("research", false)
	for _, seg := range strings.Split(expr, " OR ") {
		if !strings.HasPrefix(seg, `("`) {
			continue
		}
		if n := strings.Count(seg, `"`) / 2; n > MaxSynonymsPerToken {
			t.Errorf("synonym group has %d entries, cap is %d: %q", n, MaxSynonymsPerToken, seg)
		}
	}
}

func TestSuggestAlternatives(t *testing.T) {
	svc := newService(t)
	got := svc.SuggestAlternatives("climate research")

	if len(got) == 0 {
		t.Fatal("expected suggestions for a query with synonyms")
	}
	if len(got) > MaxSuggestions {
		t.Fatalf("got %d suggestions, cap is %d", len(got), MaxSuggestions)
	}
	for _, s := range got {
		if strings.EqualFold(s, "climate research") {
			t.Errorf("suggestion equals the input: %q", s)
		}
	}
}

func TestSuggestAlternatives_Blank(t *testing.T) {
	svc := newService(t)
	if got := svc.SuggestAlternatives(" "); got != nil {
		t.Errorf("blank query = %v, want nil", got)
	}
}

func TestSuggestAlternatives_NoSynonyms(t *testing.T) {
	svc := newService(t)
	got := svc.SuggestAlternatives("zyxwvut")
	// Only the wildcard variant applies.
	if len(got) != 1 || got[0] != "zyxwvut*" {
		t.Errorf("got %v, want [zyxwvut*]", got)
	}
}

func TestContext(t *testing.T) {
	svc := newService(t)
	qc := svc.Context("The History of Jazz")
	if qc.Normalized() != "the history of jazz" {
		t.Errorf("normalized = %q", qc.Normalized())
	}
	for _, kw := range qc.Keywords() {
		if kw == "the" || kw == "of" {
			t.Errorf("stopword %q leaked into keywords", kw)
		}
	}
}

func containsSegment(segments []string, want string) bool {
	for _, s := range segments {
		if s == want {
			return true
		}
	}
	return false
}
