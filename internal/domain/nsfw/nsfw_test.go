package nsfw

import (
	"reflect"
	"testing"
)

func TestSeverityRank(t *testing.T) {
	order := []Severity{SeverityNone, SeverityMild, SeverityViolent, SeverityExplicit}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("%s should outrank %s", order[i], order[i-1])
		}
	}
}

func TestNew_NormalizesMatches(t *testing.T) {
	c := New(SeverityExplicit, []string{"Porn", "cum", "", "porn", "anal"})
	if !c.Flagged() {
		t.Fatal("expected flagged")
	}
	want := []string{"anal", "cum", "porn"}
	if !reflect.DeepEqual(c.Matches(), want) {
		t.Errorf("matches = %v, want %v", c.Matches(), want)
	}
	if !c.HasMatch("PORN") {
		t.Error("HasMatch should be case-insensitive")
	}
}

func TestNew_EmptyMatchesUnflagged(t *testing.T) {
	c := New(SeverityExplicit, nil)
	if c.Flagged() {
		t.Error("no matches must never flag")
	}
	if c.Severity() != SeverityNone {
		t.Errorf("severity = %s, want none", c.Severity())
	}
}

func TestNone(t *testing.T) {
	c := None()
	if c.Flagged() || c.Severity() != SeverityNone || len(c.Matches()) != 0 {
		t.Errorf("None() = %+v", c)
	}
}
