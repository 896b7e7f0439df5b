package record

import (
	"reflect"
	"testing"
)

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"identifier": "item-1",
		"title": "Climate Report",
		"downloads": 1200,
		"collection": ["nasa", "govdocs"],
		"metadata": {"tags": ["climate", "science"]}
	}`)

	rec, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if got := rec.Identifier(); got != "item-1" {
		t.Errorf("Identifier = %q, want item-1", got)
	}
	if got := rec.Text("title"); got != "Climate Report" {
		t.Errorf("title = %q", got)
	}
	if got := rec.Number("downloads"); got != 1200 {
		t.Errorf("downloads = %v, want 1200", got)
	}
	if got := rec.Strings("collection"); !reflect.DeepEqual(got, []string{"nasa", "govdocs"}) {
		t.Errorf("collection = %v", got)
	}
	if got := rec.Text("metadata"); got != "climate science" {
		t.Errorf("metadata text = %q, want \"climate science\"", got)
	}
}

func TestFromJSON_Invalid(t *testing.T) {
	if _, err := FromJSON([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object JSON")
	}
}

func TestNumber_StringParse(t *testing.T) {
	rec := Record{
		"downloads": String(" 420 "),
		"views":     String("not a number"),
		"list":      List(Number(7), Number(9)),
	}
	if got := rec.Number("downloads"); got != 420 {
		t.Errorf("string digits = %v, want 420", got)
	}
	if got := rec.Number("views"); got != 0 {
		t.Errorf("garbage string = %v, want 0", got)
	}
	if got := rec.Number("list"); got != 7 {
		t.Errorf("list head = %v, want 7", got)
	}
	if got := rec.Number("missing"); got != 0 {
		t.Errorf("missing field = %v, want 0", got)
	}
}

func TestFromAny_DepthBound(t *testing.T) {
	// Nesting deeper than MaxDepth must be cut off, not recursed forever.
	deep := map[string]any{}
	cur := deep
	for i := 0; i < MaxDepth+4; i++ {
		next := map[string]any{}
		cur["level"] = next
		cur = next
	}
	cur["leaf"] = "buried"

	rec := FromAnyMap(map[string]any{"nested": deep})
	if got := rec.Text("nested"); got != "" {
		t.Errorf("expected over-deep leaf to be dropped, got %q", got)
	}
}

func TestFromAny_Cycle(t *testing.T) {
	loop := map[string]any{"name": "self"}
	loop["self"] = loop

	// Must terminate; the cyclic edge decodes as an empty container.
	rec := FromAnyMap(map[string]any{"cyclic": loop})
	v, ok := rec["cyclic"]
	if !ok || v.Kind() != KindMap {
		t.Fatalf("expected map value, got %+v", v)
	}
	if got := v.Fields()["name"].Str(); got != "self" {
		t.Errorf("name = %q, want self", got)
	}
}

func TestMediaType(t *testing.T) {
	rec := Record{"mediatype": String("Texts")}
	if got := rec.MediaType(); got != "texts" {
		t.Errorf("MediaType = %q, want texts", got)
	}
}

func TestClone_Isolated(t *testing.T) {
	rec := Record{"title": String("a")}
	cp := rec.Clone()
	cp["title"] = String("b")
	if rec.Text("title") != "a" {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestAsMap_RoundTrip(t *testing.T) {
	src := map[string]any{
		"title":      "Report",
		"downloads":  float64(10),
		"collection": []any{"nasa"},
		"links":      map[string]any{"original": "https://example.org"},
	}
	got := FromAnyMap(src).AsMap()
	if !reflect.DeepEqual(got, src) {
		t.Errorf("AsMap round trip = %#v, want %#v", got, src)
	}
}

func TestFold_VisitsLeaves(t *testing.T) {
	v := Map(map[string]Value{
		"a": String("x"),
		"b": List(Number(1), String("y")),
	})
	var count int
	Fold(v, func(Value) { count++ })
	if count != 3 {
		t.Errorf("visited %d leaves, want 3", count)
	}
}
