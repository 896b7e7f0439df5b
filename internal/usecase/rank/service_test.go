package rank

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/query"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/classify"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/relevance"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/trust"
)

type fakeEmbedder struct {
	embed func(text string) ([]float32, error)
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := f.embed(text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}

func newService(t *testing.T, emb domain.Embedder) *Service {
	t.Helper()
	lex := lexicon.Default()
	rel := relevance.New(lex)
	return New(rel, trust.New(lex, rel), classify.New(lex), emb, zap.NewNop())
}

func queryFor(t *testing.T, q string) *query.Context {
	t.Helper()
	qc := query.New(q, lexicon.Default().Stopwords())
	return &qc
}

func TestRank_OrdersByPrimaryScore(t *testing.T) {
	svc := newService(t, nil)
	records := []record.Record{
		record.FromAnyMap(map[string]any{
			"identifier": "partial",
			"title":      "Climate Notes",
		}),
		record.FromAnyMap(map[string]any{
			"identifier":  "full",
			"title":       "Climate Research Bulletin",
			"description": "climate research data",
		}),
	}

	got := svc.Rank(context.Background(), queryFor(t, "climate research"), records, mode.Unrestricted)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Record.Identifier() != "full" {
		t.Errorf("first = %q, want the stronger match first", got[0].Record.Identifier())
	}
	if got[0].PrimaryScore <= got[1].PrimaryScore {
		t.Errorf("ordering not by primary score: %v then %v", got[0].PrimaryScore, got[1].PrimaryScore)
	}
}

func TestRank_IdentifierBreaksTies(t *testing.T) {
	svc := newService(t, nil)
	records := []record.Record{
		record.FromAnyMap(map[string]any{"identifier": "zeta", "title": "Climate"}),
		record.FromAnyMap(map[string]any{"identifier": "alpha", "title": "Climate"}),
	}

	got := svc.Rank(context.Background(), queryFor(t, "climate"), records, mode.Unrestricted)
	if got[0].Record.Identifier() != "alpha" || got[1].Record.Identifier() != "zeta" {
		t.Errorf("tie order = [%s %s], want identifier ascending",
			got[0].Record.Identifier(), got[1].Record.Identifier())
	}
}

func TestRank_ModeFilterApplied(t *testing.T) {
	svc := newService(t, nil)
	records := []record.Record{
		record.FromAnyMap(map[string]any{"identifier": "clean", "title": "Climate atlas"}),
		record.FromAnyMap(map[string]any{"identifier": "flagged", "title": "Climate porn"}),
	}

	got := svc.Rank(context.Background(), queryFor(t, "climate"), records, mode.Safe)
	if len(got) != 1 || got[0].Record.Identifier() != "clean" {
		t.Fatalf("safe mode results = %v, want only the clean record", identifiers(got))
	}
}

func TestRank_AnnotatesRecords(t *testing.T) {
	svc := newService(t, nil)
	records := []record.Record{
		record.FromAnyMap(map[string]any{"identifier": "flagged", "title": "Vintage porn reel"}),
	}

	got := svc.Rank(context.Background(), queryFor(t, "vintage"), records, mode.Unrestricted)
	if len(got) != 1 {
		t.Fatalf("got %d results", len(got))
	}
	if got[0].Record[classify.FieldFlag].Str() != "true" {
		t.Error("ranked record missing the nsfw annotation")
	}
	if !got[0].Classification.Flagged() {
		t.Error("classification not carried on the result")
	}
}

func TestRank_EmptyInput(t *testing.T) {
	svc := newService(t, nil)
	got := svc.Rank(context.Background(), queryFor(t, "climate"), nil, mode.Unrestricted)
	if len(got) != 0 {
		t.Errorf("got %d results for no records", len(got))
	}
}

func TestRank_RerankReorders(t *testing.T) {
	emb := &fakeEmbedder{embed: func(text string) ([]float32, error) {
		// The query and the weaker record share a direction; the stronger
		// record is orthogonal to both.
		if text == "climate research" || strings.Contains(text, "beta") {
			return []float32{1, 0}, nil
		}
		return []float32{0, 1}, nil
	}}
	svc := newService(t, emb)

	records := []record.Record{
		record.FromAnyMap(map[string]any{
			"identifier":  "full",
			"title":       "Climate Research Bulletin",
			"description": "alpha records",
		}),
		record.FromAnyMap(map[string]any{
			"identifier":  "partial",
			"title":       "Climate Notes",
			"description": "beta records",
		}),
	}

	got := svc.Rank(context.Background(), queryFor(t, "climate research"), records, mode.Unrestricted)
	if got[0].Record.Identifier() != "partial" {
		t.Errorf("order = %v, want embedding similarity to promote partial", identifiers(got))
	}
}

func TestRank_RerankFallsBackOnError(t *testing.T) {
	emb := &fakeEmbedder{embed: func(string) ([]float32, error) {
		return nil, errors.New("provider down")
	}}
	svc := newService(t, emb)

	records := []record.Record{
		record.FromAnyMap(map[string]any{"identifier": "partial", "title": "Climate Notes"}),
		record.FromAnyMap(map[string]any{
			"identifier":  "full",
			"title":       "Climate Research Bulletin",
			"description": "climate research data",
		}),
	}

	got := svc.Rank(context.Background(), queryFor(t, "climate research"), records, mode.Unrestricted)
	if got[0].Record.Identifier() != "full" {
		t.Errorf("order = %v, want metadata order preserved on embedder failure", identifiers(got))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2}, []float32{1, 2}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func identifiers(results []Result) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Record.Identifier()
	}
	return ids
}
