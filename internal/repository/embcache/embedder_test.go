package embcache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/db"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
)

type fakeStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

type countingEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (c *countingEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	c.calls++
	if c.err != nil {
		return domain.EmbeddingResult{}, c.err
	}
	return c.result, nil
}

func TestEmbed_MissThenHit(t *testing.T) {
	store := newFakeStore()
	inner := &countingEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.25, -1, 3.5},
		PromptTokens: 4,
		TotalTokens:  4,
	}}
	c := New(inner, store, "archivist:", nil, zap.NewNop())

	first, err := c.Embed(context.Background(), "climate research")
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d", inner.calls)
	}
	if first.TotalTokens != 4 {
		t.Errorf("miss TotalTokens = %d, want real usage", first.TotalTokens)
	}

	second, err := c.Embed(context.Background(), "climate research")
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, hit should not re-embed", inner.calls)
	}
	if !reflect.DeepEqual(second.Embedding, first.Embedding) {
		t.Errorf("cached vector = %v, want %v", second.Embedding, first.Embedding)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
	}
}

func TestEmbed_DistinctTexts(t *testing.T) {
	store := newFakeStore()
	inner := &countingEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	c := New(inner, store, "archivist:", nil, zap.NewNop())

	if _, err := c.Embed(context.Background(), "alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Embed(context.Background(), "beta"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("calls = %d, distinct texts must embed separately", inner.calls)
	}
}

func TestEmbed_StoreErrorsFallThrough(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	inner := &countingEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	c := New(inner, store, "archivist:", nil, zap.NewNop())

	got, err := c.Embed(context.Background(), "climate")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, want upstream fallthrough", inner.calls)
	}
	if len(got.Embedding) != 2 {
		t.Errorf("embedding = %v", got.Embedding)
	}
}

func TestEmbed_CorruptEntryFallsThrough(t *testing.T) {
	store := newFakeStore()
	inner := &countingEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	c := New(inner, store, "archivist:", nil, zap.NewNop())

	store.data[c.cacheKey("climate")] = []byte{1, 2, 3} // not a multiple of 4
	if _, err := c.Embed(context.Background(), "climate"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("calls = %d, corrupt entry should re-embed", inner.calls)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	store := newFakeStore()
	wantErr := errors.New("provider down")
	c := New(&countingEmbedder{err: wantErr}, store, "archivist:", nil, zap.NewNop())

	if _, err := c.Embed(context.Background(), "climate"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped inner error", err)
	}
	if len(store.data) != 0 {
		t.Error("errors must not be cached")
	}
}

func TestVectorCodec(t *testing.T) {
	vec := []float32{0, 1.5, -2.25, 3e8}
	got, err := bytesToVector(vectorToCacheBytes(vec))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, vec) {
		t.Errorf("round-trip = %v, want %v", got, vec)
	}

	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated data")
	}
}
