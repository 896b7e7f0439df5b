// Package rank runs the scoring pipeline: records are scored and
// classified concurrently, combined, filtered by visibility mode, ordered,
// and optionally re-ranked by embedding similarity.
package rank

import (
	"context"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/nsfw"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/query"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/score"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/classify"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/relevance"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/trust"
)

// Pipeline limits.
const (
	// scoreWorkers bounds concurrent record scoring.
	scoreWorkers = 8
	// rerankBatch bounds how many leading results the embedding re-rank
	// touches.
	rerankBatch = 40
	// rerankWeight blends embedding similarity into the ordering score.
	rerankWeight = 0.3
	// embedTextLimit truncates document text sent to the embedder.
	embedTextLimit = 2000
)

// Result is one scored, classified, annotated record.
type Result struct {
	Record         record.Record
	Breakdown      score.Breakdown
	Classification nsfw.Classification

	// Primary ranking signals.
	KeywordRelevance  float64
	SemanticRelevance float64
	PrimaryScore      float64
}

// Service is the ranking pipeline.
type Service struct {
	relevance  *relevance.Service
	trust      *trust.Service
	classifier *classify.Service
	embedder   domain.Embedder // nil disables the re-rank step
	logger     *zap.Logger
}

// New creates a ranking pipeline. embedder may be nil.
func New(
	rel *relevance.Service,
	tr *trust.Service,
	cl *classify.Service,
	embedder domain.Embedder,
	logger *zap.Logger,
) *Service {
	return &Service{
		relevance:  rel,
		trust:      tr,
		classifier: cl,
		embedder:   embedder,
		logger:     logger,
	}
}

// Rank scores and classifies every record, filters by mode, and orders the
// survivors by primary score (combined truth score breaks ties, then
// identifier for determinism).
func (s *Service) Rank(
	ctx context.Context, qc *query.Context, records []record.Record, m mode.Mode,
) []Result {
	results := s.scoreAll(qc, records)
	results = filterByMode(results, m)

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PrimaryScore != results[j].PrimaryScore {
			return results[i].PrimaryScore > results[j].PrimaryScore
		}
		if results[i].Breakdown.Combined() != results[j].Breakdown.Combined() {
			return results[i].Breakdown.Combined() > results[j].Breakdown.Combined()
		}
		return results[i].Record.Identifier() < results[j].Record.Identifier()
	})

	s.rerank(ctx, qc, results)
	return results
}

// scoreAll fans records out across workers. Scoring is pure and every
// output is a fresh copy, so the only coordination is the index.
func (s *Service) scoreAll(qc *query.Context, records []record.Record) []Result {
	results := make([]Result, len(records))

	workers := scoreWorkers
	if len(records) < workers {
		workers = len(records)
	}
	if workers == 0 {
		return results
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scoreOne(qc, records[i])
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (s *Service) scoreOne(qc *query.Context, rec record.Record) Result {
	breakdown := s.trust.Evaluate(qc, rec)
	classification := s.classifier.Classify(rec)

	keyword := s.relevance.KeywordRelevance(qc, rec)
	semantic := s.relevance.SemanticRelevance(qc, rec)
	primary := s.relevance.PrimaryScore(
		keyword, semantic, breakdown.DocumentQuality(), breakdown.Popularity(),
	)

	return Result{
		Record:            s.classifier.Annotate(rec),
		Breakdown:         breakdown,
		Classification:    classification,
		KeywordRelevance:  score.Round3(score.Clamp01(keyword)),
		SemanticRelevance: score.Round3(score.Clamp01(semantic)),
		PrimaryScore:      score.Round3(primary),
	}
}

// rerank blends embedding similarity into the leading results. Any
// embedder failure leaves the metadata-only ordering untouched.
func (s *Service) rerank(ctx context.Context, qc *query.Context, results []Result) {
	if s.embedder == nil || len(results) == 0 || qc.IsEmpty() {
		return
	}

	queryEmb, err := s.embedder.Embed(ctx, qc.Original())
	if err != nil {
		s.logger.Warn("Embedding re-rank unavailable, keeping metadata order", zap.Error(err))
		return
	}

	n := len(results)
	if n > rerankBatch {
		n = rerankBatch
	}

	type scored struct {
		res     Result
		blended float64
	}
	head := make([]scored, n)
	for i := 0; i < n; i++ {
		docText := relevance.DocumentText(results[i].Record)
		if len(docText) > embedTextLimit {
			docText = docText[:embedTextLimit]
		}
		docEmb, err := s.embedder.Embed(ctx, docText)
		if err != nil {
			s.logger.Warn("Embedding re-rank aborted mid-batch, keeping metadata order",
				zap.Int("scored", i), zap.Error(err))
			return
		}
		sim := score.Clamp01(cosineSimilarity(queryEmb.Embedding, docEmb.Embedding))
		head[i] = scored{
			res:     results[i],
			blended: (1-rerankWeight)*results[i].PrimaryScore + rerankWeight*sim,
		}
	}

	sort.SliceStable(head, func(i, j int) bool {
		return head[i].blended > head[j].blended
	})
	for i := range head {
		results[i] = head[i].res
	}
}

// cosineSimilarity of two vectors; mismatched or empty vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
