// Package archivist is the embedded SDK: the full search and scoring
// pipeline wired for in-process use, without running the HTTP server.
package archivist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/db"
	dbRedis "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/db/redis"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/lexicon"
	archiverepo "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/repository/archive"
	classifyuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/classify"
	expanduc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/expand"
	rankuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/rank"
	relevanceuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/relevance"
	searchuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/search"
	trustuc "github.com/RepertoireLLC/A1x6nd7a-sub000/internal/usecase/trust"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the archivist SDK entry point.
type Client struct {
	store    db.Store
	search   *searchuc.Service
	expand   *expanduc.Service
	classify *classifyuc.Service
}

// New creates an archivist Client. With no options it searches
// archive.org directly with the built-in vocabulary and no cache.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		archiveBaseURL: "https://archive.org",
		archiveTimeout: 15 * time.Second,
		archiveTTL:     5 * time.Minute,
		keyPrefix:      "archivist:",
		logger:         zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	lex, err := lexicon.New(lexicon.Options{
		KeywordsPath: cfg.keywordsPath,
		SynonymsPath: cfg.synonymsPath,
	})
	if err != nil {
		return nil, fmt.Errorf("archivist: load lexicon: %w", err)
	}

	var store db.Store
	if len(cfg.redisAddrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("archivist: create cache store: %w", err)
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("archivist: cache store not ready: %w", err)
		}
	}

	return wireClient(store, lex, cfg), nil
}

func wireClient(store db.Store, lex *lexicon.Lexicon, cfg *clientConfig) *Client {
	var searcher searchuc.Archive
	client := archiverepo.NewClient(archiverepo.Config{
		BaseURL: cfg.archiveBaseURL,
		Timeout: cfg.archiveTimeout,
		Logger:  cfg.logger,
	})
	searcher = client
	if store != nil {
		searcher = archiverepo.NewCached(client, store, cfg.keyPrefix, cfg.archiveTTL, cfg.logger)
	}

	var domEmb domain.Embedder
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	}

	expandSvc := expanduc.New(lex)
	relevanceSvc := relevanceuc.New(lex)
	trustSvc := trustuc.New(lex, relevanceSvc)
	classifySvc := classifyuc.New(lex)
	rankSvc := rankuc.New(relevanceSvc, trustSvc, classifySvc, domEmb, cfg.logger)

	searchSvc := searchuc.New(searcher, expandSvc, rankSvc)
	if cfg.defaultMode != "" {
		searchSvc = searchSvc.WithDefaults(cfg.defaultMode, 0, 0)
	}

	return &Client{
		store:    store,
		search:   searchSvc,
		expand:   expandSvc,
		classify: classifySvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache store connectivity. Without a cache it is a no-op.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Embedder supplies query and document embeddings for the re-rank step.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult is one embedding with its token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// errNoQuery guards builder misuse before the request ever leaves the process.
var errNoQuery = errors.New("archivist: query is required")
