package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/db"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/record"
	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/metrics"
)

// Searcher is the upstream contract the cache decorates.
type Searcher interface {
	Search(ctx context.Context, q Query) (Page, error)
}

// kvStore is the consumer interface for the response cache (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedClient serves repeated archive queries from a KV store.
// Cache failures are logged and fall through to the upstream client.
type CachedClient struct {
	inner     Searcher
	store     kvStore
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCached creates a caching decorator over an archive Searcher.
func NewCached(inner Searcher, store kvStore, keyPrefix string, ttl time.Duration, logger *zap.Logger) *CachedClient {
	return &CachedClient{
		inner:     inner,
		store:     store,
		keyPrefix: keyPrefix + "archive:",
		ttl:       ttl,
		logger:    logger,
	}
}

// cachedPage is the stored wire form of a Page.
type cachedPage struct {
	NumFound int              `json:"numFound"`
	Docs     []map[string]any `json:"docs"`
}

// Search returns a cached page or calls upstream and stores the result.
func (c *CachedClient) Search(ctx context.Context, q Query) (Page, error) {
	key := c.cacheKey(q)

	if page, ok := c.getCached(ctx, key); ok {
		metrics.ArchiveCacheTotal.WithLabelValues("hit").Inc()
		return page, nil
	}
	metrics.ArchiveCacheTotal.WithLabelValues("miss").Inc()

	page, err := c.inner.Search(ctx, q)
	if err != nil {
		return Page{}, fmt.Errorf("archive search: %w", err)
	}

	c.putCached(ctx, key, page)
	return page, nil
}

func (c *CachedClient) cacheKey(q Query) string {
	h := sha256.Sum256([]byte(q.Expression + "|" + strconv.Itoa(q.Page) + "|" + strconv.Itoa(q.Rows)))
	return c.keyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedClient) getCached(ctx context.Context, key string) (Page, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read archive cache", zap.String("key", key), zap.Error(err))
		}
		return Page{}, false
	}

	var stored cachedPage
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Warn("Failed to parse cached archive page", zap.String("key", key), zap.Error(err))
		return Page{}, false
	}

	records := make([]record.Record, 0, len(stored.Docs))
	for _, doc := range stored.Docs {
		records = append(records, record.FromAnyMap(doc))
	}
	return Page{Records: records, NumFound: stored.NumFound}, true
}

func (c *CachedClient) putCached(ctx context.Context, key string, page Page) {
	docs := make([]map[string]any, 0, len(page.Records))
	for _, rec := range page.Records {
		docs = append(docs, rec.AsMap())
	}
	data, err := json.Marshal(cachedPage{NumFound: page.NumFound, Docs: docs})
	if err != nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache archive page", zap.String("key", key), zap.Error(err))
	}
}
