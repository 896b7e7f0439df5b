package archivist

import (
	"time"

	"go.uber.org/zap"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/domain/mode"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	archiveBaseURL string
	archiveTimeout time.Duration
	archiveTTL     time.Duration

	redisAddrs    []string
	redisPassword string
	keyPrefix     string

	keywordsPath string
	synonymsPath string

	embedder    Embedder
	defaultMode mode.Mode
	logger      *zap.Logger
}

// WithArchiveBaseURL overrides the upstream archive API base URL.
func WithArchiveBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.archiveBaseURL = url
	}
}

// WithArchiveTimeout sets the upstream request timeout.
func WithArchiveTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.archiveTimeout = d
	}
}

// WithRedis enables response and embedding caching via Redis.
func WithRedis(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.redisAddrs = addrs
		c.redisPassword = password
	}
}

// WithCacheTTL sets how long cached archive responses stay valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.archiveTTL = ttl
	}
}

// WithLexiconFiles overrides the built-in keyword and synonym tables.
// Empty paths keep the defaults.
func WithLexiconFiles(keywordsPath, synonymsPath string) Option {
	return func(c *clientConfig) {
		c.keywordsPath = keywordsPath
		c.synonymsPath = synonymsPath
	}
}

// WithEmbedder enables the embedding re-rank step.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithDefaultMode sets the visibility mode used when a search does not
// name one.
func WithDefaultMode(m Mode) Option {
	return func(c *clientConfig) {
		c.defaultMode = mode.Mode(m)
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
