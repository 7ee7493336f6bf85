package mythopedia

import (
	"time"

	"go.uber.org/zap"

	searchuc "github.com/mythopedia-cloud/mythopedia/internal/usecase/search"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs     []string
	username  string
	password  string
	database  int
	keyPrefix string
	logger    *zap.Logger
	search    searchuc.Config
}

// WithRedis sets the Redis/Valkey addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithAuth sets the store credentials.
func WithAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects the logical Redis database.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.database = db
	}
}

// WithKeyPrefix overrides the key namespace (default "mythopedia:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithLogger attaches a zap logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithFuzzyThreshold sets the minimum similarity for fuzzy token matches.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *clientConfig) {
		c.search.FuzzyThreshold = threshold
	}
}

// WithMinQueryLength sets the minimum query length gate.
func WithMinQueryLength(n int) Option {
	return func(c *clientConfig) {
		c.search.MinQueryLength = n
	}
}

// WithMaxResults caps the number of results per search.
func WithMaxResults(n int) Option {
	return func(c *clientConfig) {
		c.search.MaxResults = n
	}
}

// WithHighlightTag sets the HTML tag wrapped around highlighted terms.
func WithHighlightTag(tag string) Option {
	return func(c *clientConfig) {
		c.search.HighlightTag = tag
	}
}

// WithCache tunes the response cache.
func WithCache(ttl time.Duration, size int) Option {
	return func(c *clientConfig) {
		c.search.CacheTTL = ttl
		c.search.CacheSize = size
	}
}
