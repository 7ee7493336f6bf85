// Package mythopedia is the embeddable SDK for the mythopedia search
// engine. It wires the full-text index directly over a Redis content
// store, with no HTTP server in between.
package mythopedia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mythopedia-cloud/mythopedia/internal/db"
	dbRedis "github.com/mythopedia-cloud/mythopedia/internal/db/redis"
	analyticsrepo "github.com/mythopedia-cloud/mythopedia/internal/repository/analytics"
	contentrepo "github.com/mythopedia-cloud/mythopedia/internal/repository/content"
	analyticsuc "github.com/mythopedia-cloud/mythopedia/internal/usecase/analytics"
	searchuc "github.com/mythopedia-cloud/mythopedia/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the mythopedia SDK entry point.
type Client struct {
	store     db.Store
	content   *contentrepo.Repo
	search    *searchuc.Service
	analytics *analyticsuc.Service
}

// New creates a Client and connects to the content store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: "mythopedia:",
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("mythopedia: content store address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.database,
	})
	if err != nil {
		return nil, fmt.Errorf("mythopedia: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("mythopedia: content store not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	contentRepo := contentrepo.New(store, cfg.keyPrefix, cfg.logger)
	analyticsRepo := analyticsrepo.New(store, cfg.keyPrefix)

	analyticsSvc := analyticsuc.New(analyticsRepo, cfg.logger, analyticsuc.Config{})
	searchSvc := searchuc.New(contentRepo, analyticsSvc, cfg.logger, cfg.search)

	return &Client{
		store:     store,
		content:   contentRepo,
		search:    searchSvc,
		analytics: analyticsSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks content store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Reindex rebuilds the search index from the content store.
func (c *Client) Reindex(ctx context.Context) error {
	if err := c.search.Rebuild(ctx); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	return nil
}

// Put stores a content record. The index does not pick it up until the
// next Reindex.
func (c *Client) Put(ctx context.Context, rec Record) error {
	if err := c.content.Put(ctx, rec); err != nil {
		return fmt.Errorf("put: %w", err)
	}
	return nil
}

// Get retrieves a content record by id straight from the store.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	rec, err := c.content.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

// Delete removes a content record. The index keeps serving the old entry
// until the next Reindex.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.content.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}
