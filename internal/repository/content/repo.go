package content

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mythopedia-cloud/mythopedia/internal/db"
	"github.com/mythopedia-cloud/mythopedia/internal/domain"
)

// store is the consumer interface for content documents (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	JSONSet(ctx context.Context, key, path string, data []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads and writes content records stored as JSON documents
// under {prefix}content:{id}.
type Repo struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a content repository.
func New(s store, keyPrefix string, logger *zap.Logger) *Repo {
	return &Repo{store: s, prefix: keyPrefix, logger: logger}
}

// List scans all content keys and fetches the documents in one pipelined
// round-trip. Keys that vanish between SCAN and JSON.GET are skipped, and
// so are documents that fail to decode: one corrupt record must not block
// indexing of the rest.
func (r *Repo) List(ctx context.Context) ([]domain.ContentRecord, error) {
	keys, err := r.store.Scan(ctx, r.recordKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan content: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if len(keys) == 0 {
		return []domain.ContentRecord{}, nil
	}

	blobs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json get multi: %w: %w", domain.ErrStoreUnavailable, err)
	}

	records := make([]domain.ContentRecord, 0, len(blobs))
	for i, blob := range blobs {
		if blob == nil {
			continue
		}
		rec, err := decodeRecord(blob)
		if err != nil {
			r.logger.Warn("Failed to parse content document",
				zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get retrieves a single content record by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.ContentRecord, error) {
	blob, err := r.store.JSONGet(ctx, r.recordKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ContentRecord{}, domain.ErrRecordNotFound
		}
		return domain.ContentRecord{}, fmt.Errorf("json get content %s: %w", id, err)
	}
	return decodeRecord(blob)
}

// Put stores a content record, overwriting any previous version.
func (r *Repo) Put(ctx context.Context, rec domain.ContentRecord) error {
	if rec.ID == "" {
		return domain.ErrInvalidRequest
	}
	blob, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := r.store.JSONSet(ctx, r.recordKey(rec.ID), "$", blob); err != nil {
		return fmt.Errorf("json set content %s: %w", rec.ID, err)
	}
	return nil
}

// Delete removes a content record.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.recordKey(id)); err != nil {
		return fmt.Errorf("del content %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored content records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.recordKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan content: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return len(keys), nil
}

// Key pattern: mythopedia:content:{id}

func (r *Repo) recordKey(id string) string {
	return r.prefix + "content:" + id
}
