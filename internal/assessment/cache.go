// ABOUTME: TTL cache decorator for assessment sources
// ABOUTME: Stores successful assessments in an in-memory badger database keyed by prompt

package assessment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/observability"
)

// CachedSource wraps a Source and remembers successful answers for a fixed TTL.
// Errors and empty answers are never cached, so the next call retries the service.
type CachedSource struct {
	inner   Source
	db      *badger.DB
	ttl     time.Duration
	metrics *observability.Metrics
}

var _ Source = (*CachedSource)(nil)

// NewCachedSource opens an in-memory badger store in front of inner.
func NewCachedSource(inner Source, ttl time.Duration, metrics *observability.Metrics) (*CachedSource, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open assessment cache: %w", err)
	}
	return &CachedSource{inner: inner, db: db, ttl: ttl, metrics: metrics}, nil
}

// Generate returns a cached answer for an identical prompt, or asks inner.
func (c *CachedSource) Generate(ctx context.Context, r models.SensorReading) (string, error) {
	key := cacheKey(r)

	if text, ok := c.get(key); ok {
		c.metrics.AssessmentsTotal.WithLabelValues(observability.OutcomeCacheHit).Inc()
		return text, nil
	}

	text, err := c.inner.Generate(ctx, r)
	if err != nil {
		return text, err
	}
	// A failed write only costs a future cache miss.
	_ = c.put(key, text)
	return text, nil
}

// Close releases the badger store.
func (c *CachedSource) Close() error {
	return c.db.Close()
}

func (c *CachedSource) get(key []byte) (string, bool) {
	var text string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		text = string(val)
		return nil
	})
	if err != nil {
		// badger.ErrKeyNotFound covers both misses and expired entries.
		return "", false
	}
	return text, true
}

func (c *CachedSource) put(key []byte, text string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, []byte(text)).WithTTL(c.ttl))
	})
}

func cacheKey(r models.SensorReading) []byte {
	sum := sha256.Sum256([]byte(BuildPrompt(r)))
	return []byte("assessment:" + hex.EncodeToString(sum[:]))
}
