// Package scancache memoizes scan verdicts by blob content hash. Identical
// blobs recur across many commits (unchanged files, reverts, copies); without
// memoization the same content would be re-scanned once per occurrence. This
// is the only mutable state shared between scan workers.
package scancache

import (
	"sync/atomic"

	"depthcharge/internal/models"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the verdict for a blob on cache miss.
type ComputeFunc func() (*models.ScanVerdict, error)

// Cache is a concurrency-safe blob-hash to verdict map scoped to one scan
// invocation. Concurrent misses on the same hash are collapsed so the compute
// function runs once per hash; a failed compute is not cached and may retry.
type Cache struct {
	items    *ttlcache.Cache[string, *models.ScanVerdict]
	group    singleflight.Group
	hits     atomic.Int64
	computes atomic.Int64
}

// New creates an empty cache. Entries never expire; the cache is discarded
// with the scan invocation that owns it.
func New() *Cache {
	return &Cache{
		items: ttlcache.New[string, *models.ScanVerdict](
			ttlcache.WithDisableTouchOnHit[string, *models.ScanVerdict](),
		),
	}
}

// GetOrCompute returns the cached verdict for hash, computing and storing it
// on miss. Verdicts are pure functions of blob content and detector
// configuration, so reusing them across commits and branches is safe.
func (c *Cache) GetOrCompute(hash string, compute ComputeFunc) (*models.ScanVerdict, error) {
	if item := c.items.Get(hash); item != nil {
		c.hits.Add(1)
		return item.Value(), nil
	}

	value, err, _ := c.group.Do(hash, func() (interface{}, error) {
		// A racing caller may have stored the verdict between our miss
		// and entering the group.
		if item := c.items.Get(hash); item != nil {
			c.hits.Add(1)
			return item.Value(), nil
		}
		verdict, err := compute()
		if err != nil {
			return nil, err
		}
		c.computes.Add(1)
		c.items.Set(hash, verdict, ttlcache.NoTTL)
		return verdict, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*models.ScanVerdict), nil
}

// Stats reports cache hits and verdict computations so far.
func (c *Cache) Stats() (hits, computes int64) {
	return c.hits.Load(), c.computes.Load()
}
