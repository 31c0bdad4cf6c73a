package scancache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"depthcharge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrCompute(t *testing.T) {
	cache := New()
	verdict := &models.ScanVerdict{BlobHash: "abc"}

	computed := 0
	compute := func() (*models.ScanVerdict, error) {
		computed++
		return verdict, nil
	}

	got, err := cache.GetOrCompute("abc", compute)
	require.NoError(t, err)
	assert.Same(t, verdict, got)

	got, err = cache.GetOrCompute("abc", compute)
	require.NoError(t, err)
	assert.Same(t, verdict, got)
	assert.Equal(t, 1, computed, "second lookup must not recompute")

	hits, computes := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), computes)
}

func TestCache_ConcurrentMissesComputeOnce(t *testing.T) {
	cache := New()

	var computed atomic.Int64
	compute := func() (*models.ScanVerdict, error) {
		computed.Add(1)
		time.Sleep(10 * time.Millisecond)
		return &models.ScanVerdict{BlobHash: "shared"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verdict, err := cache.GetOrCompute("shared", compute)
			assert.NoError(t, err)
			assert.Equal(t, "shared", verdict.BlobHash)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), computed.Load(), "concurrent misses on one hash must collapse")
}

func TestCache_FailedComputeIsNotCached(t *testing.T) {
	cache := New()

	boom := errors.New("blob unreadable")
	_, err := cache.GetOrCompute("k", func() (*models.ScanVerdict, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	verdict, err := cache.GetOrCompute("k", func() (*models.ScanVerdict, error) {
		return &models.ScanVerdict{BlobHash: "k"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "k", verdict.BlobHash)
}

func TestCache_DistinctHashesComputeSeparately(t *testing.T) {
	cache := New()
	for _, hash := range []string{"a", "b", "c"} {
		hash := hash
		_, err := cache.GetOrCompute(hash, func() (*models.ScanVerdict, error) {
			return &models.ScanVerdict{BlobHash: hash}, nil
		})
		require.NoError(t, err)
	}

	_, computes := cache.Stats()
	assert.Equal(t, int64(3), computes)
}
