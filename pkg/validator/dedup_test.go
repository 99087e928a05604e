package validator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDedupCacheTTL(t *testing.T) {
	now := time.Now()
	cache := NewDedupCache(10, 100*time.Millisecond)
	cache.now = func() time.Time { return now }

	require.True(t, cache.ShouldCheck("SELECT * FROM users"))
	require.False(t, cache.ShouldCheck("SELECT * FROM users"))

	// Normalization: case and surrounding whitespace do not defeat the hit.
	require.False(t, cache.ShouldCheck("  select * from USERS  "))

	// Different SQL is its own entry.
	require.True(t, cache.ShouldCheck("SELECT * FROM orders"))

	// Past the TTL the entry is stale and the statement revalidates.
	now = now.Add(150 * time.Millisecond)
	require.True(t, cache.ShouldCheck("SELECT * FROM users"))
}

func TestDedupCacheTTLSlidesOnSight(t *testing.T) {
	now := time.Now()
	cache := NewDedupCache(10, 100*time.Millisecond)
	cache.now = func() time.Time { return now }

	require.True(t, cache.ShouldCheck("q"))
	now = now.Add(60 * time.Millisecond)
	require.False(t, cache.ShouldCheck("q"))
	// The second sighting refreshed the timestamp.
	now = now.Add(60 * time.Millisecond)
	require.False(t, cache.ShouldCheck("q"))
}

func TestDedupCacheEviction(t *testing.T) {
	now := time.Now()
	cache := NewDedupCache(3, time.Hour)
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		require.True(t, cache.ShouldCheck(fmt.Sprintf("q%d", i)))
	}
	require.Equal(t, 3, cache.Len())

	// q0 is the least recently used and gets evicted.
	require.True(t, cache.ShouldCheck("q3"))
	require.Equal(t, 3, cache.Len())
	require.True(t, cache.ShouldCheck("q0"))

	// Touching an entry protects it from eviction.
	require.False(t, cache.ShouldCheck("q3"))
}

func TestDedupCacheClear(t *testing.T) {
	cache := NewDedupCache(10, time.Hour)
	require.True(t, cache.ShouldCheck("q"))
	require.False(t, cache.ShouldCheck("q"))

	cache.Clear()
	require.Equal(t, 0, cache.Len())
	require.True(t, cache.ShouldCheck("q"))
}
