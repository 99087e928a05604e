package validator

import (
	"container/list"
	"strings"
	"time"
)

// DedupCache skips re-validation of SQL text seen within a short window.
// It is a bounded LRU from normalized SQL to last-seen time with a TTL, and
// it is not synchronized: each cache belongs to exactly one session.
type DedupCache struct {
	maxEntries int
	ttl        time.Duration
	entries    map[string]*list.Element
	order      *list.List

	// now is swappable in tests.
	now func() time.Time
}

type dedupEntry struct {
	key  string
	seen time.Time
}

// NewDedupCache creates a cache with the given capacity and TTL.
func NewDedupCache(maxEntries int, ttl time.Duration) *DedupCache {
	return &DedupCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		now:        time.Now,
	}
}

// ShouldCheck reports whether sql needs validating and records this
// sighting. It returns false only when the same normalized text was seen
// within the TTL window.
func (d *DedupCache) ShouldCheck(sql string) bool {
	key := normalizeKey(sql)
	now := d.now()

	if el, ok := d.entries[key]; ok {
		entry := el.Value.(*dedupEntry)
		fresh := now.Sub(entry.seen) < d.ttl
		entry.seen = now
		d.order.MoveToFront(el)
		return !fresh
	}

	d.entries[key] = d.order.PushFront(&dedupEntry{key: key, seen: now})
	for d.order.Len() > d.maxEntries {
		oldest := d.order.Back()
		d.order.Remove(oldest)
		delete(d.entries, oldest.Value.(*dedupEntry).key)
	}
	return true
}

// Len returns the number of cached entries.
func (d *DedupCache) Len() int {
	return d.order.Len()
}

// Clear drops every entry. Sessions riding pooled workers call this before
// the worker is returned to its pool.
func (d *DedupCache) Clear() {
	d.entries = make(map[string]*list.Element, d.maxEntries)
	d.order.Init()
}

func normalizeKey(sql string) string {
	return strings.ToLower(strings.TrimSpace(sql))
}
