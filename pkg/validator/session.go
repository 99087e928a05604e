package validator

import (
	"time"

	"github.com/footstone/sqlguard/pkg/types"
)

// Session binds a Validator to one caller-owned dedup cache. A session is
// confined to a single goroutine; interceptors create one per connection or
// per worker and Reset it before the worker goes back to a pool. Callers
// that want no deduplication use the Validator directly.
type Session struct {
	v     *Validator
	cache *DedupCache
}

// NewSession creates a session using the deduplication settings from the
// validator's current config snapshot.
func NewSession(v *Validator) *Session {
	dd := v.Config().Deduplication
	var cache *DedupCache
	if dd.Enabled {
		cache = NewDedupCache(dd.CacheSize, time.Duration(dd.TTLMillis)*time.Millisecond)
	}
	return &Session{v: v, cache: cache}
}

// Validate validates the context unless its SQL text was already validated
// within the TTL window, in which case it returns an immediate pass.
func (s *Session) Validate(c *types.SQLContext) (*types.ValidationResult, error) {
	if s.cache != nil && !s.cache.ShouldCheck(c.SQL) {
		return types.Pass(), nil
	}
	return s.v.Validate(c)
}

// Reset clears the dedup cache.
func (s *Session) Reset() {
	if s.cache != nil {
		s.cache.Clear()
	}
}
