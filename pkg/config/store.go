package config

import "sync/atomic"

// Store publishes an immutable Config snapshot to concurrent readers and
// lets hot reload swap it without coordination. Readers always see a fully
// validated snapshot, never a partially written one.
type Store struct {
	current atomic.Pointer[Config]
}

// NewStore returns a Store seeded with cfg. A nil cfg seeds the defaults.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = Default()
	}
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Current returns the active snapshot. Callers must not mutate it.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// Swap installs a new snapshot and returns the previous one.
func (s *Store) Swap(cfg *Config) *Config {
	return s.current.Swap(cfg)
}
