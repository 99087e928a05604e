package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.Enabled)
	require.Equal(t, StrategyBlock, cfg.Strategy)
	require.Equal(t, 1000, cfg.Deduplication.CacheSize)
	require.Equal(t, int64(100), cfg.Deduplication.TTLMillis)
	require.Equal(t, int64(10000), cfg.Rules.DeepPagination.MaxOffset)
	require.Equal(t, int64(1000), cfg.Rules.LargePageSize.MaxPageSize)
	require.False(t, cfg.Rules.BlacklistFields.Enabled)
	require.Contains(t, cfg.Rules.DangerousFunction.DeniedFunctions, "load_file")
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
strategy: WARN
rules:
  deepPagination:
    maxOffset: 500
  noPagination:
    enforceForAllQueries: true
`))
	require.NoError(t, err)

	require.Equal(t, StrategyWarn, cfg.Strategy)
	require.Equal(t, int64(500), cfg.Rules.DeepPagination.MaxOffset)
	require.True(t, cfg.Rules.NoPagination.EnforceForAllQueries)
	// Untouched defaults survive the merge.
	require.Equal(t, int64(1000), cfg.Rules.LargePageSize.MaxPageSize)
	require.True(t, cfg.Rules.NoWhereClause.Enabled)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "explode"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Rules.DeepPagination.MaxOffset = -1
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Deduplication.CacheSize = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Rules.DummyCondition.Patterns = nil
	cfg.Rules.DummyCondition.CustomPatterns = nil
	require.Error(t, cfg.Validate())

	// Disabled rules may carry bad tunables.
	cfg = Default()
	cfg.Rules.DeepPagination.Enabled = false
	cfg.Rules.DeepPagination.MaxOffset = -1
	require.NoError(t, cfg.Validate())
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`strategy: explode`))
	require.Error(t, err)

	_, err = Parse([]byte(`{not yaml`))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: log\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, StrategyLog, cfg.Strategy)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestStoreSwap(t *testing.T) {
	store := NewStore(nil)
	first := store.Current()
	require.NotNil(t, first)

	next := Default()
	next.Strategy = StrategyLog
	old := store.Swap(next)
	require.Equal(t, first, old)
	require.Equal(t, StrategyLog, store.Current().Strategy)
}
