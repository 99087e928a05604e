// Package config holds the engine configuration tree, YAML loading, and the
// atomically swappable snapshot store used for hot reload.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Strategy is the response to a failed validation, consumed by the calling
// collaborator (interceptor, CLI), never by the engine itself.
type Strategy string

const (
	// StrategyLog records the violation and lets execution proceed.
	StrategyLog Strategy = "log"
	// StrategyWarn surfaces the violation prominently and proceeds.
	StrategyWarn Strategy = "warn"
	// StrategyBlock refuses to execute the offending statement.
	StrategyBlock Strategy = "block"
)

// Config is the full engine configuration. A Config is treated as immutable
// once it enters a Store; hot reload swaps whole snapshots.
type Config struct {
	// Enabled is the master switch; when false every validation passes.
	Enabled bool `yaml:"enabled"`
	// Strategy is handed through to collaborators via the report layer.
	Strategy Strategy `yaml:"strategy"`
	// FailFast controls the parse-failure policy: true returns the parse
	// error to the caller, false logs it and passes the statement.
	FailFast bool `yaml:"failFast"`

	Deduplication DedupConfig `yaml:"deduplication"`
	Rules         RulesConfig `yaml:"rules"`
}

// DedupConfig tunes the per-session recency cache.
type DedupConfig struct {
	Enabled   bool  `yaml:"enabled"`
	CacheSize int   `yaml:"cacheSize"`
	TTLMillis int64 `yaml:"ttlMs"`
}

// RuleConfig is the common shape of a check with no tunables.
type RuleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DummyConditionConfig tunes always-true WHERE detection. Patterns are
// matched case-insensitively against the normalized WHERE text.
type DummyConditionConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Patterns       []string `yaml:"patterns"`
	CustomPatterns []string `yaml:"customPatterns"`
}

// AllPatterns returns built-in and custom patterns combined.
func (c DummyConditionConfig) AllPatterns() []string {
	out := make([]string, 0, len(c.Patterns)+len(c.CustomPatterns))
	out = append(out, c.Patterns...)
	out = append(out, c.CustomPatterns...)
	return out
}

// BlacklistFieldsConfig lists low-cardinality columns that filter almost
// nothing. Entries support a trailing '*' prefix wildcard.
type BlacklistFieldsConfig struct {
	Enabled bool     `yaml:"enabled"`
	Fields  []string `yaml:"fields"`
}

// WhitelistFieldsConfig requires at least one of the listed columns in every
// WHERE clause, either per table or globally.
type WhitelistFieldsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Fields is the global fallback list.
	Fields []string `yaml:"fields"`
	// ByTable overrides the global list for specific tables.
	ByTable map[string][]string `yaml:"byTable"`
	// EnforceForUnknownTables applies the global list to tables missing
	// from ByTable.
	EnforceForUnknownTables bool `yaml:"enforceForUnknownTables"`
}

// DeepPaginationConfig tunes the deep-offset check.
type DeepPaginationConfig struct {
	Enabled   bool  `yaml:"enabled"`
	MaxOffset int64 `yaml:"maxOffset"`
}

// LargePageSizeConfig tunes the oversized-page check.
type LargePageSizeConfig struct {
	Enabled     bool  `yaml:"enabled"`
	MaxPageSize int64 `yaml:"maxPageSize"`
}

// NoPaginationConfig tunes the unpaginated-SELECT check.
type NoPaginationConfig struct {
	Enabled bool `yaml:"enabled"`
	// WhitelistStatementIDs exempts call sites; a trailing '*' acts as a
	// prefix wildcard.
	WhitelistStatementIDs []string `yaml:"whitelistStatementIds"`
	// WhitelistTables exempts tables, with the same wildcard syntax.
	WhitelistTables []string `yaml:"whitelistTables"`
	// UniqueKeyFields extends the built-in "id" unique-key set; an equality
	// on any of these against a literal or bind parameter exempts the query.
	UniqueKeyFields []string `yaml:"uniqueKeyFields"`
	// EnforceForAllQueries adds a MEDIUM advisory for unpaginated queries
	// whose WHERE is otherwise meaningful.
	EnforceForAllQueries bool `yaml:"enforceForAllQueries"`
}

// SQLCommentConfig tunes comment detection.
type SQLCommentConfig struct {
	Enabled bool `yaml:"enabled"`
	// AllowHintComments exempts optimizer hints (/*+ ... */).
	AllowHintComments bool `yaml:"allowHintComments"`
}

// DangerousFunctionConfig lists denied function names (case-insensitive).
type DangerousFunctionConfig struct {
	Enabled         bool     `yaml:"enabled"`
	DeniedFunctions []string `yaml:"deniedFunctions"`
}

// RulesConfig gathers the per-check configuration blocks.
type RulesConfig struct {
	NoWhereClause         RuleConfig              `yaml:"noWhereClause"`
	DummyCondition        DummyConditionConfig    `yaml:"dummyCondition"`
	BlacklistFields       BlacklistFieldsConfig   `yaml:"blacklistFields"`
	WhitelistFields       WhitelistFieldsConfig   `yaml:"whitelistFields"`
	LogicalPagination     RuleConfig              `yaml:"logicalPagination"`
	NoConditionPagination RuleConfig              `yaml:"noConditionPagination"`
	DeepPagination        DeepPaginationConfig    `yaml:"deepPagination"`
	LargePageSize         LargePageSizeConfig     `yaml:"largePageSize"`
	MissingOrderBy        RuleConfig              `yaml:"missingOrderBy"`
	NoPagination          NoPaginationConfig      `yaml:"noPagination"`
	MultiStatement        RuleConfig              `yaml:"multiStatement"`
	SQLComment            SQLCommentConfig        `yaml:"sqlComment"`
	IntoOutfile           RuleConfig              `yaml:"intoOutfile"`
	DangerousFunction     DangerousFunctionConfig `yaml:"dangerousFunction"`
}

// Default returns the configuration used when no file overrides it. The
// field blacklist and whitelist checks ship disabled because their lists are
// deployment specific; the blacklist field list still feeds the
// no-pagination severity ladder.
func Default() *Config {
	return &Config{
		Enabled:  true,
		Strategy: StrategyBlock,
		FailFast: false,
		Deduplication: DedupConfig{
			Enabled:   true,
			CacheSize: 1000,
			TTLMillis: 100,
		},
		Rules: RulesConfig{
			NoWhereClause: RuleConfig{Enabled: true},
			DummyCondition: DummyConditionConfig{
				Enabled:  true,
				Patterns: []string{"1=1", "1 = 1", "true", "'1'='1'", "'a'='a'"},
			},
			BlacklistFields: BlacklistFieldsConfig{
				Enabled: false,
				Fields:  []string{"deleted", "status", "is_*"},
			},
			WhitelistFields:       WhitelistFieldsConfig{Enabled: false},
			LogicalPagination:     RuleConfig{Enabled: true},
			NoConditionPagination: RuleConfig{Enabled: true},
			DeepPagination: DeepPaginationConfig{
				Enabled:   true,
				MaxOffset: 10000,
			},
			LargePageSize: LargePageSizeConfig{
				Enabled:     true,
				MaxPageSize: 1000,
			},
			MissingOrderBy: RuleConfig{Enabled: true},
			NoPagination:   NoPaginationConfig{Enabled: true},
			MultiStatement: RuleConfig{Enabled: true},
			SQLComment: SQLCommentConfig{
				Enabled:           true,
				AllowHintComments: false,
			},
			IntoOutfile: RuleConfig{Enabled: true},
			DangerousFunction: DangerousFunctionConfig{
				Enabled: true,
				DeniedFunctions: []string{
					"load_file",
					"into_outfile",
					"into_dumpfile",
					"sys_exec",
					"sys_eval",
					"sleep",
					"benchmark",
					"pg_sleep",
					"waitfor",
					"xp_cmdshell",
					"dbms_pipe",
				},
			},
		},
	}
}

// Validate rejects configurations the engine cannot run with. Construction
// fails loudly on a bad config instead of validating with surprise semantics
// later.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyLog, StrategyWarn, StrategyBlock:
	default:
		return errors.Errorf("strategy must be one of [log, warn, block], got %q", c.Strategy)
	}
	if c.Deduplication.Enabled {
		if c.Deduplication.CacheSize <= 0 {
			return errors.Errorf("deduplication.cacheSize must be > 0, got %d", c.Deduplication.CacheSize)
		}
		if c.Deduplication.TTLMillis <= 0 {
			return errors.Errorf("deduplication.ttlMs must be > 0, got %d", c.Deduplication.TTLMillis)
		}
	}
	if c.Rules.DeepPagination.Enabled && c.Rules.DeepPagination.MaxOffset <= 0 {
		return errors.Errorf("rules.deepPagination.maxOffset must be > 0, got %d", c.Rules.DeepPagination.MaxOffset)
	}
	if c.Rules.LargePageSize.Enabled && c.Rules.LargePageSize.MaxPageSize <= 0 {
		return errors.Errorf("rules.largePageSize.maxPageSize must be > 0, got %d", c.Rules.LargePageSize.MaxPageSize)
	}
	if c.Rules.DummyCondition.Enabled && len(c.Rules.DummyCondition.AllPatterns()) == 0 {
		return errors.New("rules.dummyCondition.patterns must not be empty when the rule is enabled")
	}
	if c.Rules.WhitelistFields.Enabled {
		if len(c.Rules.WhitelistFields.Fields) == 0 && len(c.Rules.WhitelistFields.ByTable) == 0 {
			return errors.New("rules.whitelistFields requires fields or byTable when enabled")
		}
	}
	if c.Rules.DangerousFunction.Enabled && len(c.Rules.DangerousFunction.DeniedFunctions) == 0 {
		return errors.New("rules.dangerousFunction.deniedFunctions must not be empty when the rule is enabled")
	}
	return nil
}

// LoadFromFile reads a YAML config file over the defaults, so partial files
// only override what they mention.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("loading config", "file", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", filename)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", filename)
	}
	return cfg, nil
}

// Parse unmarshals YAML bytes over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.Strategy = Strategy(strings.ToLower(string(cfg.Strategy)))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("parsed config", "enabled", cfg.Enabled, "strategy", cfg.Strategy)
	return cfg, nil
}
