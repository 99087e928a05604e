// Package validator is the engine facade: it ties the dedup cache, the
// parser, and check dispatch together behind one Validate call.
package validator

import (
	"github.com/footstone/sqlguard/pkg/checks"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/logger"
	"github.com/footstone/sqlguard/pkg/sqlparser"
	"github.com/footstone/sqlguard/pkg/types"
)

// Validator validates SQL contexts against the configured checks. It is
// immutable after construction and safe for concurrent use; per-call state
// lives in the context, the result, and the caller's session.
type Validator struct {
	store  *config.Store
	logger logger.Interface
}

// Option customizes a Validator.
type Option func(*Validator)

// WithLogger replaces the default logger.
func WithLogger(l logger.Interface) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New creates a Validator reading config snapshots from store. The store's
// current snapshot must already be validated; a nil store runs on defaults.
func New(store *config.Store, opts ...Option) *Validator {
	if store == nil {
		store = config.NewStore(nil)
	}
	v := &Validator{
		store:  store,
		logger: logger.New(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Config returns the active configuration snapshot.
func (v *Validator) Config() *config.Config {
	return v.store.Current()
}

// Validate runs every enabled check against the context and returns the
// aggregated result. The statement is parsed at most once: a pre-attached
// AST is reused, and one parsed here is attached for any later consumer.
// Parse failures follow the configured policy; with failFast off the
// statement passes rather than blocking execution on SQL the parser cannot
// handle.
func (v *Validator) Validate(c *types.SQLContext) (*types.ValidationResult, error) {
	cfg := v.store.Current()
	if !cfg.Enabled {
		return types.Pass(), nil
	}

	if c.Statement() == nil {
		stmt, err := sqlparser.Parse(c.SQL)
		if err != nil {
			if cfg.FailFast {
				return nil, err
			}
			v.logger.Warn("sql parse failed, passing statement",
				"statementId", c.StatementID,
				"error", err)
			return types.Pass(), nil
		}
		if err := c.AttachStatement(stmt); err != nil {
			return nil, err
		}
	}

	res := types.NewResult()
	v.runChecks(c, res, checks.All(cfg))

	if !res.Passed() {
		v.logger.Debug("validation found violations",
			"statementId", c.StatementID,
			"violations", len(res.Violations),
			"risk", res.RiskLevel().String())
	}
	return res, nil
}
