package checks

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// NoPaginationCheck handles SELECTs with no pagination signal at all. The
// severity depends on how much the WHERE clause narrows the result set:
// nothing or a tautology is CRITICAL, only low-cardinality flag columns is
// HIGH, and in enforce-for-all mode any other unpaginated query gets a
// MEDIUM advisory. Unique-key point lookups and whitelisted call sites or
// tables are exempt.
type NoPaginationCheck struct {
	cfg           config.NoPaginationConfig
	blacklist     []string
	dummyPatterns []string
	uniqueKeys    map[string]struct{}
}

// NewNoPaginationCheck creates the check. The blacklist field list is
// shared with the blacklist-fields check and applies here even when that
// check is disabled.
func NewNoPaginationCheck(cfg config.NoPaginationConfig, blacklist, dummyPatterns []string) *NoPaginationCheck {
	uniqueKeys := map[string]struct{}{"id": {}}
	for _, k := range cfg.UniqueKeyFields {
		uniqueKeys[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	return &NoPaginationCheck{
		cfg:           cfg,
		blacklist:     blacklist,
		dummyPatterns: dummyPatterns,
		uniqueKeys:    uniqueKeys,
	}
}

// Name returns the check name.
func (*NoPaginationCheck) Name() string {
	return "no-pagination"
}

// CheckSelect applies the severity ladder to unpaginated SELECTs.
func (ch *NoPaginationCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, ptype types.PaginationType, res *types.ValidationResult) {
	if ptype != types.PaginationNone {
		return
	}
	// Scalar selects like SELECT 1 have no table to scan.
	if stmt.From == nil {
		return
	}
	if ch.exempt(c, stmt) {
		return
	}

	where := stmt.Where
	switch {
	case where == nil || astutil.IsTriviallyTrue(where, ch.dummyPatterns):
		res.Add(types.RiskCritical, ch.Name(),
			"SELECT has neither pagination nor an effective WHERE clause; it returns the whole table",
			"add a WHERE clause and a LIMIT, or page the query").
			WithDetail("statementId", c.StatementID)
	case ch.blacklistOnly(where):
		res.Add(types.RiskHigh, ch.Name(),
			fmt.Sprintf("unpaginated SELECT filters only on low-cardinality columns (%s)", strings.Join(dedupe(astutil.Columns(where)), ", ")),
			"add a selective condition or a LIMIT; flag columns alone match most of the table").
			WithDetail("columns", dedupe(astutil.Columns(where))).
			WithDetail("statementId", c.StatementID)
	case ch.cfg.EnforceForAllQueries:
		res.Add(types.RiskMedium, ch.Name(),
			"SELECT has no pagination; result size depends entirely on the data",
			"add a LIMIT or page the query if the result set can grow").
			WithDetail("statementId", c.StatementID)
	}
}

func (ch *NoPaginationCheck) exempt(c *types.SQLContext, stmt *ast.SelectStmt) bool {
	if c.StatementID != "" && matchesIDWhitelist(ch.cfg.WhitelistStatementIDs, c.StatementID) {
		return true
	}
	for _, table := range astutil.TableNames(stmt) {
		if astutil.MatchAnyPattern(ch.cfg.WhitelistTables, table) {
			return true
		}
	}
	if stmt.Where != nil && astutil.HasEqualityOn(stmt.Where, ch.uniqueKeys) {
		return true
	}
	return false
}

func (ch *NoPaginationCheck) blacklistOnly(where ast.ExprNode) bool {
	cols := astutil.Columns(where)
	return len(cols) > 0 && onlyBlacklisted(cols, ch.blacklist)
}

// matchesIDWhitelist matches statement ids against patterns that may carry
// a trailing '*' prefix wildcard or a leading '*.' namespace wildcard, so
// `*.getById` matches `UserMapper.getById` but not `UserMapper.getByIdAndName`.
func matchesIDWhitelist(patterns []string, id string) bool {
	lower := strings.ToLower(id)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "*.") {
			if strings.HasSuffix(lower, p[1:]) {
				return true
			}
			continue
		}
		if astutil.MatchPattern(p, lower) {
			return true
		}
	}
	return false
}

var _ SelectChecker = (*NoPaginationCheck)(nil)
