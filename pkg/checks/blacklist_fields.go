package checks

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// BlacklistFieldsCheck flags SELECT statements whose WHERE references only
// low-cardinality flag columns (deleted, status). Such a condition matches
// most of the table, which is a full scan in practice.
type BlacklistFieldsCheck struct {
	fields []string
}

// NewBlacklistFieldsCheck creates the check from the configured field list.
func NewBlacklistFieldsCheck(cfg config.BlacklistFieldsConfig) *BlacklistFieldsCheck {
	return &BlacklistFieldsCheck{fields: cfg.Fields}
}

// Name returns the check name.
func (*BlacklistFieldsCheck) Name() string {
	return "blacklist-fields"
}

// CheckSelect flags blacklist-only WHERE clauses.
func (ch *BlacklistFieldsCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, _ types.PaginationType, res *types.ValidationResult) {
	cols := astutil.Columns(stmt.Where)
	if len(cols) == 0 || !onlyBlacklisted(cols, ch.fields) {
		return
	}
	res.Add(types.RiskHigh, ch.Name(),
		fmt.Sprintf("WHERE clause filters only on low-cardinality columns (%s)", strings.Join(dedupe(cols), ", ")),
		"add a selective condition; flag columns alone match most of the table").
		WithDetail("columns", dedupe(cols)).
		WithDetail("statementId", c.StatementID)
}

// onlyBlacklisted reports whether every referenced column matches the
// blacklist, wildcards included.
func onlyBlacklisted(cols, blacklist []string) bool {
	for _, col := range cols {
		if !astutil.MatchAnyPattern(blacklist, col) {
			return false
		}
	}
	return true
}

func dedupe(cols []string) []string {
	seen := make(map[string]struct{}, len(cols))
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

var _ SelectChecker = (*BlacklistFieldsCheck)(nil)
