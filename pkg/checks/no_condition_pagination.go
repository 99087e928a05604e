package checks

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/types"
)

// NoConditionPaginationCheck flags a physically paginated SELECT with no
// effective WHERE clause. Paging through an unfiltered table scans it page
// by page; the root cause is the missing condition, so this check sets the
// early-return signal and the magnitude checks on the same LIMIT clause
// stay quiet.
type NoConditionPaginationCheck struct {
	dummyPatterns []string
}

// NewNoConditionPaginationCheck creates the check.
func NewNoConditionPaginationCheck(dummyPatterns []string) *NoConditionPaginationCheck {
	return &NoConditionPaginationCheck{dummyPatterns: dummyPatterns}
}

// Name returns the check name.
func (*NoConditionPaginationCheck) Name() string {
	return "no-condition-pagination"
}

// CheckSelect flags unconditioned physical pagination.
func (ch *NoConditionPaginationCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, ptype types.PaginationType, res *types.ValidationResult) {
	if ptype != types.PaginationPhysical {
		return
	}
	if stmt.Where != nil && !astutil.IsTriviallyTrue(stmt.Where, ch.dummyPatterns) {
		return
	}
	res.Signals.EarlyReturn = true
	res.Add(types.RiskCritical, ch.Name(),
		"paginated SELECT has no effective WHERE clause; every page scans the whole table",
		"add a WHERE clause so pagination walks a filtered, indexed range").
		WithDetail("statementId", c.StatementID)
}

var _ SelectChecker = (*NoConditionPaginationCheck)(nil)
