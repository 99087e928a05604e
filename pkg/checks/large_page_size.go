package checks

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// LargePageSizeCheck flags page sizes past the configured threshold. A huge
// page is physical pagination in name only.
type LargePageSizeCheck struct {
	maxPageSize int64
}

// NewLargePageSizeCheck creates the check.
func NewLargePageSizeCheck(cfg config.LargePageSizeConfig) *LargePageSizeCheck {
	return &LargePageSizeCheck{maxPageSize: cfg.MaxPageSize}
}

// Name returns the check name.
func (*LargePageSizeCheck) Name() string {
	return "large-page-size"
}

// CheckSelect flags oversized pages on physically paginated SELECTs,
// skipping when the early-return signal is set.
func (ch *LargePageSizeCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, ptype types.PaginationType, res *types.ValidationResult) {
	if ptype != types.PaginationPhysical || res.Signals.EarlyReturn {
		return
	}
	size, ok := pageSize(c, stmt)
	if !ok || size <= ch.maxPageSize {
		return
	}
	res.Add(types.RiskMedium, ch.Name(),
		fmt.Sprintf("page size %d exceeds the maximum of %d", size, ch.maxPageSize),
		"reduce the page size; fetch large exports in keyset-paginated batches").
		WithDetail("pageSize", size).
		WithDetail("maxPageSize", ch.maxPageSize).
		WithDetail("statementId", c.StatementID)
}

// pageSize reads the row count from the typed LIMIT clause when it is a
// literal, falling back to the raw text (TOP, FETCH FIRST) and then the
// caller's row bounds.
func pageSize(c *types.SQLContext, stmt *ast.SelectStmt) (int64, bool) {
	if stmt.Limit != nil {
		if n, ok := astutil.LimitCount(stmt.Limit); ok {
			return n, true
		}
	}
	if n, ok := astutil.PageSizeFromText(c.SQL); ok {
		return n, true
	}
	if !c.RowBounds.Unbounded() {
		return int64(c.RowBounds.Limit), true
	}
	return 0, false
}

var _ SelectChecker = (*LargePageSizeCheck)(nil)
