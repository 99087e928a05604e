package checks

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// DeepPaginationCheck flags offsets past the configured threshold. LIMIT
// with a deep offset reads and discards every skipped row, so latency grows
// linearly with page number.
type DeepPaginationCheck struct {
	maxOffset int64
}

// NewDeepPaginationCheck creates the check.
func NewDeepPaginationCheck(cfg config.DeepPaginationConfig) *DeepPaginationCheck {
	return &DeepPaginationCheck{maxOffset: cfg.MaxOffset}
}

// Name returns the check name.
func (*DeepPaginationCheck) Name() string {
	return "deep-pagination"
}

// CheckSelect flags deep offsets on physically paginated SELECTs. It skips
// when the early-return signal is set: the missing condition has already
// been reported and the offset is a symptom of the same scan.
func (ch *DeepPaginationCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, ptype types.PaginationType, res *types.ValidationResult) {
	if ptype != types.PaginationPhysical || res.Signals.EarlyReturn {
		return
	}
	offset, ok := paginationOffset(c, stmt)
	if !ok || offset <= ch.maxOffset {
		return
	}
	res.Add(types.RiskMedium, ch.Name(),
		fmt.Sprintf("pagination offset %d exceeds the maximum of %d", offset, ch.maxOffset),
		"use keyset pagination (WHERE id > last_seen ORDER BY id) instead of deep offsets").
		WithDetail("offset", offset).
		WithDetail("maxOffset", ch.maxOffset).
		WithDetail("statementId", c.StatementID)
}

// paginationOffset reads the offset from the typed LIMIT clause when it is
// a literal, falling back to the raw text and then the caller's row bounds.
func paginationOffset(c *types.SQLContext, stmt *ast.SelectStmt) (int64, bool) {
	if stmt.Limit != nil {
		if off, ok := astutil.LimitOffset(stmt.Limit); ok {
			return off, true
		}
	}
	if off, ok := astutil.OffsetFromText(c.SQL); ok {
		return off, true
	}
	if !c.RowBounds.Unbounded() {
		return int64(c.RowBounds.Offset), true
	}
	return 0, false
}

var _ SelectChecker = (*DeepPaginationCheck)(nil)
