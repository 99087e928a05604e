package checks

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/types"
)

// MissingOrderByCheck flags paginated SELECTs without an ORDER BY. Without
// a stable order the database may return pages that overlap or skip rows
// between requests.
type MissingOrderByCheck struct{}

// NewMissingOrderByCheck creates the check.
func NewMissingOrderByCheck() *MissingOrderByCheck {
	return &MissingOrderByCheck{}
}

// Name returns the check name.
func (*MissingOrderByCheck) Name() string {
	return "missing-order-by"
}

// CheckSelect flags physically paginated SELECTs lacking ORDER BY.
func (ch *MissingOrderByCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, ptype types.PaginationType, res *types.ValidationResult) {
	if ptype != types.PaginationPhysical || stmt.OrderBy != nil {
		return
	}
	res.Add(types.RiskLow, ch.Name(),
		"paginated SELECT has no ORDER BY; page boundaries are not deterministic",
		"order by a unique column so consecutive pages neither overlap nor skip rows").
		WithDetail("statementId", c.StatementID)
}

var _ SelectChecker = (*MissingOrderByCheck)(nil)
