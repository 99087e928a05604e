package checks

import (
	"github.com/footstone/sqlguard/pkg/pagination"
	"github.com/footstone/sqlguard/pkg/types"
)

// LogicalPaginationCheck flags the out-of-memory trap: a pagination
// parameter was supplied but nothing limits the rows at the database, so
// the driver materializes the full result set before trimming it.
type LogicalPaginationCheck struct{}

// NewLogicalPaginationCheck creates the check.
func NewLogicalPaginationCheck() *LogicalPaginationCheck {
	return &LogicalPaginationCheck{}
}

// Name returns the check name.
func (*LogicalPaginationCheck) Name() string {
	return "logical-pagination"
}

// CheckRaw classifies the context; classification needs only the raw text
// and the caller-supplied pagination signals.
func (ch *LogicalPaginationCheck) CheckRaw(c *types.SQLContext, res *types.ValidationResult) {
	if pagination.Classify(c) != types.PaginationLogical {
		return
	}
	v := res.Add(types.RiskCritical, ch.Name(),
		"pagination parameter present but the SQL has no row limit; the full result set is loaded into memory",
		"add LIMIT/OFFSET to the SQL or register a pagination plugin that rewrites it").
		WithDetail("statementId", c.StatementID)
	if !c.RowBounds.Unbounded() {
		v.WithDetail("offset", c.RowBounds.Offset).WithDetail("limit", c.RowBounds.Limit)
	}
}

var _ RawChecker = (*LogicalPaginationCheck)(nil)
