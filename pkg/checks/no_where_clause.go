package checks

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/types"
)

// NoWhereClauseCheck flags UPDATE and DELETE statements whose WHERE clause
// is absent or trivially true: a full-table write.
type NoWhereClauseCheck struct {
	dummyPatterns []string
}

// NewNoWhereClauseCheck creates the check; dummyPatterns is the same list
// the dummy-condition check uses.
func NewNoWhereClauseCheck(dummyPatterns []string) *NoWhereClauseCheck {
	return &NoWhereClauseCheck{dummyPatterns: dummyPatterns}
}

// Name returns the check name.
func (*NoWhereClauseCheck) Name() string {
	return "no-where-clause"
}

// CheckUpdate flags unconditioned UPDATE statements.
func (ch *NoWhereClauseCheck) CheckUpdate(c *types.SQLContext, stmt *ast.UpdateStmt, res *types.ValidationResult) {
	ch.check(c, stmt.Where, "UPDATE", res)
}

// CheckDelete flags unconditioned DELETE statements.
func (ch *NoWhereClauseCheck) CheckDelete(c *types.SQLContext, stmt *ast.DeleteStmt, res *types.ValidationResult) {
	ch.check(c, stmt.Where, "DELETE", res)
}

func (ch *NoWhereClauseCheck) check(c *types.SQLContext, where ast.ExprNode, verb string, res *types.ValidationResult) {
	if where != nil && !astutil.IsTriviallyTrue(where, ch.dummyPatterns) {
		return
	}
	msg := fmt.Sprintf("%s without an effective WHERE clause modifies the whole table", verb)
	res.Add(types.RiskCritical, ch.Name(), msg,
		"add a WHERE clause that selects exactly the rows to modify").
		WithDetail("statementId", c.StatementID)
}

var (
	_ UpdateChecker = (*NoWhereClauseCheck)(nil)
	_ DeleteChecker = (*NoWhereClauseCheck)(nil)
)
