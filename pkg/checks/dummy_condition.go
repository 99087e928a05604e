package checks

import (
	"fmt"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// DummyConditionCheck flags a WHERE clause that is present but always true
// (1=1, TRUE, 'a'='a'). Such clauses usually come from careless dynamic SQL
// assembly and disguise an unconditioned statement as a conditioned one.
type DummyConditionCheck struct {
	patterns []string
}

// NewDummyConditionCheck creates the check from the configured patterns.
func NewDummyConditionCheck(cfg config.DummyConditionConfig) *DummyConditionCheck {
	return &DummyConditionCheck{patterns: cfg.AllPatterns()}
}

// Name returns the check name.
func (*DummyConditionCheck) Name() string {
	return "dummy-condition"
}

// CheckSelect flags always-true WHERE clauses on SELECT.
func (ch *DummyConditionCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, _ types.PaginationType, res *types.ValidationResult) {
	ch.check(c, stmt.Where, res)
}

// CheckUpdate flags always-true WHERE clauses on UPDATE.
func (ch *DummyConditionCheck) CheckUpdate(c *types.SQLContext, stmt *ast.UpdateStmt, res *types.ValidationResult) {
	ch.check(c, stmt.Where, res)
}

// CheckDelete flags always-true WHERE clauses on DELETE.
func (ch *DummyConditionCheck) CheckDelete(c *types.SQLContext, stmt *ast.DeleteStmt, res *types.ValidationResult) {
	ch.check(c, stmt.Where, res)
}

func (ch *DummyConditionCheck) check(c *types.SQLContext, where ast.ExprNode, res *types.ValidationResult) {
	if where == nil || !astutil.IsTriviallyTrue(where, ch.patterns) {
		return
	}
	res.Add(types.RiskHigh, ch.Name(),
		fmt.Sprintf("WHERE clause %q is always true and filters nothing", astutil.ExprText(where)),
		"replace the placeholder condition with one that actually restricts rows").
		WithDetail("condition", astutil.ExprText(where)).
		WithDetail("statementId", c.StatementID)
}

var (
	_ SelectChecker = (*DummyConditionCheck)(nil)
	_ UpdateChecker = (*DummyConditionCheck)(nil)
	_ DeleteChecker = (*DummyConditionCheck)(nil)
)
