package checks

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// WhitelistFieldsCheck requires the WHERE clause to reference at least one
// mandatory column, typically a tenant or shard key. Field lists may be
// global or per table.
type WhitelistFieldsCheck struct {
	cfg config.WhitelistFieldsConfig
}

// NewWhitelistFieldsCheck creates the check.
func NewWhitelistFieldsCheck(cfg config.WhitelistFieldsConfig) *WhitelistFieldsCheck {
	return &WhitelistFieldsCheck{cfg: cfg}
}

// Name returns the check name.
func (*WhitelistFieldsCheck) Name() string {
	return "whitelist-fields"
}

// CheckSelect enforces required fields on SELECT.
func (ch *WhitelistFieldsCheck) CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, _ types.PaginationType, res *types.ValidationResult) {
	ch.check(c, stmt, stmt.Where, res)
}

// CheckUpdate enforces required fields on UPDATE.
func (ch *WhitelistFieldsCheck) CheckUpdate(c *types.SQLContext, stmt *ast.UpdateStmt, res *types.ValidationResult) {
	ch.check(c, stmt, stmt.Where, res)
}

// CheckDelete enforces required fields on DELETE.
func (ch *WhitelistFieldsCheck) CheckDelete(c *types.SQLContext, stmt *ast.DeleteStmt, res *types.ValidationResult) {
	ch.check(c, stmt, stmt.Where, res)
}

func (ch *WhitelistFieldsCheck) check(c *types.SQLContext, stmt ast.StmtNode, where ast.ExprNode, res *types.ValidationResult) {
	required, table := ch.requiredFields(stmt)
	if len(required) == 0 {
		return
	}
	cols := astutil.Columns(where)
	for _, col := range cols {
		if astutil.MatchAnyPattern(required, col) {
			return
		}
	}
	res.Add(types.RiskHigh, ch.Name(),
		fmt.Sprintf("WHERE clause is missing all required fields (%s)", strings.Join(required, ", ")),
		"filter on one of the required fields, typically the tenant or shard key").
		WithDetail("requiredFields", required).
		WithDetail("table", table).
		WithDetail("statementId", c.StatementID)
}

// requiredFields resolves the field list for the statement's first table.
// Per-table lists win; the global list applies to unknown tables only when
// configured to.
func (ch *WhitelistFieldsCheck) requiredFields(stmt ast.StmtNode) ([]string, string) {
	tables := astutil.TableNames(stmt)
	table := ""
	if len(tables) > 0 {
		table = tables[0]
	}
	if fields, ok := ch.cfg.ByTable[table]; ok {
		return fields, table
	}
	if len(ch.cfg.ByTable) == 0 || ch.cfg.EnforceForUnknownTables {
		return ch.cfg.Fields, table
	}
	return nil, table
}

var (
	_ SelectChecker = (*WhitelistFieldsCheck)(nil)
	_ UpdateChecker = (*WhitelistFieldsCheck)(nil)
	_ DeleteChecker = (*WhitelistFieldsCheck)(nil)
)
