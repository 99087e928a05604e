package validator

import (
	"github.com/pingcap/tidb/parser/ast"
	"github.com/pkg/errors"

	"github.com/footstone/sqlguard/pkg/checks"
	"github.com/footstone/sqlguard/pkg/pagination"
	"github.com/footstone/sqlguard/pkg/types"
)

// runChecks dispatches every enabled check against the parsed statement,
// aggregating violations into res. Each check runs exactly once per
// interface it implements for the statement's kind, in registry order, and
// a panicking check is contained so the remaining checks still run.
func (v *Validator) runChecks(c *types.SQLContext, res *types.ValidationResult, active []checks.Checker) {
	stmt := c.Statement()
	ptype := pagination.Classify(c)

	for _, check := range active {
		v.runOne(c, stmt, ptype, res, check)
	}
}

func (v *Validator) runOne(c *types.SQLContext, stmt ast.StmtNode, ptype types.PaginationType, res *types.ValidationResult, check checks.Checker) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			err, ok := panicErr.(error)
			if !ok {
				err = errors.Errorf("%v", panicErr)
			}
			v.logger.Error("check PANIC RECOVER",
				"check", check.Name(),
				"statementId", c.StatementID,
				"error", err)
		}
	}()

	if rc, ok := check.(checks.RawChecker); ok {
		rc.CheckRaw(c, res)
	}
	if stmt == nil {
		return
	}
	if sc, ok := check.(checks.StmtChecker); ok {
		sc.CheckStmt(c, stmt, res)
	}
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		if sc, ok := check.(checks.SelectChecker); ok {
			sc.CheckSelect(c, s, ptype, res)
		}
	case *ast.UpdateStmt:
		if uc, ok := check.(checks.UpdateChecker); ok {
			uc.CheckUpdate(c, s, res)
		}
	case *ast.DeleteStmt:
		if dc, ok := check.(checks.DeleteChecker); ok {
			dc.CheckDelete(c, s, res)
		}
	case *ast.InsertStmt:
		if ic, ok := check.(checks.InsertChecker); ok {
			ic.CheckInsert(c, s, res)
		}
	}
}
