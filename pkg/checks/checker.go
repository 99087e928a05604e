// Package checks contains the rule checks the orchestrator dispatches, one
// file per check. A check implements the narrow interface for the statement
// kinds it cares about and is a no-op for everything else.
package checks

import (
	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/types"
)

// Checker is the base contract every check satisfies.
type Checker interface {
	// Name identifies the check in violations and logs.
	Name() string
}

// RawChecker inspects the raw SQL text before or instead of the AST.
type RawChecker interface {
	Checker
	CheckRaw(c *types.SQLContext, res *types.ValidationResult)
}

// StmtChecker inspects any parsed statement regardless of kind.
type StmtChecker interface {
	Checker
	CheckStmt(c *types.SQLContext, stmt ast.StmtNode, res *types.ValidationResult)
}

// SelectChecker inspects SELECT statements. The orchestrator classifies the
// pagination type once per call and hands it to every SELECT check.
type SelectChecker interface {
	Checker
	CheckSelect(c *types.SQLContext, stmt *ast.SelectStmt, ptype types.PaginationType, res *types.ValidationResult)
}

// UpdateChecker inspects UPDATE statements.
type UpdateChecker interface {
	Checker
	CheckUpdate(c *types.SQLContext, stmt *ast.UpdateStmt, res *types.ValidationResult)
}

// DeleteChecker inspects DELETE statements.
type DeleteChecker interface {
	Checker
	CheckDelete(c *types.SQLContext, stmt *ast.DeleteStmt, res *types.ValidationResult)
}

// InsertChecker inspects INSERT statements.
type InsertChecker interface {
	Checker
	CheckInsert(c *types.SQLContext, stmt *ast.InsertStmt, res *types.ValidationResult)
}
