// Package astutil provides the extraction helpers the checks share: clause
// access across statement kinds, column collection, literal decoding, and
// clause-to-text rendering.
package astutil

import (
	"strings"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pingcap/tidb/parser/format"
	"github.com/pingcap/tidb/parser/opcode"
)

// Where returns the WHERE expression of a SELECT, UPDATE, or DELETE, or nil.
func Where(stmt ast.StmtNode) ast.ExprNode {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return s.Where
	case *ast.UpdateStmt:
		return s.Where
	case *ast.DeleteStmt:
		return s.Where
	}
	return nil
}

// Limit returns the LIMIT clause of a statement, or nil.
func Limit(stmt ast.StmtNode) *ast.Limit {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return s.Limit
	case *ast.UpdateStmt:
		return s.Limit
	case *ast.DeleteStmt:
		return s.Limit
	case *ast.SetOprStmt:
		return s.Limit
	}
	return nil
}

// OrderBy returns the ORDER BY clause of a statement, or nil.
func OrderBy(stmt ast.StmtNode) *ast.OrderByClause {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return s.OrderBy
	case *ast.UpdateStmt:
		return s.Order
	case *ast.DeleteStmt:
		return s.Order
	case *ast.SetOprStmt:
		return s.OrderBy
	}
	return nil
}

// TableNames collects every base table referenced by the statement, in
// source order, lowercased.
func TableNames(stmt ast.StmtNode) []string {
	var tables []string
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		if s.From != nil {
			collectJoin(s.From.TableRefs, &tables)
		}
	case *ast.UpdateStmt:
		if s.TableRefs != nil {
			collectJoin(s.TableRefs.TableRefs, &tables)
		}
	case *ast.DeleteStmt:
		if s.TableRefs != nil {
			collectJoin(s.TableRefs.TableRefs, &tables)
		}
	case *ast.InsertStmt:
		if s.Table != nil {
			collectJoin(s.Table.TableRefs, &tables)
		}
	}
	return tables
}

func collectJoin(join *ast.Join, tables *[]string) {
	if join == nil {
		return
	}
	collectResultSet(join.Left, tables)
	collectResultSet(join.Right, tables)
}

func collectResultSet(r ast.ResultSetNode, tables *[]string) {
	switch n := r.(type) {
	case *ast.TableSource:
		if tn, ok := n.Source.(*ast.TableName); ok {
			*tables = append(*tables, tn.Name.L)
		} else {
			collectResultSet(n.Source, tables)
		}
	case *ast.Join:
		collectJoin(n, tables)
	case *ast.SelectStmt:
		*tables = append(*tables, TableNames(n)...)
	}
}

// ExprText renders an expression back to SQL text.
func ExprText(expr ast.ExprNode) string {
	if expr == nil {
		return ""
	}
	var sb strings.Builder
	ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(ctx); err != nil {
		return ""
	}
	return sb.String()
}

type columnCollector struct {
	cols []string
}

func (c *columnCollector) Enter(n ast.Node) (ast.Node, bool) {
	if col, ok := n.(*ast.ColumnNameExpr); ok {
		c.cols = append(c.cols, col.Name.Name.L)
	}
	return n, false
}

func (c *columnCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// Columns returns every column referenced in expr, lowercased, in source
// order with duplicates kept.
func Columns(expr ast.ExprNode) []string {
	if expr == nil {
		return nil
	}
	c := &columnCollector{}
	expr.Accept(c)
	return c.cols
}

// IsAlwaysTrue reports whether expr is a tautology on its own: a TRUE
// literal, a nonzero numeric literal, or an equality of two identical
// literals (1=1, 'a'='a').
func IsAlwaysTrue(expr ast.ExprNode) bool {
	switch e := unwrapParens(expr).(type) {
	case ast.ValueExpr:
		if v, ok := numericValue(e); ok {
			return v != 0
		}
	case *ast.BinaryOperationExpr:
		if e.Op != opcode.EQ {
			return false
		}
		l, lok := unwrapParens(e.L).(ast.ValueExpr)
		r, rok := unwrapParens(e.R).(ast.ValueExpr)
		if lok && rok {
			return ExprText(l) == ExprText(r)
		}
	}
	return false
}

// ContainsAlwaysTrue reports whether a tautology appears anywhere in the
// expression's OR spine or as the whole expression. AND branches do not
// count: `a=1 AND 1=1` still filters.
func ContainsAlwaysTrue(expr ast.ExprNode) bool {
	e := unwrapParens(expr)
	if IsAlwaysTrue(e) {
		return true
	}
	if bin, ok := e.(*ast.BinaryOperationExpr); ok && bin.Op == opcode.LogicOr {
		return ContainsAlwaysTrue(bin.L) || ContainsAlwaysTrue(bin.R)
	}
	return false
}

func unwrapParens(expr ast.ExprNode) ast.ExprNode {
	for {
		p, ok := expr.(*ast.ParenthesesExpr)
		if !ok {
			return expr
		}
		expr = p.Expr
	}
}

func numericValue(v ast.ValueExpr) (int64, bool) {
	switch x := v.GetValue().(type) {
	case int64:
		return x, true
	case uint64:
		return int64(x), true
	}
	return 0, false
}

// IntValue extracts an integer from a LIMIT/OFFSET expression. Bind markers
// report ok=false since their value is unknown at validation time.
func IntValue(expr ast.ExprNode) (int64, bool) {
	if expr == nil {
		return 0, false
	}
	if v, ok := unwrapParens(expr).(ast.ValueExpr); ok {
		return numericValue(v)
	}
	return 0, false
}

// LimitCount returns the row count bound of a LIMIT clause.
func LimitCount(l *ast.Limit) (int64, bool) {
	if l == nil {
		return 0, false
	}
	return IntValue(l.Count)
}

// LimitOffset returns the offset of a LIMIT clause; a missing offset is 0.
func LimitOffset(l *ast.Limit) (int64, bool) {
	if l == nil {
		return 0, false
	}
	if l.Offset == nil {
		return 0, true
	}
	return IntValue(l.Offset)
}

// HasEqualityOn reports whether the WHERE tree contains `col = <literal or
// bind marker>` for any of the given lowercase column names, reachable
// through AND branches only. An equality buried under OR does not pin the
// result set down.
func HasEqualityOn(expr ast.ExprNode, columns map[string]struct{}) bool {
	e := unwrapParens(expr)
	bin, ok := e.(*ast.BinaryOperationExpr)
	if !ok {
		return false
	}
	switch bin.Op {
	case opcode.LogicAnd:
		return HasEqualityOn(bin.L, columns) || HasEqualityOn(bin.R, columns)
	case opcode.EQ:
		return isColumnToScalar(bin.L, bin.R, columns) || isColumnToScalar(bin.R, bin.L, columns)
	}
	return false
}

func isColumnToScalar(a, b ast.ExprNode, columns map[string]struct{}) bool {
	col, ok := unwrapParens(a).(*ast.ColumnNameExpr)
	if !ok {
		return false
	}
	if _, listed := columns[col.Name.Name.L]; !listed {
		return false
	}
	switch unwrapParens(b).(type) {
	case ast.ValueExpr, ast.ParamMarkerExpr:
		return true
	}
	return false
}

type funcCollector struct {
	names []string
}

func (c *funcCollector) Enter(n ast.Node) (ast.Node, bool) {
	if fn, ok := n.(*ast.FuncCallExpr); ok {
		c.names = append(c.names, fn.FnName.L)
	}
	return n, false
}

func (c *funcCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}

// FunctionCalls returns every function name invoked anywhere in the
// statement, lowercased.
func FunctionCalls(stmt ast.StmtNode) []string {
	c := &funcCollector{}
	stmt.Accept(c)
	return c.names
}
