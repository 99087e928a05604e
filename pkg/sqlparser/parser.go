// Package sqlparser wraps the TiDB SQL parser behind a small, goroutine-safe
// facade. The underlying parser keeps internal state, so instances are pooled
// rather than shared.
package sqlparser

import (
	"sync"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	_ "github.com/pingcap/tidb/parser/test_driver"
	"github.com/pkg/errors"

	"github.com/footstone/sqlguard/pkg/types"
)

var pool = sync.Pool{
	New: func() any {
		return parser.New()
	},
}

// Parse converts a SQL string into the AST of its first statement. When the
// statement uses pagination syntax MySQL lacks (TOP, FETCH FIRST, ROWNUM),
// a normalized rendering is parsed instead so checks still get a typed tree;
// callers keep the raw text for anything lexical.
func Parse(sql string) (ast.StmtNode, error) {
	stmts, err := ParseAll(sql)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, &ParseError{SQL: sql, Err: errors.New("no statement found")}
	}
	return stmts[0], nil
}

// ParseAll parses every statement in sql.
func ParseAll(sql string) ([]ast.StmtNode, error) {
	p := pool.Get().(*parser.Parser)
	defer pool.Put(p)

	stmts, _, err := p.Parse(sql, "", "")
	if err == nil {
		return stmts, nil
	}

	normalized, changed := NormalizeDialect(sql)
	if !changed {
		return nil, &ParseError{SQL: sql, Err: err}
	}
	stmts, _, nerr := p.Parse(normalized, "", "")
	if nerr != nil {
		// Report the original failure; the fallback is best effort.
		return nil, &ParseError{SQL: sql, Err: err}
	}
	return stmts, nil
}

// KindOf maps a parsed statement to its coarse kind.
func KindOf(stmt ast.StmtNode) types.StatementKind {
	switch stmt.(type) {
	case *ast.SelectStmt, *ast.SetOprStmt:
		return types.KindSelect
	case *ast.InsertStmt:
		return types.KindInsert
	case *ast.UpdateStmt:
		return types.KindUpdate
	case *ast.DeleteStmt:
		return types.KindDelete
	default:
		return types.KindUnknown
	}
}
