// Package types holds the data model shared by the validation engine:
// statement contexts, violations, results, and the pagination taxonomy.
package types

import (
	"math"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/pkg/errors"
)

// StatementKind is the SQL command type of a statement context.
type StatementKind int

const (
	KindUnknown StatementKind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the SQL keyword for the kind.
func (k StatementKind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	}
	return "UNKNOWN"
}

// ExecutionLayer tags where a statement context was captured.
type ExecutionLayer string

const (
	// LayerORM marks contexts built by an ORM/mapper interceptor.
	LayerORM ExecutionLayer = "orm"
	// LayerDriver marks contexts built by a driver/connection-pool proxy.
	LayerDriver ExecutionLayer = "driver"
	// LayerScanner marks contexts built by the static scanner CLI.
	LayerScanner ExecutionLayer = "scanner"
)

// RowBounds is an application-level pagination parameter: skip Offset rows,
// return at most Limit rows. ORM collaborators construct it from their native
// pagination arguments.
type RowBounds struct {
	Offset int
	Limit  int
}

// Unbounded reports whether the bounds place no real limit on the result
// set. ORMs commonly pass a default of (0, MaxInt) meaning "no pagination";
// such bounds must be treated as absent so they never classify as LOGICAL.
func (rb *RowBounds) Unbounded() bool {
	if rb == nil {
		return true
	}
	return rb.Limit <= 0 || rb.Limit == math.MaxInt32 || rb.Limit == math.MaxInt64
}

// Page marks a bound parameter value as an application-level page request.
// Runtime collaborators that receive a page object put one of these into
// SQLContext.Params so the pagination analyzer can see it.
type Page struct {
	Num  int
	Size int
}

// PaginationType classifies how a statement limits its result set.
type PaginationType int

const (
	// PaginationNone means no pagination signal at all.
	PaginationNone PaginationType = iota
	// PaginationPhysical means the database limits rows (LIMIT, TOP,
	// ROWNUM, FETCH FIRST), or a registered plugin will rewrite the SQL
	// to do so.
	PaginationPhysical
	// PaginationLogical means a pagination parameter exists with no
	// database-level limiting: the full result set is materialized in
	// memory before trimming.
	PaginationLogical
)

// String returns the classification name.
func (t PaginationType) String() string {
	switch t {
	case PaginationPhysical:
		return "PHYSICAL"
	case PaginationLogical:
		return "LOGICAL"
	}
	return "NONE"
}

// SQLContext describes one candidate SQL operation. Collaborators
// (interceptors, proxies, the scanner CLI) construct one per execution
// attempt; the engine consumes it read-only apart from attaching the parsed
// statement exactly once.
type SQLContext struct {
	// SQL is the raw statement text. Required.
	SQL string
	// Kind is the SQL command type. Required.
	Kind StatementKind
	// StatementID identifies the call site (mapper id, file:line, ...) for
	// logging and whitelisting. Optional.
	StatementID string
	// Layer tags the capturing collaborator. Optional.
	Layer ExecutionLayer
	// Params holds bound parameters by name. Optional.
	Params map[string]any
	// RowBounds is the pagination parameter, nil when absent.
	RowBounds *RowBounds
	// PluginPresent is set by runtime collaborators when a pagination
	// rewriting plugin is registered on the executing session.
	PluginPresent bool

	stmt ast.StmtNode
}

// AttachStatement sets the parsed statement. It may be called at most once;
// every check observes the same AST instance.
func (c *SQLContext) AttachStatement(stmt ast.StmtNode) error {
	if c.stmt != nil {
		return errors.New("statement already attached")
	}
	c.stmt = stmt
	return nil
}

// Statement returns the parsed statement, nil if not yet attached.
func (c *SQLContext) Statement() ast.StmtNode {
	return c.stmt
}

// HasPageParam reports whether any pagination parameter accompanies the
// statement: non-default row bounds, or a Page marker among the bound
// parameters.
func (c *SQLContext) HasPageParam() bool {
	if !c.RowBounds.Unbounded() {
		return true
	}
	for _, v := range c.Params {
		switch v.(type) {
		case Page, *Page:
			return true
		}
	}
	return false
}
