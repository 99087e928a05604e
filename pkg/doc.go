// Package pkg provides SQL safety validation for Go applications.
//
// sqlguard inspects SQL statements before execution and flags operations
// likely to cause data loss, performance collapse, or injection risk:
// unconditioned UPDATE/DELETE, dummy WHERE conditions, logical (in-memory)
// pagination, deep offsets, oversized pages, multi-statement payloads, and
// calls to dangerous functions.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - validator: the engine facade, orchestrator, and per-session dedup cache
//     (recommended starting point)
//   - checks: the individual rule checks, one file per check
//   - pagination: pagination type classification (NONE / PHYSICAL / LOGICAL)
//   - astutil: shared AST extraction helpers (WHERE, columns, LIMIT bounds,
//     trivially-true detection, wildcard matching)
//   - sqlparser: the TiDB parser facade with dialect normalization
//   - types: core data structures (contexts, violations, results)
//   - config: configuration tree, YAML loading, hot-reloadable snapshot store
//   - logger: logging abstraction layer
//
// # Getting Started
//
// For most use cases, start with the validator package:
//
//	import (
//	    "github.com/footstone/sqlguard/pkg/types"
//	    "github.com/footstone/sqlguard/pkg/validator"
//	)
//
//	func main() {
//	    v := validator.New(nil)
//	    res, err := v.Validate(&types.SQLContext{SQL: "DELETE FROM users"})
//	    // Process res.Violations...
//	}
//
// Runtime interceptors create one validator.Session per connection or
// worker; the session's recency cache skips statements validated within the
// configured TTL window.
//
// # Thread Safety
//
// The Validator and its config snapshots are immutable after construction
// and safe for concurrent use. Sessions are confined to one goroutine each.
//
// # Error Handling
//
// Violations are data, not errors: Validate returns a non-passing result
// for findings and reserves its error return for parse failures under the
// fail-fast policy and for misuse of the context.
package pkg
