package sqlparser

import "fmt"

// ParseError carries the statement alongside the parser failure so callers
// can decide between fail-fast and lenient handling with full context.
type ParseError struct {
	SQL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse sql %q: %v", truncate(e.SQL, 120), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
