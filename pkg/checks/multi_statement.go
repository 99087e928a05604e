package checks

import (
	"github.com/footstone/sqlguard/pkg/types"
)

// MultiStatementCheck flags SQL text carrying more than one statement, the
// classic stacked-injection shape ("...; DROP TABLE users").
type MultiStatementCheck struct{}

// NewMultiStatementCheck creates the check.
func NewMultiStatementCheck() *MultiStatementCheck {
	return &MultiStatementCheck{}
}

// Name returns the check name.
func (*MultiStatementCheck) Name() string {
	return "multi-statement"
}

// CheckRaw scans for statement separators outside quoted strings.
func (ch *MultiStatementCheck) CheckRaw(c *types.SQLContext, res *types.ValidationResult) {
	if countStatements(c.SQL) <= 1 {
		return
	}
	res.Add(types.RiskCritical, ch.Name(),
		"multiple SQL statements in a single command",
		"execute one statement per command; stacked statements are a SQL injection vector").
		WithDetail("statementId", c.StatementID)
}

// countStatements counts semicolon-separated statements, ignoring
// separators inside single-quoted, double-quoted, or backquoted text.
// A trailing semicolon does not count as a second statement.
func countStatements(sql string) int {
	count := 0
	segment := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if quote != 0 {
			if ch == '\\' && quote != '`' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
			segment++
		case ';':
			if segment > 0 {
				count++
				segment = 0
			}
		default:
			if !isSpace(ch) {
				segment++
			}
		}
	}
	if segment > 0 {
		count++
	}
	return count
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

var _ RawChecker = (*MultiStatementCheck)(nil)
