package checks

import (
	"strings"

	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// SQLCommentCheck flags comments embedded in the statement text. Injected
// payloads routinely use `--` or `/* */` to truncate the legitimate tail of
// a query. Optimizer hints (`/*+ ... */`) can be exempted.
type SQLCommentCheck struct {
	cfg config.SQLCommentConfig
}

// NewSQLCommentCheck creates the check.
func NewSQLCommentCheck(cfg config.SQLCommentConfig) *SQLCommentCheck {
	return &SQLCommentCheck{cfg: cfg}
}

// Name returns the check name.
func (*SQLCommentCheck) Name() string {
	return "sql-comment"
}

// CheckRaw scans for comment openers outside quoted strings.
func (ch *SQLCommentCheck) CheckRaw(c *types.SQLContext, res *types.ValidationResult) {
	kind, found := findComment(c.SQL, ch.cfg.AllowHintComments)
	if !found {
		return
	}
	res.Add(types.RiskCritical, ch.Name(),
		"SQL statement contains a comment ("+kind+")",
		"strip comments before execution; comment sequences are used to truncate injected queries").
		WithDetail("commentKind", kind).
		WithDetail("statementId", c.StatementID)
}

func findComment(sql string, allowHints bool) (string, bool) {
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
		case '-':
			if i+1 < len(sql) && sql[i+1] == '-' {
				return "--", true
			}
		case '#':
			return "#", true
		case '/':
			if i+1 < len(sql) && sql[i+1] == '*' {
				if allowHints && strings.HasPrefix(sql[i:], "/*+") {
					end := strings.Index(sql[i:], "*/")
					if end < 0 {
						return "/*", true
					}
					i += end + 1
					continue
				}
				return "/*", true
			}
		}
	}
	return "", false
}

var _ RawChecker = (*SQLCommentCheck)(nil)
