package checks

import (
	"regexp"

	"github.com/footstone/sqlguard/pkg/types"
)

// IntoOutfileCheck flags SELECT ... INTO OUTFILE/DUMPFILE, which writes
// query results to the database host's filesystem.
type IntoOutfileCheck struct{}

// NewIntoOutfileCheck creates the check.
func NewIntoOutfileCheck() *IntoOutfileCheck {
	return &IntoOutfileCheck{}
}

// Name returns the check name.
func (*IntoOutfileCheck) Name() string {
	return "into-outfile"
}

var intoFileRe = regexp.MustCompile(`(?i)\bINTO\s+(OUTFILE|DUMPFILE)\b`)

// CheckRaw scans the raw text; the construct is rejected even when the
// parser would accept it.
func (ch *IntoOutfileCheck) CheckRaw(c *types.SQLContext, res *types.ValidationResult) {
	m := intoFileRe.FindStringSubmatch(c.SQL)
	if m == nil {
		return
	}
	res.Add(types.RiskCritical, ch.Name(),
		"statement writes query results to a server file (INTO "+m[1]+")",
		"file export from SQL is a data exfiltration vector; use an application-level export instead").
		WithDetail("statementId", c.StatementID)
}

var _ RawChecker = (*IntoOutfileCheck)(nil)
