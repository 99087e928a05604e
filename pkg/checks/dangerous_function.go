package checks

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser/ast"

	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/config"
	"github.com/footstone/sqlguard/pkg/types"
)

// DangerousFunctionCheck flags calls to functions on the configured deny
// list: file access, command execution, and timing primitives used for
// blind injection probing.
type DangerousFunctionCheck struct {
	denied map[string]struct{}
}

// NewDangerousFunctionCheck creates the check from the configured deny list.
func NewDangerousFunctionCheck(cfg config.DangerousFunctionConfig) *DangerousFunctionCheck {
	denied := make(map[string]struct{}, len(cfg.DeniedFunctions))
	for _, fn := range cfg.DeniedFunctions {
		denied[strings.ToLower(strings.TrimSpace(fn))] = struct{}{}
	}
	return &DangerousFunctionCheck{denied: denied}
}

// Name returns the check name.
func (*DangerousFunctionCheck) Name() string {
	return "dangerous-function"
}

// CheckStmt walks the statement for denied function calls.
func (ch *DangerousFunctionCheck) CheckStmt(c *types.SQLContext, stmt ast.StmtNode, res *types.ValidationResult) {
	for _, fn := range astutil.FunctionCalls(stmt) {
		if _, bad := ch.denied[fn]; !bad {
			continue
		}
		res.Add(types.RiskCritical, ch.Name(),
			fmt.Sprintf("statement calls denied function %s()", fn),
			"remove the function call; it enables file access, command execution, or timing attacks").
			WithDetail("function", fn).
			WithDetail("statementId", c.StatementID)
	}
}

var _ StmtChecker = (*DangerousFunctionCheck)(nil)
