package astutil

import (
	"strings"

	"github.com/pingcap/tidb/parser/ast"
)

// IsTriviallyTrue reports whether a WHERE expression filters nothing: its
// normalized text matches one of the configured dummy patterns, or it is
// structurally an equality of identical literals. The structural path
// catches spellings the pattern list misses (42=42).
func IsTriviallyTrue(expr ast.ExprNode, patterns []string) bool {
	if expr == nil {
		return false
	}
	if ContainsAlwaysTrue(expr) {
		return true
	}
	text := normalizeCondition(ExprText(expr))
	for _, p := range patterns {
		if normalizeCondition(p) == text {
			return true
		}
	}
	return false
}

// normalizeCondition lowercases and strips whitespace and backquotes so
// `1 = 1`, `1=1`, and the parser's rendering all compare equal.
func normalizeCondition(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r', '`':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
