package sqlparser

import "regexp"

// Non-MySQL pagination constructs rewritten so the MySQL grammar accepts
// them. The rewrite is purely to obtain an AST; pagination classification
// still reads the raw text.
var (
	topRe      = regexp.MustCompile(`(?i)\bTOP\s*\(?\s*(\d+)\s*\)?\s`)
	fetchRe    = regexp.MustCompile(`(?i)\s(?:OFFSET\s+\d+\s+ROWS?\s+)?FETCH\s+(?:FIRST|NEXT)\s+(\d+)\s+ROWS?\s+ONLY`)
	rownumRe   = regexp.MustCompile(`(?i)\s(?:AND|WHERE)\s+ROWNUM\s*<=?\s*(\d+)`)
	rownumOnly = regexp.MustCompile(`(?i)\bROWNUM\s*<=?\s*(\d+)`)
)

// NormalizeDialect strips SQL Server and Oracle pagination syntax, moving
// the bound into a LIMIT clause where it can. It reports whether anything
// was rewritten.
func NormalizeDialect(sql string) (string, bool) {
	changed := false
	out := sql

	if m := topRe.FindStringSubmatch(out); m != nil {
		out = topRe.ReplaceAllString(out, " ")
		out = appendLimit(out, m[1])
		changed = true
	}
	if m := fetchRe.FindStringSubmatch(out); m != nil {
		out = fetchRe.ReplaceAllString(out, "")
		out = appendLimit(out, m[1])
		changed = true
	}
	if m := rownumRe.FindStringSubmatch(out); m != nil {
		out = rownumRe.ReplaceAllString(out, "")
		out = appendLimit(out, m[1])
		changed = true
	} else if m := rownumOnly.FindStringSubmatch(out); m != nil {
		out = rownumOnly.ReplaceAllString(out, "1=1")
		out = appendLimit(out, m[1])
		changed = true
	}

	return out, changed
}

var trailingSemi = regexp.MustCompile(`;\s*$`)

func appendLimit(sql, count string) string {
	sql = trailingSemi.ReplaceAllString(sql, "")
	return sql + " LIMIT " + count
}
