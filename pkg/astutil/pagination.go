package astutil

import (
	"regexp"
	"strconv"
)

// Pagination syntax is detected on the raw text so dialects the parser
// cannot fully type (TOP, FETCH FIRST, ROWNUM) still count as physical
// pagination.
var paginationRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bLIMIT\s+\d+`),
	regexp.MustCompile(`(?i)\bLIMIT\s+[?:]`),
	regexp.MustCompile(`(?i)\bTOP\s*\(?\s*\d+`),
	regexp.MustCompile(`(?i)\bFETCH\s+(?:FIRST|NEXT)\s+\d+\s+ROWS?\s+ONLY`),
	regexp.MustCompile(`(?i)\bROWNUM\s*<=?\s*\d+`),
	regexp.MustCompile(`(?i)\bROW_NUMBER\s*\(\s*\)\s+OVER\b`),
}

// HasPaginationSyntax reports whether the raw SQL carries any row-limiting
// construct across the supported dialects.
func HasPaginationSyntax(sql string) bool {
	for _, re := range paginationRes {
		if re.MatchString(sql) {
			return true
		}
	}
	return false
}

var pageSizeRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bLIMIT\s+\d+\s*,\s*(\d+)`),
	regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)`),
	regexp.MustCompile(`(?i)\bTOP\s*\(?\s*(\d+)`),
	regexp.MustCompile(`(?i)\bFETCH\s+(?:FIRST|NEXT)\s+(\d+)\s+ROWS?\s+ONLY`),
	regexp.MustCompile(`(?i)\bROWNUM\s*<=?\s*(\d+)`),
}

// PageSizeFromText extracts the requested page size from raw SQL when the
// bound is a literal. `LIMIT offset, count` reads the count.
func PageSizeFromText(sql string) (int64, bool) {
	for _, re := range pageSizeRes {
		if m := re.FindStringSubmatch(sql); m != nil {
			n, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

var offsetRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\s*,\s*\d+`),
	regexp.MustCompile(`(?i)\bLIMIT\s+\d+\s+OFFSET\s+(\d+)`),
	regexp.MustCompile(`(?i)\bOFFSET\s+(\d+)\s+ROWS?\b`),
}

// OffsetFromText extracts a literal pagination offset from raw SQL.
func OffsetFromText(sql string) (int64, bool) {
	for _, re := range offsetRes {
		if m := re.FindStringSubmatch(sql); m != nil {
			n, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}
