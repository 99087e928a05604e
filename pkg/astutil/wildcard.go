package astutil

import "strings"

// MatchPattern matches name against pattern case-insensitively. A trailing
// '*' matches any suffix (is_* matches is_deleted); anything else is an
// exact match.
func MatchPattern(pattern, name string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	name = strings.ToLower(strings.TrimSpace(name))
	if pattern == "" {
		return false
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == name
}

// MatchAnyPattern reports whether any pattern in the list matches name.
func MatchAnyPattern(patterns []string, name string) bool {
	for _, p := range patterns {
		if MatchPattern(p, name) {
			return true
		}
	}
	return false
}
