// Package pagination classifies how a query bounds its result set.
package pagination

import (
	"github.com/footstone/sqlguard/pkg/astutil"
	"github.com/footstone/sqlguard/pkg/types"
)

// Classify determines the pagination type of a statement. Logical pagination
// means the caller asked for a page (row bounds or a page parameter) but the
// SQL itself is unbounded and no dialect plugin will rewrite it, so the
// driver fetches everything and discards rows in memory. Detection runs on
// the raw SQL text, which keeps dialect-specific syntax visible even when
// the typed tree came from a normalized rendering.
func Classify(c *types.SQLContext) types.PaginationType {
	hasLimit := astutil.HasPaginationSyntax(c.SQL)
	hasPageParam := c.HasPageParam()

	switch {
	case hasPageParam && !hasLimit && !c.PluginPresent:
		return types.PaginationLogical
	case hasLimit || (hasPageParam && c.PluginPresent):
		return types.PaginationPhysical
	default:
		return types.PaginationNone
	}
}
