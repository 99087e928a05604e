package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footstone/sqlguard/pkg/types"
)

func TestClassify(t *testing.T) {
	bounds := &types.RowBounds{Offset: 0, Limit: 20}

	tests := []struct {
		name string
		c    *types.SQLContext
		want types.PaginationType
	}{
		{
			name: "no signals at all",
			c:    &types.SQLContext{SQL: "SELECT * FROM users"},
			want: types.PaginationNone,
		},
		{
			name: "limit in sql",
			c:    &types.SQLContext{SQL: "SELECT * FROM users LIMIT 10"},
			want: types.PaginationPhysical,
		},
		{
			name: "top in sql",
			c:    &types.SQLContext{SQL: "SELECT TOP 10 * FROM users"},
			want: types.PaginationPhysical,
		},
		{
			name: "page param without limit or plugin",
			c:    &types.SQLContext{SQL: "SELECT * FROM users", RowBounds: bounds},
			want: types.PaginationLogical,
		},
		{
			name: "page param with plugin",
			c:    &types.SQLContext{SQL: "SELECT * FROM users", RowBounds: bounds, PluginPresent: true},
			want: types.PaginationPhysical,
		},
		{
			// SQL text is ground truth even without a plugin.
			name: "page param and limit in sql",
			c:    &types.SQLContext{SQL: "SELECT * FROM users LIMIT 10", RowBounds: bounds},
			want: types.PaginationPhysical,
		},
		{
			// Unbounded bounds count as absent, never LOGICAL.
			name: "unbounded row bounds",
			c:    &types.SQLContext{SQL: "SELECT * FROM users", RowBounds: &types.RowBounds{Offset: 0, Limit: 0}},
			want: types.PaginationNone,
		},
		{
			name: "plugin alone is not pagination",
			c:    &types.SQLContext{SQL: "SELECT * FROM users", PluginPresent: true},
			want: types.PaginationNone,
		},
		{
			name: "page object param",
			c: &types.SQLContext{
				SQL:    "SELECT * FROM users",
				Params: map[string]any{"page": types.Page{Num: 2, Size: 20}},
			},
			want: types.PaginationLogical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.c))
		})
	}
}
