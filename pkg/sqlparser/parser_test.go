package sqlparser

import (
	"testing"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/stretchr/testify/require"

	"github.com/footstone/sqlguard/pkg/types"
)

func TestParseSelect(t *testing.T) {
	stmt, err := Parse("SELECT id, name FROM users WHERE id = 1")
	require.NoError(t, err)

	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	require.NotNil(t, sel.Where)
	require.Equal(t, types.KindSelect, KindOf(stmt))
}

func TestParseKinds(t *testing.T) {
	cases := map[string]types.StatementKind{
		"SELECT 1":                                types.KindSelect,
		"INSERT INTO users (id) VALUES (1)":       types.KindInsert,
		"UPDATE users SET name = 'x' WHERE id=1":  types.KindUpdate,
		"DELETE FROM users WHERE id = 1":          types.KindDelete,
		"CREATE TABLE t (id INT)":                 types.KindUnknown,
	}
	for sql, want := range cases {
		stmt, err := Parse(sql)
		require.NoError(t, err, sql)
		require.Equal(t, want, KindOf(stmt), sql)
	}
}

func TestParseAllMultipleStatements(t *testing.T) {
	stmts, err := ParseAll("SELECT 1; SELECT 2")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
}

func TestParseFailure(t *testing.T) {
	_, err := Parse("SELEKT everything")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Error(), "SELEKT")
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}

func TestParseTopFallsBackToNormalizedForm(t *testing.T) {
	stmt, err := Parse("SELECT TOP 5000 * FROM users")
	require.NoError(t, err)

	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	require.NotNil(t, sel.Limit)
}

func TestNormalizeDialect(t *testing.T) {
	out, changed := NormalizeDialect("SELECT TOP 10 * FROM users")
	require.True(t, changed)
	require.Contains(t, out, "LIMIT 10")

	out, changed = NormalizeDialect("SELECT * FROM users OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY")
	require.True(t, changed)
	require.Contains(t, out, "LIMIT 10")

	out, changed = NormalizeDialect("SELECT * FROM users WHERE ROWNUM <= 100")
	require.True(t, changed)
	require.Contains(t, out, "LIMIT 100")

	_, changed = NormalizeDialect("SELECT * FROM users LIMIT 10")
	require.False(t, changed)
}
