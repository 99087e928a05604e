package astutil

import (
	"testing"

	"github.com/pingcap/tidb/parser/ast"
	"github.com/stretchr/testify/require"

	"github.com/footstone/sqlguard/pkg/sqlparser"
)

func mustParse(t *testing.T, sql string) ast.StmtNode {
	t.Helper()
	stmt, err := sqlparser.Parse(sql)
	require.NoError(t, err)
	return stmt
}

func TestWhere(t *testing.T) {
	require.NotNil(t, Where(mustParse(t, "SELECT * FROM t WHERE a = 1")))
	require.Nil(t, Where(mustParse(t, "SELECT * FROM t")))
	require.NotNil(t, Where(mustParse(t, "UPDATE t SET a = 1 WHERE b = 2")))
	require.NotNil(t, Where(mustParse(t, "DELETE FROM t WHERE a = 1")))
	require.Nil(t, Where(mustParse(t, "INSERT INTO t (a) VALUES (1)")))
}

func TestTableNames(t *testing.T) {
	require.Equal(t, []string{"users"}, TableNames(mustParse(t, "SELECT * FROM Users")))
	require.Equal(t, []string{"users", "orders"},
		TableNames(mustParse(t, "SELECT * FROM users u JOIN orders o ON u.id = o.user_id")))
	require.Equal(t, []string{"users"}, TableNames(mustParse(t, "DELETE FROM users WHERE id = 1")))
}

func TestColumns(t *testing.T) {
	where := Where(mustParse(t, "SELECT * FROM t WHERE Deleted = 0 AND Status = 1 OR deleted = 2"))
	require.Equal(t, []string{"deleted", "status", "deleted"}, Columns(where))
	require.Nil(t, Columns(nil))
}

func TestIsTriviallyTrue(t *testing.T) {
	patterns := []string{"1=1", "true", "'a'='a'"}

	trueCases := []string{
		"SELECT * FROM t WHERE 1=1",
		"SELECT * FROM t WHERE 1 = 1",
		"SELECT * FROM t WHERE TRUE",
		"SELECT * FROM t WHERE 'a'='a'",
		// Structural equality of identical literals is caught without a
		// matching pattern.
		"SELECT * FROM t WHERE 42=42",
		"SELECT * FROM t WHERE (1=1)",
		"SELECT * FROM t WHERE a = 1 OR 1=1",
	}
	for _, sql := range trueCases {
		require.True(t, IsTriviallyTrue(Where(mustParse(t, sql)), patterns), sql)
	}

	falseCases := []string{
		"SELECT * FROM t WHERE a = 1",
		"SELECT * FROM t WHERE 1 = 2",
		"SELECT * FROM t WHERE a = 1 AND 1=1",
		"SELECT * FROM t WHERE a = a",
	}
	for _, sql := range falseCases {
		require.False(t, IsTriviallyTrue(Where(mustParse(t, sql)), patterns), sql)
	}

	require.False(t, IsTriviallyTrue(nil, patterns))
}

func TestLimitExtraction(t *testing.T) {
	// LIMIT n
	l := Limit(mustParse(t, "SELECT * FROM t LIMIT 10"))
	n, ok := LimitCount(l)
	require.True(t, ok)
	require.Equal(t, int64(10), n)
	off, ok := LimitOffset(l)
	require.True(t, ok)
	require.Equal(t, int64(0), off)

	// LIMIT offset, count
	l = Limit(mustParse(t, "SELECT * FROM t LIMIT 20000, 50"))
	n, ok = LimitCount(l)
	require.True(t, ok)
	require.Equal(t, int64(50), n)
	off, ok = LimitOffset(l)
	require.True(t, ok)
	require.Equal(t, int64(20000), off)

	// LIMIT n OFFSET m
	l = Limit(mustParse(t, "SELECT * FROM t LIMIT 50 OFFSET 20000"))
	n, ok = LimitCount(l)
	require.True(t, ok)
	require.Equal(t, int64(50), n)
	off, ok = LimitOffset(l)
	require.True(t, ok)
	require.Equal(t, int64(20000), off)

	// Bind marker bounds have no literal value.
	l = Limit(mustParse(t, "SELECT * FROM t LIMIT ?"))
	_, ok = LimitCount(l)
	require.False(t, ok)

	require.Nil(t, Limit(mustParse(t, "SELECT * FROM t")))
}

func TestHasEqualityOn(t *testing.T) {
	keys := map[string]struct{}{"id": {}}

	require.True(t, HasEqualityOn(Where(mustParse(t, "SELECT * FROM t WHERE id = 5")), keys))
	require.True(t, HasEqualityOn(Where(mustParse(t, "SELECT * FROM t WHERE id = ?")), keys))
	require.True(t, HasEqualityOn(Where(mustParse(t, "SELECT * FROM t WHERE a = 1 AND id = 5")), keys))
	// Column-to-column equality does not pin the row.
	require.False(t, HasEqualityOn(Where(mustParse(t, "SELECT * FROM t WHERE id = other_id")), keys))
	// OR disjunction does not guarantee the equality applies.
	require.False(t, HasEqualityOn(Where(mustParse(t, "SELECT * FROM t WHERE a = 1 OR id = 5")), keys))
	require.False(t, HasEqualityOn(Where(mustParse(t, "SELECT * FROM t WHERE id > 5")), keys))
}

func TestFunctionCalls(t *testing.T) {
	require.Contains(t, FunctionCalls(mustParse(t, "SELECT SLEEP(5)")), "sleep")
	require.Contains(t, FunctionCalls(mustParse(t, "SELECT * FROM t WHERE name = load_file('/etc/passwd')")), "load_file")
	require.Empty(t, FunctionCalls(mustParse(t, "SELECT a FROM t WHERE b = 1")))
}

func TestMatchPattern(t *testing.T) {
	require.True(t, MatchPattern("deleted", "DELETED"))
	require.True(t, MatchPattern("is_*", "is_deleted"))
	require.False(t, MatchPattern("is_*", "deleted"))
	require.True(t, MatchPattern("create_*", "create_time"))
	require.False(t, MatchPattern("", "anything"))
	require.True(t, MatchAnyPattern([]string{"a", "b_*"}, "b_c"))
	require.False(t, MatchAnyPattern(nil, "x"))
}

func TestHasPaginationSyntax(t *testing.T) {
	paginated := []string{
		"SELECT * FROM t LIMIT 10",
		"SELECT * FROM t LIMIT ?",
		"SELECT TOP 100 * FROM t",
		"SELECT TOP(100) * FROM t",
		"SELECT * FROM t FETCH FIRST 10 ROWS ONLY",
		"SELECT * FROM t WHERE ROWNUM <= 50",
		"SELECT *, ROW_NUMBER() OVER (ORDER BY id) FROM t",
	}
	for _, sql := range paginated {
		require.True(t, HasPaginationSyntax(sql), sql)
	}

	unpaginated := []string{
		"SELECT * FROM t",
		"SELECT * FROM t WHERE a = 1 ORDER BY id",
		"SELECT limits FROM quota",
	}
	for _, sql := range unpaginated {
		require.False(t, HasPaginationSyntax(sql), sql)
	}
}

func TestPageSizeFromText(t *testing.T) {
	n, ok := PageSizeFromText("SELECT TOP 5000 * FROM users")
	require.True(t, ok)
	require.Equal(t, int64(5000), n)

	n, ok = PageSizeFromText("SELECT * FROM t LIMIT 100, 25")
	require.True(t, ok)
	require.Equal(t, int64(25), n)

	n, ok = PageSizeFromText("SELECT * FROM t FETCH FIRST 10 ROWS ONLY")
	require.True(t, ok)
	require.Equal(t, int64(10), n)

	_, ok = PageSizeFromText("SELECT * FROM t")
	require.False(t, ok)
}

func TestOffsetFromText(t *testing.T) {
	off, ok := OffsetFromText("SELECT * FROM t LIMIT 20000, 50")
	require.True(t, ok)
	require.Equal(t, int64(20000), off)

	off, ok = OffsetFromText("SELECT * FROM t LIMIT 50 OFFSET 20000")
	require.True(t, ok)
	require.Equal(t, int64(20000), off)

	_, ok = OffsetFromText("SELECT * FROM t LIMIT 50")
	require.False(t, ok)
}
