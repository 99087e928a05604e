package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRiskLevelOrdering(t *testing.T) {
	require.True(t, RiskCritical > RiskHigh)
	require.True(t, RiskHigh > RiskMedium)
	require.True(t, RiskMedium > RiskLow)
	require.True(t, RiskLow > RiskSafe)
}

func TestParseRiskLevel(t *testing.T) {
	level, err := ParseRiskLevel("critical")
	require.NoError(t, err)
	require.Equal(t, RiskCritical, level)

	level, err = ParseRiskLevel("HIGH")
	require.NoError(t, err)
	require.Equal(t, RiskHigh, level)

	_, err = ParseRiskLevel("bogus")
	require.Error(t, err)
}

func TestResultAggregation(t *testing.T) {
	res := NewResult()
	require.True(t, res.Passed())
	require.Equal(t, RiskSafe, res.RiskLevel())

	res.Add(RiskLow, "missing-order-by", "no order by", "")
	res.Add(RiskCritical, "no-where-clause", "no where", "")
	res.Add(RiskMedium, "deep-pagination", "deep offset", "")

	require.False(t, res.Passed())
	require.Equal(t, RiskCritical, res.RiskLevel())
	require.Len(t, res.Violations, 3)
}

func TestViolationDetails(t *testing.T) {
	res := NewResult()
	v := res.Add(RiskMedium, "large-page-size", "too big", "shrink it").
		WithDetail("pageSize", int64(5000))
	require.Equal(t, int64(5000), v.Details["pageSize"])
	require.Equal(t, v, res.Violations[0])
}

func TestHasPageParam(t *testing.T) {
	c := &SQLContext{SQL: "SELECT 1"}
	require.False(t, c.HasPageParam())

	c.RowBounds = &RowBounds{Offset: 0, Limit: 20}
	require.True(t, c.HasPageParam())

	// Unbounded bounds are not a pagination signal.
	c.RowBounds = &RowBounds{Offset: 0, Limit: 0}
	require.False(t, c.HasPageParam())

	c.RowBounds = nil
	c.Params = map[string]any{"page": Page{Num: 1, Size: 10}}
	require.True(t, c.HasPageParam())
}
