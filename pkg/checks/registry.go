package checks

import "github.com/footstone/sqlguard/pkg/config"

// All builds the enabled checks from a config snapshot, in dispatch
// priority order: injection shapes first, then root-cause condition checks,
// then pagination magnitude checks. The no-condition-pagination check must
// precede deep-pagination and large-page-size so its early-return signal is
// visible to them.
func All(cfg *config.Config) []Checker {
	r := cfg.Rules
	dummy := r.DummyCondition.AllPatterns()

	all := make([]Checker, 0, 14)
	add := func(enabled bool, c Checker) {
		if enabled {
			all = append(all, c)
		}
	}

	add(r.MultiStatement.Enabled, NewMultiStatementCheck())
	add(r.SQLComment.Enabled, NewSQLCommentCheck(r.SQLComment))
	add(r.IntoOutfile.Enabled, NewIntoOutfileCheck())
	add(r.DangerousFunction.Enabled, NewDangerousFunctionCheck(r.DangerousFunction))
	add(r.NoWhereClause.Enabled, NewNoWhereClauseCheck(dummy))
	add(r.DummyCondition.Enabled, NewDummyConditionCheck(r.DummyCondition))
	add(r.BlacklistFields.Enabled, NewBlacklistFieldsCheck(r.BlacklistFields))
	add(r.WhitelistFields.Enabled, NewWhitelistFieldsCheck(r.WhitelistFields))
	add(r.LogicalPagination.Enabled, NewLogicalPaginationCheck())
	add(r.NoConditionPagination.Enabled, NewNoConditionPaginationCheck(dummy))
	add(r.DeepPagination.Enabled, NewDeepPaginationCheck(r.DeepPagination))
	add(r.LargePageSize.Enabled, NewLargePageSizeCheck(r.LargePageSize))
	add(r.MissingOrderBy.Enabled, NewMissingOrderByCheck())
	add(r.NoPagination.Enabled, NewNoPaginationCheck(r.NoPagination, r.BlacklistFields.Fields, dummy))

	return all
}
