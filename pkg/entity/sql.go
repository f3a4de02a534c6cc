// Copyright 2026 SGNL.ai, Inc.
package entity

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	database "github.com/dc-api-x/dcapix/pkg/adapter/database"
	"github.com/dc-api-x/dcapix/pkg/condexpr"
	condexprsql "github.com/dc-api-x/dcapix/pkg/condexpr/sql"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// sqlOperators maps every filter DSL comparison operator onto the token
// vocabulary condexpr/sql's ConditionBuilder renders, per spec.md §4.6's
// full operator alphabet. Contains/Startswith/Endswith all render as
// condexprsql.OpContains/OpStartswith/OpEndswith; ToCondition wildcards
// their value accordingly before compiling.
var sqlOperators = map[Operator]string{
	OpEQ:         condexprsql.OpEQ,
	OpNE:         condexprsql.OpNE,
	OpGT:         condexprsql.OpGT,
	OpGTE:        condexprsql.OpGTE,
	OpLT:         condexprsql.OpLT,
	OpLTE:        condexprsql.OpLTE,
	OpIn:         condexprsql.OpIn,
	OpContains:   condexprsql.OpContains,
	OpStartswith: condexprsql.OpStartswith,
	OpEndswith:   condexprsql.OpEndswith,
	OpIsNull:     condexprsql.OpIsNull,
	OpIsNotNull:  condexprsql.OpIsNotNull,
}

// sqlValue applies the wildcarding CONTAINS/STARTSWITH/ENDSWITH need
// before the value reaches condexpr/sql, which treats them as plain LIKE
// patterns with no opinion on wildcard placement.
func sqlValue(op Operator, value any) any {
	switch op {
	case OpContains:
		return fmt.Sprintf("%%%v%%", value)
	case OpStartswith:
		return fmt.Sprintf("%v%%", value)
	case OpEndswith:
		return fmt.Sprintf("%%%v", value)
	default:
		return value
	}
}

// ToCondition translates f into the nested condexpr.Condition tree that
// pkg/condexpr/sql compiles to a goqu.Expression, for entities backed by
// a Database adapter rather than an HTTP one. Every Operator spec.md §4.6
// defines has a SQL rendering; an unrecognized Operator value (not
// reachable through EntityFilter's own builder methods) fails with a
// ValidationError naming it.
func (f *EntityFilter) ToCondition() (condexpr.Condition, error) {
	conds := make([]condexpr.Condition, 0, len(f.expressions))

	for _, e := range f.expressions {
		op, ok := sqlOperators[e.Operator]
		if !ok {
			return condexpr.Condition{}, dcerrors.NewValidationError(
				fmt.Sprintf("entity: operator %q has no SQL equivalent", e.Operator),
			)
		}

		conds = append(conds, condexpr.Condition{Field: e.Field, Operator: op, Value: sqlValue(e.Operator, e.Value)})
	}

	switch len(conds) {
	case 0:
		return condexpr.Condition{}, nil
	case 1:
		return conds[0], nil
	default:
		return condexpr.Condition{And: conds}, nil
	}
}

// BuildSelectSQL renders a SELECT * FROM table statement for a
// Database-backed entity, applying filter (may be nil), sorts, and an
// optional limit/offset, returning the prepared statement and its
// positional arguments for pkg/adapter/database's Execute.
func BuildSelectSQL(table string, filter *EntityFilter, sorts []SortSpec, limit, offset int) (string, []any, error) {
	dataset := database.Dialect().From(table)

	if filter != nil && len(filter.expressions) > 0 {
		cond, err := filter.ToCondition()
		if err != nil {
			return "", nil, err
		}

		expr, err := condexprsql.NewConditionBuilder().Build(cond)
		if err != nil {
			return "", nil, dcerrors.NewValidationError(fmt.Sprintf("entity: failed to compile filter: %v", err))
		}

		dataset = dataset.Where(expr)
	}

	for _, s := range sorts {
		if s.Desc {
			dataset = dataset.OrderAppend(goqu.C(s.Field).Desc())
		} else {
			dataset = dataset.OrderAppend(goqu.C(s.Field).Asc())
		}
	}

	if limit > 0 {
		dataset = dataset.Limit(uint(limit)) //nolint:gosec
	}

	if offset > 0 {
		dataset = dataset.Offset(uint(offset)) //nolint:gosec
	}

	query, args, err := dataset.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, dcerrors.NewValidationError(fmt.Sprintf("entity: failed to compile query: %v", err))
	}

	return query, args, nil
}
