// Copyright 2026 SGNL.ai, Inc.

// Package sql compiles a condexpr.Condition tree into a goqu.Expression,
// backing pkg/entity.BuildSelectSQL for entities bound to a Database
// adapter instead of an HTTP one. It targets spec.md §4.6's full filter
// operator alphabet (EQ, NE, GT, GTE, LT, LTE, IN, CONTAINS, STARTSWITH,
// ENDSWITH, ISNULL, ISNOTNULL) rather than the bare comparison subset the
// condexpr.Condition AST started from — pkg/entity.EntityFilter maps its
// three pattern-match operators onto CONTAINS/STARTSWITH/ENDSWITH here,
// wildcarding the value before it reaches this package (see
// pkg/entity/sql.go).
//
// Supported operators: =, !=, >, <, >=, <=, IN, CONTAINS, STARTSWITH,
// ENDSWITH, IS NULL, IS NOT NULL. Bare "LIKE" is deliberately not a
// supported token: callers express pattern matches through CONTAINS/
// STARTSWITH/ENDSWITH, which wildcard the value at the call site, so that
// this package never has to guess what a raw LIKE pattern means.
//
// Field names must be valid SQL identifiers: alphanumeric, `$`, `_`, 1-128
// characters. Composite (AND/OR) branches report which index failed so a
// multi-condition filter's error points at the offending sub-condition.
package sql

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/doug-martin/goqu/v9"

	"github.com/dc-api-x/dcapix/pkg/condexpr"
)

// SQL-facing operator tokens a Condition.Operator may carry. These are the
// vocabulary this package's BuildLeafCondition understands; pkg/entity/sql.go
// maps its own Operator type onto these same tokens instead of re-declaring
// an equivalent set.
const (
	OpEQ         = "="
	OpNE         = "!="
	OpGT         = ">"
	OpLT         = "<"
	OpGTE        = ">="
	OpLTE        = "<="
	OpIn         = "IN"
	OpContains   = "CONTAINS"
	OpStartswith = "STARTSWITH"
	OpEndswith   = "ENDSWITH"
	OpIsNull     = "IS NULL"
	OpIsNotNull  = "IS NOT NULL"
)

var (
	// validSQLIdentifier checks if a string is a valid SQL identifier:
	// - Contains only alphanumeric characters, $ and _.
	// - Length between 1-128 characters.
	validSQLIdentifier = regexp.MustCompile(`^[a-zA-Z0-9$_]{1,128}$`)

	errMissingValue    = errors.New("missing required value")
	errMissingField    = errors.New("missing required field")
	errMissingOperator = errors.New("missing required operator")
)

type ConditionBuilder struct{}

func NewConditionBuilder() *ConditionBuilder {
	return &ConditionBuilder{}
}

func (cb ConditionBuilder) Build(cond condexpr.Condition) (goqu.Expression, error) {
	return condexpr.DefaultBuild(cb, cond)
}

func (cb ConditionBuilder) BuildCompositeAnd(cond condexpr.Condition) (goqu.Expression, error) {
	exprs := make([]goqu.Expression, 0, len(cond.And))

	for i, c := range cond.And {
		expr, err := cb.Build(c)
		if err != nil {
			return nil, fmt.Errorf("failed to build AND condition at index %d: %w", i, err)
		}

		exprs = append(exprs, expr)
	}

	return goqu.And(exprs...), nil
}

func (cb ConditionBuilder) BuildCompositeOr(cond condexpr.Condition) (goqu.Expression, error) {
	exprs := make([]goqu.Expression, 0, len(cond.Or))

	for i, c := range cond.Or {
		expr, err := cb.Build(c)
		if err != nil {
			return nil, fmt.Errorf("failed to build OR condition at index %d: %w", i, err)
		}

		exprs = append(exprs, expr)
	}

	return goqu.Or(exprs...), nil
}

func (cb ConditionBuilder) BuildLeafCondition(cond condexpr.Condition) (goqu.Expression, error) {
	if cond.Field == "" {
		return nil, errMissingField
	}

	if cond.Operator == "" {
		return nil, errMissingOperator
	}

	if valid := validSQLIdentifier.MatchString(cond.Field); !valid {
		return nil, fmt.Errorf(
			"field validation failed for '%s': unsupported characters found or length is not in range 1-128",
			cond.Field,
		)
	}

	if cond.Operator == OpIsNull || cond.Operator == OpIsNotNull {
		if cond.Value != nil {
			return nil, fmt.Errorf("value should not be provided for %s operator", cond.Operator)
		}
	} else if cond.Value == nil {
		return nil, errMissingValue
	}

	col := goqu.C(cond.Field)

	switch cond.Operator {
	case OpEQ:
		return col.Eq(cond.Value), nil
	case OpNE:
		return col.Neq(cond.Value), nil
	case OpGT:
		return col.Gt(cond.Value), nil
	case OpLT:
		return col.Lt(cond.Value), nil
	case OpGTE:
		return col.Gte(cond.Value), nil
	case OpLTE:
		return col.Lte(cond.Value), nil
	case OpIn:
		return col.In(cond.Value), nil
	case OpContains, OpStartswith, OpEndswith:
		return col.Like(cond.Value), nil
	case OpIsNull:
		return col.IsNull(), nil
	case OpIsNotNull:
		return col.IsNotNull(), nil
	default:
		return nil, fmt.Errorf("unsupported operator: %q", cond.Operator)
	}
}
