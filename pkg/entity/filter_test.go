// Copyright 2026 SGNL.ai, Inc.
package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dc-api-x/dcapix/pkg/entity"
)

// Scenario 6: entity filter round-trip (spec.md §8.6).
func TestEntityFilter_RoundTripExample(t *testing.T) {
	f := entity.NewEntityFilter().
		Eq("a", 1).
		InList("b", []any{1, 2}).
		IsNull("c")

	got := f.ToParams()

	assert.Equal(t, map[string]string{
		"a":         "1",
		"b__in":     "1,2",
		"c__isnull": "true",
	}, got)
}

func TestFilterExpression_Key(t *testing.T) {
	cases := []struct {
		op   entity.Operator
		want string
	}{
		{entity.OpEQ, "field"},
		{entity.OpNE, "field__ne"},
		{entity.OpGT, "field__gt"},
		{entity.OpGTE, "field__gte"},
		{entity.OpLT, "field__lt"},
		{entity.OpLTE, "field__lte"},
		{entity.OpContains, "field__contains"},
		{entity.OpStartswith, "field__startswith"},
		{entity.OpEndswith, "field__endswith"},
		{entity.OpIn, "field__in"},
		{entity.OpIsNull, "field__isnull"},
		{entity.OpIsNotNull, "field__isnotnull"},
	}

	for _, c := range cases {
		e := entity.FilterExpression{Field: "field", Operator: c.op}
		assert.Equal(t, c.want, e.Key())
	}
}

func TestEntityFilter_LaterEntryOverwritesEarlier(t *testing.T) {
	f := entity.NewEntityFilter().Eq("a", 1).Eq("a", 2)

	assert.Equal(t, map[string]string{"a": "2"}, f.ToParams())
}

func TestFilterExpressionFromParam_RoundTrip(t *testing.T) {
	cases := []struct {
		key, value string
		wantField  string
		wantOp     entity.Operator
	}{
		{"age__gt", "30", "age", entity.OpGT},
		{"name__contains", "foo", "name", entity.OpContains},
		{"status", "active", "status", entity.OpEQ},
	}

	for _, c := range cases {
		got := entity.FilterExpressionFromParam(c.key, c.value)
		assert.Equal(t, c.wantField, got.Field)
		assert.Equal(t, c.wantOp, got.Operator)
		assert.Equal(t, map[string]string{c.key: c.value}, got.ToParams())
	}
}

func TestEntitySorter_ToParams(t *testing.T) {
	assert.Equal(t, map[string]string{"sort": "name", "order": "asc"}, entity.NewEntitySorter("name", false).ToParams())
	assert.Equal(t, map[string]string{"sort": "name", "order": "desc"}, entity.NewEntitySorter("name", true).ToParams())
}

func TestMultiFieldSorter_ToParams(t *testing.T) {
	s := entity.NewMultiFieldSorter(
		entity.SortSpec{Field: "name", Desc: false},
		entity.SortSpec{Field: "age", Desc: true},
	)

	assert.Equal(t, map[string]string{"sort": "name,age", "order": "asc,desc"}, s.ToParams())
}
