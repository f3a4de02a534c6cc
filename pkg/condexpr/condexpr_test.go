// Copyright 2026 SGNL.ai, Inc.
package condexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/condexpr"
)

type recordingBuilder struct{}

func (recordingBuilder) Build(cond condexpr.Condition) (string, error) {
	return condexpr.DefaultBuild[string, recordingBuilder](recordingBuilder{}, cond)
}

func (recordingBuilder) BuildCompositeAnd(cond condexpr.Condition) (string, error) {
	return "and", nil
}

func (recordingBuilder) BuildCompositeOr(cond condexpr.Condition) (string, error) {
	return "or", nil
}

func (recordingBuilder) BuildLeafCondition(cond condexpr.Condition) (string, error) {
	return "leaf:" + cond.Field, nil
}

func TestDefaultBuildDispatchesByShape(t *testing.T) {
	b := recordingBuilder{}

	out, err := condexpr.DefaultBuild[string, recordingBuilder](b, condexpr.Condition{Field: "status", Operator: "=", Value: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "leaf:status", out)

	out, err = condexpr.DefaultBuild[string, recordingBuilder](b, condexpr.Condition{And: []condexpr.Condition{{Field: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, "and", out)

	out, err = condexpr.DefaultBuild[string, recordingBuilder](b, condexpr.Condition{Or: []condexpr.Condition{{Field: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, "or", out)
}

func TestDefaultBuildRejectsAmbiguousConditions(t *testing.T) {
	b := recordingBuilder{}

	_, err := condexpr.DefaultBuild[string, recordingBuilder](b, condexpr.Condition{})
	assert.Error(t, err)

	_, err = condexpr.DefaultBuild[string, recordingBuilder](b, condexpr.Condition{
		And: []condexpr.Condition{{Field: "a"}},
		Or:  []condexpr.Condition{{Field: "b"}},
	})
	assert.Error(t, err)
}
