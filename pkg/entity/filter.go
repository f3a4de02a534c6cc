// Copyright 2026 SGNL.ai, Inc.

// Package entity implements the typed CRUD and filter/sort DSL of
// spec.md §4.6: Entity binds a resource name to a Client plus a model,
// EntityManager caches bindings by (resource_name, base_path), and
// FilterExpression/EntityFilter/SortSpec compile to query parameters the
// way the teacher's handler types (e.g. pkg/okta's user/group handlers)
// hand-build query params per SoR, generalized here into one reusable DSL.
package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator names a FilterExpression comparison, per spec.md §4.6.
type Operator string

const (
	OpEQ         Operator = "eq"
	OpNE         Operator = "ne"
	OpGT         Operator = "gt"
	OpGTE        Operator = "gte"
	OpLT         Operator = "lt"
	OpLTE        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartswith Operator = "startswith"
	OpEndswith   Operator = "endswith"
	OpIn         Operator = "in"
	OpIsNull     Operator = "isnull"
	OpIsNotNull  Operator = "isnotnull"
)

// suffixes maps each non-EQ operator to its query-param suffix, per
// spec.md §4.6 ("operator maps to a suffix ... EQ has empty suffix").
var suffixes = map[Operator]string{
	OpNE:         "__ne",
	OpGT:         "__gt",
	OpGTE:        "__gte",
	OpLT:         "__lt",
	OpLTE:        "__lte",
	OpContains:   "__contains",
	OpStartswith: "__startswith",
	OpEndswith:   "__endswith",
	OpIn:         "__in",
	OpIsNull:     "__isnull",
	OpIsNotNull:  "__isnotnull",
}

// FilterExpression is one field/operator/value triple.
type FilterExpression struct {
	Field    string
	Operator Operator
	Value    any
}

// Key returns the query-parameter key this expression serializes to:
// field plus the operator's suffix (empty for EQ).
func (e FilterExpression) Key() string {
	return e.Field + suffixes[e.Operator]
}

// paramValue returns the query-parameter value this expression serializes to,
// per spec.md §4.6: IS(NOT)NULL always serializes "true"; IN with a
// slice value comma-joins its elements; everything else is formatted with
// its natural string representation.
func (e FilterExpression) paramValue() string {
	switch e.Operator {
	case OpIsNull, OpIsNotNull:
		return "true"
	case OpIn:
		return joinValues(e.Value)
	default:
		return formatValue(e.Value)
	}
}

// ToParams renders this single expression as a one-entry parameter map.
func (e FilterExpression) ToParams() map[string]string {
	return map[string]string{e.Key(): e.paramValue()}
}

func joinValues(v any) string {
	switch vv := v.(type) {
	case []any:
		parts := make([]string, len(vv))
		for i, item := range vv {
			parts[i] = formatValue(item)
		}

		return strings.Join(parts, ",")
	case []string:
		return strings.Join(vv, ",")
	case []int:
		parts := make([]string, len(vv))
		for i, item := range vv {
			parts[i] = strconv.Itoa(item)
		}

		return strings.Join(parts, ",")
	default:
		return formatValue(v)
	}
}

func formatValue(v any) string {
	switch vv := v.(type) {
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	case bool:
		return strconv.FormatBool(vv)
	case int:
		return strconv.Itoa(vv)
	case int64:
		return strconv.FormatInt(vv, 10)
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// EntityFilter aggregates expressions into one query-parameter mapping,
// per spec.md §4.6: "later entries overwrite earlier on key conflict".
type EntityFilter struct {
	expressions []FilterExpression
}

// NewEntityFilter returns an empty filter, ready for fluent construction.
func NewEntityFilter() *EntityFilter {
	return &EntityFilter{}
}

func (f *EntityFilter) add(field string, op Operator, value any) *EntityFilter {
	f.expressions = append(f.expressions, FilterExpression{Field: field, Operator: op, Value: value})

	return f
}

func (f *EntityFilter) Eq(field string, value any) *EntityFilter  { return f.add(field, OpEQ, value) }
func (f *EntityFilter) Ne(field string, value any) *EntityFilter  { return f.add(field, OpNE, value) }
func (f *EntityFilter) Gt(field string, value any) *EntityFilter  { return f.add(field, OpGT, value) }
func (f *EntityFilter) Gte(field string, value any) *EntityFilter { return f.add(field, OpGTE, value) }
func (f *EntityFilter) Lt(field string, value any) *EntityFilter  { return f.add(field, OpLT, value) }
func (f *EntityFilter) Lte(field string, value any) *EntityFilter { return f.add(field, OpLTE, value) }

func (f *EntityFilter) Contains(field string, value any) *EntityFilter {
	return f.add(field, OpContains, value)
}

func (f *EntityFilter) Startswith(field string, value any) *EntityFilter {
	return f.add(field, OpStartswith, value)
}

func (f *EntityFilter) Endswith(field string, value any) *EntityFilter {
	return f.add(field, OpEndswith, value)
}

func (f *EntityFilter) InList(field string, values any) *EntityFilter {
	return f.add(field, OpIn, values)
}

func (f *EntityFilter) IsNull(field string) *EntityFilter {
	return f.add(field, OpIsNull, nil)
}

func (f *EntityFilter) IsNotNull(field string) *EntityFilter {
	return f.add(field, OpIsNotNull, nil)
}

// ToParams merges every expression's params in insertion order, later
// entries winning on key conflict per spec.md §4.6.
func (f *EntityFilter) ToParams() map[string]string {
	out := make(map[string]string, len(f.expressions))

	for _, e := range f.expressions {
		out[e.Key()] = e.paramValue()
	}

	return out
}

// Expressions returns the underlying expression slice, chiefly for
// round-trip tests (spec.md §8's "building a new expression from the
// parameter pair and re-serializing is a no-op").
func (f *EntityFilter) Expressions() []FilterExpression {
	out := make([]FilterExpression, len(f.expressions))
	copy(out, f.expressions)

	return out
}

// FilterExpressionFromParam parses one key/value parameter pair back into
// a FilterExpression, used by round-trip tests for every suffix except
// IN and the ISNULL family (whose original value is lossy post-serialization,
// per spec.md §8).
func FilterExpressionFromParam(key, value string) FilterExpression {
	for op, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(key, suffix) {
			return FilterExpression{Field: strings.TrimSuffix(key, suffix), Operator: op, Value: value}
		}
	}

	return FilterExpression{Field: key, Operator: OpEQ, Value: value}
}

// SortSpec is a single field/direction pair.
type SortSpec struct {
	Field string
	Desc  bool
}

// EntitySorter compiles one SortSpec to the {"sort", "order"} pair of
// spec.md §4.6.
type EntitySorter struct {
	Spec SortSpec
}

func NewEntitySorter(field string, desc bool) *EntitySorter {
	return &EntitySorter{Spec: SortSpec{Field: field, Desc: desc}}
}

func (s *EntitySorter) ToParams() map[string]string {
	order := "asc"
	if s.Spec.Desc {
		order = "desc"
	}

	return map[string]string{"sort": s.Spec.Field, "order": order}
}

// MultiFieldSorter joins several SortSpecs by comma, per spec.md §4.6.
type MultiFieldSorter struct {
	Specs []SortSpec
}

func NewMultiFieldSorter(specs ...SortSpec) *MultiFieldSorter {
	return &MultiFieldSorter{Specs: specs}
}

func (s *MultiFieldSorter) ToParams() map[string]string {
	fields := make([]string, len(s.Specs))
	orders := make([]string, len(s.Specs))

	for i, spec := range s.Specs {
		fields[i] = spec.Field

		if spec.Desc {
			orders[i] = "desc"
		} else {
			orders[i] = "asc"
		}
	}

	return map[string]string{
		"sort":  strings.Join(fields, ","),
		"order": strings.Join(orders, ","),
	}
}
