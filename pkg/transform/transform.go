// Copyright 2026 SGNL.ai, Inc.

// Package transform implements spec.md §2's Transform Provider extension
// point, grounded on ext/providers/transform.py's TransformProvider
// abstract base (transform, batch_transform, can_transform,
// get_supported_transforms).
package transform

import "context"

// Provider converts a value of type S into a value of type V, per
// transform.py's TransformProvider(Provider, Generic[T,V]).
type Provider[S, V any] interface {
	// Transform converts one value.
	Transform(ctx context.Context, data S) (V, error)
	// BatchTransform converts every value, failing the whole batch on the
	// first error, per transform.py's batch_transform default
	// implementation (a plain per-item loop over transform()).
	BatchTransform(ctx context.Context, items []S) ([]V, error)
}

// FieldMapper is a concrete Provider that renames/copies a fixed set of
// fields from a map[string]any source to a map[string]any result, the
// reference Transform Provider spec.md §2's table calls for. transform.py
// ships no concrete subclass (TransformProvider is abstract-only); this
// mapping shape is grounded instead on this repo's own pkg/entity.Codec
// pattern of "map in, map out" wire-shape conversion.
type FieldMapper struct {
	// Rename maps a source field name to its destination field name.
	// Fields not listed are dropped.
	Rename map[string]string
}

// NewFieldMapper builds a FieldMapper from a source->destination field
// name mapping.
func NewFieldMapper(rename map[string]string) *FieldMapper {
	return &FieldMapper{Rename: rename}
}

// Transform implements Provider[map[string]any, map[string]any].
func (f *FieldMapper) Transform(_ context.Context, data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(f.Rename))

	for src, dst := range f.Rename {
		if v, ok := data[src]; ok {
			out[dst] = v
		}
	}

	return out, nil
}

// BatchTransform implements Provider, per transform.py's default
// batch_transform: a plain per-item loop over Transform.
func (f *FieldMapper) BatchTransform(ctx context.Context, items []map[string]any) ([]map[string]any, error) {
	out := make([]map[string]any, len(items))

	for i, item := range items {
		v, err := f.Transform(ctx, item)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// CanTransform reports whether FieldMapper supports converting between the
// named source/target type tags, per transform.py's can_transform default
// (False unless overridden). FieldMapper only ever converts
// map[string]any to map[string]any, so it reports true for that pair and
// false otherwise.
func (f *FieldMapper) CanTransform(sourceType, targetType string) bool {
	return sourceType == "map" && targetType == "map"
}

// SupportedTransforms implements transform.py's get_supported_transforms,
// listing every (source, target) type-tag pair this provider supports.
func (f *FieldMapper) SupportedTransforms() [][2]string {
	return [][2]string{{"map", "map"}}
}
