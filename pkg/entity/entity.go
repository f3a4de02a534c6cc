// Copyright 2026 SGNL.ai, Inc.
package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
	"github.com/dc-api-x/dcapix/pkg/pagination"
)

// Client is the subset of pkg/dcapix.Client an Entity needs: the
// HTTP-family verbs, per spec.md §4.1.
type Client interface {
	Get(ctx context.Context, endpoint string, params map[string]string) (dcapi.ApiResponse, error)
	Post(ctx context.Context, endpoint string, body any) (dcapi.ApiResponse, error)
	Put(ctx context.Context, endpoint string, body any) (dcapi.ApiResponse, error)
	Patch(ctx context.Context, endpoint string, body any) (dcapi.ApiResponse, error)
	Delete(ctx context.Context, endpoint string) (dcapi.ApiResponse, error)
}

// Codec converts between a typed model T and the untyped dict shape the
// wire protocol speaks, per spec.md §4.6's "Data-mapping rule": outgoing
// data prefers a model-dump method, incoming data prefers a validating
// constructor. Go has neither reflection-driven default, so the caller
// supplies both directions explicitly.
type Codec[T any] struct {
	// ToMap serializes a model to its wire representation.
	ToMap func(T) (map[string]any, error)
	// FromMap deserializes a wire representation into a model, preferring
	// validation over a bare field copy (the "prefer a validate
	// construction" rule).
	FromMap func(map[string]any) (T, error)
}

// ListOptions carries the filter/sort/paging parameters of a List call,
// per spec.md §4.6.
type ListOptions struct {
	Filter *EntityFilter
	Sort   Sorter
	Limit  int
	Offset int
	Params map[string]string
}

// Sorter is satisfied by EntitySorter and MultiFieldSorter.
type Sorter interface {
	ToParams() map[string]string
}

func (o ListOptions) toParams() map[string]string {
	out := make(map[string]string, len(o.Params))

	for k, v := range o.Params {
		out[k] = v
	}

	if o.Filter != nil {
		for k, v := range o.Filter.ToParams() {
			out[k] = v
		}
	}

	if o.Sort != nil {
		for k, v := range o.Sort.ToParams() {
			out[k] = v
		}
	}

	if o.Limit > 0 {
		out["limit"] = fmt.Sprintf("%d", o.Limit)
	}

	if o.Offset > 0 {
		out["offset"] = fmt.Sprintf("%d", o.Offset)
	}

	return out
}

// Descriptor is spec.md §3's "Entity descriptor": the per-entity
// class-level metadata (`resource_name, id_field, model_class, ...,
// pagination_config`) that binds an Entity to a resource and a paging
// policy. This is distinct from `pkg/schema.Definition`, which is spec.md
// §3's separate `SchemaDefinition` entity ({name, description, fields,
// required_fields}, round-tripping to JSON Schema) — the two were
// conflated under one name early in this port; they are unrelated
// concepts in spec.md and now have unrelated types.
type Descriptor struct {
	ResourceName     string
	BasePath         string
	PaginationConfig pagination.Config
}

// Entity binds a resource name to a Client plus an optional Codec, per
// spec.md §4.6. The zero value is not usable; construct with New.
type Entity[T any] struct {
	client Client
	schema Descriptor
	codec  Codec[T]
	path   string
}

// New builds an Entity for schema.ResourceName, failing with a
// ValidationError if the resource name is empty, per spec.md §4.6.
func New[T any](client Client, schema Descriptor, codec Codec[T]) (*Entity[T], error) {
	if schema.ResourceName == "" {
		return nil, dcerrors.NewValidationError("entity: resource_name must not be empty")
	}

	return &Entity[T]{client: client, schema: schema, codec: codec, path: resourcePath(schema.BasePath, schema.ResourceName)}, nil
}

// resourcePath implements spec.md §4.6's "Resource path" rule:
// {base_path.rstrip('/')}/{resource_name} when base_path is non-empty,
// else just resource_name.
func resourcePath(basePath, resourceName string) string {
	if basePath == "" {
		return resourceName
	}

	return strings.TrimRight(basePath, "/") + "/" + resourceName
}

func (e *Entity[T]) decode(data any) (T, error) {
	var zero T

	m, ok := data.(map[string]any)
	if !ok {
		return zero, fmt.Errorf("entity: expected an object body, got %T", data)
	}

	if e.codec.FromMap == nil {
		if t, ok := any(m).(T); ok {
			return t, nil
		}

		return zero, fmt.Errorf("entity: no codec configured to decode %T", m)
	}

	return e.codec.FromMap(m)
}

// Get fetches one record at {resource_path}/{id}, per spec.md §4.6.
func (e *Entity[T]) Get(ctx context.Context, id string, params map[string]string) (T, error) {
	var zero T

	resp, err := e.client.Get(ctx, fmt.Sprintf("%s/%s", e.path, id), params)
	if err != nil {
		return zero, err
	}

	if !resp.Success {
		return zero, wireErr(resp, "get")
	}

	return e.decode(resp.Data)
}

// List returns the raw ApiResponse for a filtered/sorted listing, per
// spec.md §4.6 ("Returns the underlying ApiResponse").
func (e *Entity[T]) List(ctx context.Context, opts ListOptions) (dcapi.ApiResponse, error) {
	return e.client.Get(ctx, e.path, opts.toParams())
}

// Paginate defers to the pagination engine using the entity's
// PaginationConfig, per spec.md §4.6.
func (e *Entity[T]) Paginate(ctx context.Context, opts ListOptions) ([]T, error) {
	req := requesterAdapter{client: e.client}

	cfg := e.schema.PaginationConfig
	cfg.Params = mergeParams(cfg.Params, opts.toParams())

	return pagination.Paginate(ctx, string(cfg.Strategy), req, e.path, cfg, func(raw any) (T, error) {
		return e.decode(raw)
	})
}

// Create POSTs data to the resource collection, per spec.md §4.6.
func (e *Entity[T]) Create(ctx context.Context, data T) (T, error) {
	var zero T

	body, err := e.encode(data)
	if err != nil {
		return zero, err
	}

	resp, err := e.client.Post(ctx, e.path, body)
	if err != nil {
		return zero, err
	}

	if !resp.Success {
		return zero, wireErr(resp, "create")
	}

	return e.decode(resp.Data)
}

// Update PUTs data to {resource_path}/{id}, per spec.md §4.6.
func (e *Entity[T]) Update(ctx context.Context, id string, data T) (T, error) {
	var zero T

	body, err := e.encode(data)
	if err != nil {
		return zero, err
	}

	resp, err := e.client.Put(ctx, fmt.Sprintf("%s/%s", e.path, id), body)
	if err != nil {
		return zero, err
	}

	if !resp.Success {
		return zero, wireErr(resp, "update")
	}

	return e.decode(resp.Data)
}

// PartialUpdate PATCHes data to {resource_path}/{id}, per spec.md §4.6.
func (e *Entity[T]) PartialUpdate(ctx context.Context, id string, data map[string]any) (T, error) {
	var zero T

	resp, err := e.client.Patch(ctx, fmt.Sprintf("%s/%s", e.path, id), data)
	if err != nil {
		return zero, err
	}

	if !resp.Success {
		return zero, wireErr(resp, "partial_update")
	}

	return e.decode(resp.Data)
}

// Delete removes {resource_path}/{id}, returning true on success.
func (e *Entity[T]) Delete(ctx context.Context, id string) (bool, error) {
	resp, err := e.client.Delete(ctx, fmt.Sprintf("%s/%s", e.path, id))
	if err != nil {
		return false, err
	}

	return resp.Success, nil
}

// BulkCreate POSTs items to {resource_path}/bulk, per spec.md §4.6.
func (e *Entity[T]) BulkCreate(ctx context.Context, items []T) ([]T, error) {
	bodies := make([]map[string]any, len(items))

	for i, item := range items {
		m, err := e.encode(item)
		if err != nil {
			return nil, err
		}

		bodies[i] = m
	}

	resp, err := e.client.Post(ctx, e.path+"/bulk", bodies)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, wireErr(resp, "bulk_create")
	}

	return e.decodeList(resp.Data)
}

// BulkUpdateItem pairs one id with its partial update payload, per
// spec.md §4.6's "list of (id, data)".
type BulkUpdateItem struct {
	ID   string
	Data map[string]any
}

// BulkUpdate PATCHes items to {resource_path}/bulk.
func (e *Entity[T]) BulkUpdate(ctx context.Context, items []BulkUpdateItem) ([]T, error) {
	payload := make([]map[string]any, len(items))
	for i, it := range items {
		payload[i] = map[string]any{"id": it.ID, "data": it.Data}
	}

	resp, err := e.client.Patch(ctx, e.path+"/bulk", payload)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, wireErr(resp, "bulk_update")
	}

	return e.decodeList(resp.Data)
}

// BulkDelete POSTs {"ids": ids} to {resource_path}/bulk/delete, not to the
// {resource_path}/bulk path BulkCreate and BulkUpdate use, returning true
// on success.
func (e *Entity[T]) BulkDelete(ctx context.Context, ids []string) (bool, error) {
	resp, err := e.client.Post(ctx, e.path+"/bulk/delete", map[string]any{"ids": ids})
	if err != nil {
		return false, err
	}

	return resp.Success, nil
}

// CustomAction maps method to the underlying Client verb, per spec.md
// §4.6, rejecting unknown verbs with a plain error (not a typed dcerrors
// value).
func (e *Entity[T]) CustomAction(
	ctx context.Context, action, id, method string, data map[string]any, params map[string]string,
) (dcapi.ApiResponse, error) {
	path := e.path

	if id != "" {
		path = fmt.Sprintf("%s/%s", path, id)
	}

	path = fmt.Sprintf("%s/%s", path, action)

	switch strings.ToUpper(method) {
	case "", "GET":
		return e.client.Get(ctx, path, params)
	case "POST":
		return e.client.Post(ctx, path, data)
	case "PUT":
		return e.client.Put(ctx, path, data)
	case "PATCH":
		return e.client.Patch(ctx, path, data)
	case "DELETE":
		return e.client.Delete(ctx, path)
	default:
		return dcapi.ApiResponse{}, fmt.Errorf("entity: custom_action does not support method %q", method)
	}
}

func (e *Entity[T]) encode(v T) (map[string]any, error) {
	if e.codec.ToMap == nil {
		if m, ok := any(v).(map[string]any); ok {
			return m, nil
		}

		return nil, fmt.Errorf("entity: no codec configured to encode %T", v)
	}

	return e.codec.ToMap(v)
}

func (e *Entity[T]) decodeList(data any) ([]T, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("entity: expected a list response, got %T", data)
	}

	out := make([]T, 0, len(items))

	for _, raw := range items {
		t, err := e.decode(raw)
		if err != nil {
			return nil, err
		}

		out = append(out, t)
	}

	return out, nil
}

func wireErr(resp dcapi.ApiResponse, op string) error {
	detail := "unknown error"
	if resp.Error != nil {
		detail = resp.Error.Detail
	}

	return dcerrors.NewApiError(op, detail)
}

func mergeParams(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))

	for k, v := range base {
		out[k] = v
	}

	for k, v := range extra {
		out[k] = v
	}

	return out
}

// requesterAdapter adapts Client to pagination.Requester.
type requesterAdapter struct {
	client Client
}

func (r requesterAdapter) Get(ctx context.Context, endpoint string, params map[string]string) (dcapi.ApiResponse, error) {
	return r.client.Get(ctx, endpoint, params)
}
