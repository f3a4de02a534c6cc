// Copyright 2025 SGNL.ai, Inc.

// Package hooks implements the ordered, typed interceptors of spec.md §4.4.
// spec.md's source duck-types a hook object by method presence; per §9 this
// port replaces that with one narrow interface per hook category. A value
// that conceptually implements several categories simply satisfies several
// of these interfaces, and HookManager accepts each through its own
// Add* method (AddRequestHook, AddResponseHook, ...).
package hooks

import (
	"context"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
)

// RequestHook mutates the outgoing method/url/opts before dispatch:
// (method, url, kwargs) → kwargs, per spec.md §4.4.
type RequestHook interface {
	ProcessRequest(ctx context.Context, method, url string, opts adapter.RequestOptions) (adapter.RequestOptions, error)
}

// ResponseHook sees the transport-level response: (method, url, raw) → raw.
type ResponseHook interface {
	ProcessResponse(ctx context.Context, method, url string, raw adapter.HTTPResponse) (adapter.HTTPResponse, error)
}

// ApiResponseHook sees the unified envelope: (method, url, raw, api) → api.
type ApiResponseHook interface {
	ProcessApiResponse(
		ctx context.Context, method, url string, raw adapter.HTTPResponse, api dcapi.ApiResponse,
	) (dcapi.ApiResponse, error)
}

// ErrorHook may suppress an error by returning a non-nil ApiResponse:
// (method, url, exception) → ApiResponse | null.
type ErrorHook interface {
	HandleError(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error)
}

// RequestHookFunc adapts a plain function to RequestHook.
type RequestHookFunc func(ctx context.Context, method, url string, opts adapter.RequestOptions) (adapter.RequestOptions, error)

func (f RequestHookFunc) ProcessRequest(
	ctx context.Context, method, url string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	return f(ctx, method, url, opts)
}

// ResponseHookFunc adapts a plain function to ResponseHook.
type ResponseHookFunc func(ctx context.Context, method, url string, raw adapter.HTTPResponse) (adapter.HTTPResponse, error)

func (f ResponseHookFunc) ProcessResponse(
	ctx context.Context, method, url string, raw adapter.HTTPResponse,
) (adapter.HTTPResponse, error) {
	return f(ctx, method, url, raw)
}

// ApiResponseHookFunc adapts a plain function to ApiResponseHook.
type ApiResponseHookFunc func(
	ctx context.Context, method, url string, raw adapter.HTTPResponse, api dcapi.ApiResponse,
) (dcapi.ApiResponse, error)

func (f ApiResponseHookFunc) ProcessApiResponse(
	ctx context.Context, method, url string, raw adapter.HTTPResponse, api dcapi.ApiResponse,
) (dcapi.ApiResponse, error) {
	return f(ctx, method, url, raw, api)
}

// ErrorHookFunc adapts a plain function to ErrorHook.
type ErrorHookFunc func(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error)

func (f ErrorHookFunc) HandleError(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error) {
	return f(ctx, method, url, cause)
}
