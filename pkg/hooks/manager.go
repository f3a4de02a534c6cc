// Copyright 2025 SGNL.ai, Inc.
package hooks

import (
	"context"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
)

// Manager is the HookManager facade of spec.md §4.4: it holds one ordered
// list per hook category and dispatches a call through every list whose
// category the caller registered it under. Unlike the Python source, a hook
// object is never classified by duck-typed method presence — callers use
// the matching Add* method for every interface a value satisfies.
//
// Manager makes no concurrency guarantee about mutating its lists while a
// pipeline call is in flight, per spec.md §5.
type Manager struct {
	request     []RequestHook
	response    []ResponseHook
	apiResponse []ApiResponseHook
	errorHooks  []ErrorHook
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddRequestHook(h RequestHook) { m.request = append(m.request, h) }

func (m *Manager) AddResponseHook(h ResponseHook) { m.response = append(m.response, h) }

func (m *Manager) AddApiResponseHook(h ApiResponseHook) { m.apiResponse = append(m.apiResponse, h) }

func (m *Manager) AddErrorHook(h ErrorHook) { m.errorHooks = append(m.errorHooks, h) }

// ClearHooks removes every registered hook from every category.
func (m *Manager) ClearHooks() {
	m.request = nil
	m.response = nil
	m.apiResponse = nil
	m.errorHooks = nil
}

// ProcessRequest runs every request hook in registration order, threading
// kwargs through each: effective_opts = h_n(...(h_1(opts))...).
func (m *Manager) ProcessRequest(
	ctx context.Context, method, url string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	var err error

	for _, h := range m.request {
		opts, err = h.ProcessRequest(ctx, method, url, opts)
		if err != nil {
			return opts, err
		}
	}

	return opts, nil
}

// ProcessResponse runs every response hook in registration order.
func (m *Manager) ProcessResponse(
	ctx context.Context, method, url string, raw adapter.HTTPResponse,
) (adapter.HTTPResponse, error) {
	var err error

	for _, h := range m.response {
		raw, err = h.ProcessResponse(ctx, method, url, raw)
		if err != nil {
			return raw, err
		}
	}

	return raw, nil
}

// ProcessApiResponse runs every api-response hook in registration order.
func (m *Manager) ProcessApiResponse(
	ctx context.Context, method, url string, raw adapter.HTTPResponse, api dcapi.ApiResponse,
) (dcapi.ApiResponse, error) {
	var err error

	for _, h := range m.apiResponse {
		api, err = h.ProcessApiResponse(ctx, method, url, raw, api)
		if err != nil {
			return api, err
		}
	}

	return api, nil
}

// HandleError runs every error hook in registration order; the first one
// that returns a non-nil ApiResponse wins and short-circuits the rest, per
// spec.md §4.1's error path and the testable property in §8 ("plugin
// on_error runs if and only if all error hooks returned null").
func (m *Manager) HandleError(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error) {
	for _, h := range m.errorHooks {
		resp, err := h.HandleError(ctx, method, url, cause)
		if err != nil {
			return nil, err
		}

		if resp != nil {
			return resp, nil
		}
	}

	return nil, nil
}
