// Copyright 2025 SGNL.ai, Inc.
package hooks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/hooks"
)

func TestManager_ProcessRequest_OrderIsStable(t *testing.T) {
	m := hooks.NewManager()

	var order []string

	m.AddRequestHook(hooks.RequestHookFunc(func(_ context.Context, _, _ string, opts adapter.RequestOptions) (adapter.RequestOptions, error) {
		order = append(order, "first")

		return opts, nil
	}))
	m.AddRequestHook(hooks.RequestHookFunc(func(_ context.Context, _, _ string, opts adapter.RequestOptions) (adapter.RequestOptions, error) {
		order = append(order, "second")

		return opts, nil
	}))

	_, err := m.ProcessRequest(context.Background(), "GET", "https://example.com", adapter.RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestManager_HandleError_FirstNonNilWins(t *testing.T) {
	m := hooks.NewManager()

	var secondCalled bool

	m.AddErrorHook(hooks.ErrorHookFunc(func(_ context.Context, _, _ string, _ error) (*dcapi.ApiResponse, error) {
		resp := dcapi.NewSuccess(200, nil, nil)

		return &resp, nil
	}))
	m.AddErrorHook(hooks.ErrorHookFunc(func(_ context.Context, _, _ string, _ error) (*dcapi.ApiResponse, error) {
		secondCalled = true

		return nil, nil
	}))

	resp, err := m.HandleError(context.Background(), "GET", "https://example.com", errors.New("boom"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, secondCalled)
}

func TestManager_HandleError_AllNilMeansUnsuppressed(t *testing.T) {
	m := hooks.NewManager()

	m.AddErrorHook(hooks.ErrorHookFunc(func(_ context.Context, _, _ string, _ error) (*dcapi.ApiResponse, error) {
		return nil, nil
	}))

	resp, err := m.HandleError(context.Background(), "GET", "https://example.com", errors.New("boom"))
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestHeadersHook_CallerHeaderWins(t *testing.T) {
	h := hooks.NewHeadersHook(map[string]string{"X-Static": "yes", "X-Override": "static"})

	opts, err := h.ProcessRequest(context.Background(), "GET", "https://example.com",
		adapter.RequestOptions{Headers: map[string]string{"X-Override": "caller"}})
	require.NoError(t, err)

	assert.Equal(t, "yes", opts.Headers["X-Static"])
	assert.Equal(t, "caller", opts.Headers["X-Override"])
}

func TestLoggingHook_PassesThrough(t *testing.T) {
	h := hooks.NewLoggingHook(zap.NewNop())

	opts, err := h.ProcessRequest(context.Background(), "GET", "https://example.com",
		adapter.RequestOptions{Headers: map[string]string{"A": "b"}})
	require.NoError(t, err)
	assert.Equal(t, "b", opts.Headers["A"])

	raw, err := h.ProcessResponse(context.Background(), "GET", "https://example.com", adapter.HTTPResponse{Status: 200})
	require.NoError(t, err)
	assert.Equal(t, 200, raw.Status)
}
