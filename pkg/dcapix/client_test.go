// Copyright 2026 SGNL.ai, Inc.
package dcapix_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dcapix"
	"github.com/dc-api-x/dcapix/pkg/dcconfig"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
	"github.com/dc-api-x/dcapix/pkg/plugin"
)

type fakeHTTPAdapter struct {
	connected bool
	responses []adapter.HTTPResponse
	errs      []error
	calls     int
	lastOpts  adapter.RequestOptions
}

func (a *fakeHTTPAdapter) Connect(context.Context) error    { a.connected = true; return nil }
func (a *fakeHTTPAdapter) Disconnect(context.Context) error { a.connected = false; return nil }
func (a *fakeHTTPAdapter) IsConnected() bool                { return a.connected }
func (a *fakeHTTPAdapter) SetOption(string, any)            {}

func (a *fakeHTTPAdapter) Request(_ context.Context, _, _ string, opts adapter.RequestOptions) (*adapter.HTTPResponse, error) {
	idx := a.calls
	a.calls++
	a.lastOpts = opts

	if idx < len(a.errs) && a.errs[idx] != nil {
		return nil, a.errs[idx]
	}

	if idx < len(a.responses) {
		return &a.responses[idx], nil
	}

	return &adapter.HTTPResponse{Status: 200}, nil
}

func baseConfig() dcconfig.Config {
	cfg := dcconfig.Defaults()
	cfg.URL = "https://api.example.com"

	return cfg
}

func newTestClient(t *testing.T, ad adapter.Adapter) *dcapix.Client {
	t.Helper()

	c, err := dcapix.New(context.Background(), baseConfig(), dcapix.Options{
		Username: "user",
		Password: "pass",
		Adapter:  ad,
		Registry: plugin.NewRegistry(nil),
	})
	require.NoError(t, err)

	return c
}

func TestNew_MissingCredentialsFailsWithConfigurationError(t *testing.T) {
	cfg := baseConfig()

	_, err := dcapix.New(context.Background(), cfg, dcapix.Options{Registry: plugin.NewRegistry(nil)})
	require.Error(t, err)

	var ce *dcerrors.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestClient_Get_SuccessBuildsApiResponse(t *testing.T) {
	ad := &fakeHTTPAdapter{responses: []adapter.HTTPResponse{{Status: 200, Body: []byte(`{"ok":true}`)}}}
	c := newTestClient(t, ad)

	resp, err := c.Get(context.Background(), "/widgets", nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_Get_FailureExtractsWireFields(t *testing.T) {
	ad := &fakeHTTPAdapter{responses: []adapter.HTTPResponse{
		{Status: 400, Body: []byte(`{"error":"bad input","code":"E1","details":"field x"}`)},
	}}
	c := newTestClient(t, ad)

	resp, err := c.Get(context.Background(), "/widgets", nil)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "bad input", resp.Error.Detail)
}

func TestClient_Get_401BecomesAuthenticationError(t *testing.T) {
	ad := &fakeHTTPAdapter{responses: []adapter.HTTPResponse{{Status: 401}}}
	c := newTestClient(t, ad)

	_, err := c.Get(context.Background(), "/widgets", nil)
	require.Error(t, err)

	var ae *dcerrors.AuthenticationError
	assert.ErrorAs(t, err, &ae)
}

// Scenario 4: error hook suppresses exception (spec.md §8.4).
func TestClient_ErrorHook_Suppresses(t *testing.T) {
	ad := &fakeHTTPAdapter{errs: []error{errors.New("boom")}}
	c := newTestClient(t, ad)

	c.Hooks().AddErrorHook(hookFunc(func(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error) {
		resp := dcapi.NewFailure(599, dcerrors.FromHTTPStatus(599, "", cause.Error(), "", ""), nil)

		return &resp, nil
	}))

	resp, err := c.Get(context.Background(), "/widgets", nil)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, 599, resp.StatusCode)
}

// Scenario 5: AdapterType mismatch (spec.md §8.5).
func TestClient_ExecuteQuery_OnHTTPAdapter_Fails(t *testing.T) {
	ad := &fakeHTTPAdapter{}
	c := newTestClient(t, ad)

	_, err := c.ExecuteQuery(context.Background(), "select 1")
	require.Error(t, err)

	var ate *dcerrors.AdapterTypeError
	assert.ErrorAs(t, err, &ate)
}

// Scenario 7: test-connection maps exception to message (spec.md §8.7).
func TestClient_TestConnection_Success(t *testing.T) {
	ad := &fakeHTTPAdapter{responses: []adapter.HTTPResponse{{Status: 200}}}
	c := newTestClient(t, ad)

	ok, msg := c.TestConnection(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Connection successful (status 200)", msg)
}

func TestClient_TestConnection_Failure(t *testing.T) {
	ad := &fakeHTTPAdapter{errs: []error{errors.New("boom")}}
	c := newTestClient(t, ad)

	ok, msg := c.TestConnection(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "Connection failed: request error: request failed: boom", msg)
}

type hookFunc func(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error)

func (f hookFunc) HandleError(ctx context.Context, method, url string, cause error) (*dcapi.ApiResponse, error) {
	return f(ctx, method, url, cause)
}
