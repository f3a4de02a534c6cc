// Copyright 2026 SGNL.ai, Inc.

// Package dcapix is the single entry point of spec.md §4.1: Client
// composes one protocol adapter, one auth provider, a HookManager and a
// set of Plugin instances, and drives the twelve-step request pipeline.
// Grounded on the teacher's per-datasource Client (pkg/okta, pkg/crowdstrike,
// pkg/pagerduty each hand-build an HTTP client + retry + auth wrapper around
// one SoR); this package generalizes that repeated shape into a single,
// protocol-agnostic orchestrator instead of one per vendor.
package dcapix

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	httpadapter "github.com/dc-api-x/dcapix/pkg/adapter/http"
	"github.com/dc-api-x/dcapix/pkg/auth"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dcconfig"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
	"github.com/dc-api-x/dcapix/pkg/dclog/fields"
	"github.com/dc-api-x/dcapix/pkg/hooks"
	"github.com/dc-api-x/dcapix/pkg/plugin"
)

// Options overrides individual Config fields at construction time, per
// spec.md §4.1's "Accepts either a Config value or individual parameters;
// individual parameters override Config fields."
type Options struct {
	URL          string
	Username     string
	Password     string
	Timeout      int
	VerifySSL    *bool
	MaxRetries   *int
	RetryBackoff *float64

	Adapter      adapter.Adapter
	AuthProvider auth.Provider
	Registry     *plugin.Registry
	Logger       *zap.Logger
}

// Client is the orchestrator of spec.md §4.1.
type Client struct {
	cfg     dcconfig.Config
	baseURL string

	ad       adapter.Adapter
	authProv auth.Provider
	hooks    *hooks.Manager
	registry *plugin.Registry
	plugins  []plugin.Plugin
	logger   *zap.Logger

	mu sync.Mutex
}

// New builds a Client from cfg overridden by opts, per the construction
// contract of spec.md §4.1. It fails with ConfigurationError if URL,
// Username, or Password end up missing and no explicit AuthProvider was
// supplied — protocol families that legitimately omit credentials pass
// their own auth.Provider in Options.
func New(ctx context.Context, cfg dcconfig.Config, opts Options) (*Client, error) {
	merged := mergeConfig(cfg, opts)

	if opts.AuthProvider == nil {
		if merged.Username == "" || merged.Password.Reveal() == "" {
			if merged.URL == "" {
				return nil, dcerrors.NewConfigurationError("url is required")
			}

			return nil, dcerrors.NewConfigurationError("username and password are required unless an explicit auth provider is supplied")
		}
	}

	if merged.URL == "" {
		return nil, dcerrors.NewConfigurationError("url is required")
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	authProv := opts.AuthProvider
	if authProv == nil {
		// Step 1 of spec.md §4.1's construction contract: instantiate a
		// BasicAuthProvider from (username, password) if none was given.
		authProv = auth.NewBasicProvider(merged.Username, merged.Password.Reveal())
	}

	ad := opts.Adapter
	if ad == nil {
		// Step 2: instantiate a default HTTP adapter if none was given.
		ad = httpadapter.New(httpadapter.Config{
			Timeout:      time.Duration(merged.Timeout) * time.Second,
			VerifySSL:    merged.VerifySSL,
			MaxRetries:   merged.MaxRetries,
			RetryBackoff: merged.RetryBackoff,
			AuthProvider: authProv,
		})
	}

	registry := opts.Registry
	if registry == nil {
		registry = plugin.Global()
	}

	c := &Client{
		cfg:      merged,
		baseURL:  merged.URL,
		ad:       ad,
		authProv: authProv,
		hooks:    hooks.NewManager(),
		registry: registry,
		logger:   logger,
	}

	c.hooks.AddRequestHook(hooks.NewAuthHook(authProv))
	c.hooks.AddRequestHook(hooks.NewLoggingHook(logger))
	c.hooks.AddResponseHook(hooks.NewLoggingHook(logger))

	// Step 3: append plugin instances (one per registered plugin class)
	// and call their initialize.
	registry.LoadPlugins(ctx, logger)
	c.plugins = registry.Plugins()

	// Step 4: connect the adapter.
	if err := ad.Connect(ctx); err != nil {
		return nil, dcerrors.NewApiConnectionError("failed to connect adapter", err)
	}

	return c, nil
}

func mergeConfig(cfg dcconfig.Config, opts Options) dcconfig.Config {
	merged := cfg

	if opts.URL != "" {
		merged.URL = opts.URL
	}

	if opts.Username != "" {
		merged.Username = opts.Username
	}

	if opts.Password != "" {
		merged.Password = dcconfig.NewSecret(opts.Password)
	}

	if opts.Timeout != 0 {
		merged.Timeout = opts.Timeout
	}

	if opts.VerifySSL != nil {
		merged.VerifySSL = *opts.VerifySSL
	}

	if opts.MaxRetries != nil {
		merged.MaxRetries = *opts.MaxRetries
	}

	if opts.RetryBackoff != nil {
		merged.RetryBackoff = *opts.RetryBackoff
	}

	return merged
}

// Hooks exposes the Client's HookManager so callers can register
// additional request/response/api-response/error hooks, per spec.md §4.4.
func (c *Client) Hooks() *hooks.Manager { return c.hooks }

// AddPlugin appends a Plugin instance directly, bypassing the Registry —
// useful for tests and for callers that construct a plugin without going
// through RegisterPlugin/LoadPlugins.
func (c *Client) AddPlugin(ctx context.Context, p plugin.Plugin) error {
	if err := p.Initialize(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.plugins = append(c.plugins, p)
	c.mu.Unlock()

	return nil
}

// buildURL implements step 1 of spec.md §4.1's pipeline: absolute
// endpoints pass through unchanged; relative ones join against baseURL.
func (c *Client) buildURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}

	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// VerbOptions carries the per-call overrides of spec.md §4.1's "Exposed
// verbs" signature: (endpoint, params?, body?, json?, headers?, files?,
// raw_response?).
type VerbOptions struct {
	Params      map[string]string
	Body        []byte
	JSON        any
	Headers     map[string]string
	Files       map[string][]byte
	RawResponse bool
}

func (c *Client) httpAdapter() (adapter.HTTPAdapter, error) {
	ha, ok := c.ad.(adapter.HTTPAdapter)
	if !ok {
		return nil, dcerrors.NewAdapterTypeError("HTTP verb", "HTTPAdapter")
	}

	return ha, nil
}

// Get issues a GET, per spec.md §4.1.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (dcapi.ApiResponse, error) {
	return c.Call(ctx, "GET", endpoint, VerbOptions{Params: params})
}

// Post issues a POST with body marshaled as JSON.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (dcapi.ApiResponse, error) {
	return c.Call(ctx, "POST", endpoint, VerbOptions{JSON: body})
}

// Put issues a PUT with body marshaled as JSON.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (dcapi.ApiResponse, error) {
	return c.Call(ctx, "PUT", endpoint, VerbOptions{JSON: body})
}

// Patch issues a PATCH with body marshaled as JSON.
func (c *Client) Patch(ctx context.Context, endpoint string, body any) (dcapi.ApiResponse, error) {
	return c.Call(ctx, "PATCH", endpoint, VerbOptions{JSON: body})
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string) (dcapi.ApiResponse, error) {
	return c.Call(ctx, "DELETE", endpoint, VerbOptions{})
}

// Call runs the full pipeline of spec.md §4.1 for one (method, endpoint,
// opts) operation. Every exposed verb (Get/Post/Put/Patch/Delete) is a
// thin wrapper over this.
func (c *Client) Call(ctx context.Context, method, endpoint string, vopts VerbOptions) (dcapi.ApiResponse, error) {
	ha, err := c.httpAdapter()
	if err != nil {
		return dcapi.ApiResponse{}, err
	}

	u := c.buildURL(endpoint)

	opts := adapter.RequestOptions{
		Params:  vopts.Params,
		Headers: vopts.Headers,
		Body:    vopts.Body,
		JSON:    vopts.JSON,
		Files:   vopts.Files,
	}

	resp, pipelineErr := c.runPipeline(ctx, ha, method, u, opts, vopts.RawResponse)
	if pipelineErr != nil {
		return c.handleError(ctx, method, u, opts, pipelineErr)
	}

	return resp, nil
}

func (c *Client) runPipeline(
	ctx context.Context, ha adapter.HTTPAdapter, method, u string, opts adapter.RequestOptions, rawResponse bool,
) (dcapi.ApiResponse, error) {
	// Step 2: request hooks.
	opts, err := c.hooks.ProcessRequest(ctx, method, u, opts)
	if err != nil {
		return dcapi.ApiResponse{}, err
	}

	// Step 3: plugin before_request, in registration order.
	for _, p := range c.plugins {
		opts, err = p.BeforeRequest(ctx, method, u, opts)
		if err != nil {
			return dcapi.ApiResponse{}, err
		}
	}

	// Step 4: dispatch.
	raw, err := ha.Request(ctx, method, u, opts)
	if err != nil {
		return dcapi.ApiResponse{}, err
	}

	// Step 5: plugin after_request.
	for _, p := range c.plugins {
		r, err := p.AfterRequest(ctx, method, u, *raw)
		if err != nil {
			return dcapi.ApiResponse{}, err
		}

		raw = &r
	}

	// Step 6: response hooks.
	rawVal, err := c.hooks.ProcessResponse(ctx, method, u, *raw)
	if err != nil {
		return dcapi.ApiResponse{}, err
	}

	raw = &rawVal

	// Step 7: raw_response short-circuit.
	if rawResponse {
		return dcapi.ApiResponse{
			Success:    raw.Status < 400,
			StatusCode: raw.Status,
			Data:       raw,
			Headers:    flattenHeaders(raw.Headers),
		}, nil
	}

	// Step 8: 401 always becomes AuthenticationError.
	if raw.Status == 401 {
		return dcapi.ApiResponse{}, dcerrors.NewAuthenticationError(fmt.Sprintf("received 401 from %s %s", method, u))
	}

	// Step 9: build ApiResponse.
	api := buildApiResponse(*raw)

	// Step 10: plugin before_response_processed.
	for _, p := range c.plugins {
		api, err = p.BeforeResponseProcessed(ctx, *raw, api)
		if err != nil {
			return dcapi.ApiResponse{}, err
		}
	}

	// Step 11: api-response hooks.
	api, err = c.hooks.ProcessApiResponse(ctx, method, u, *raw, api)
	if err != nil {
		return dcapi.ApiResponse{}, err
	}

	// Step 12: return.
	return api, nil
}

// handleError implements spec.md §4.1's error path. A ValidationError or
// AdapterTypeError is returned as it is, without reaching any hook or
// plugin. Any other error runs through every error hook in order; the
// first to return a non-nil ApiResponse suppresses the error. Absent that,
// plugin on_error runs with the same contract. If still unsuppressed, an
// ApiConnectionError, TimeoutError or AuthenticationError is returned
// unchanged, and any other cause is wrapped in a RequestError with the
// original error preserved via Unwrap (an untyped transport error included:
// it is not converted to ApiConnectionError).
func (c *Client) handleError(
	ctx context.Context, method, u string, opts adapter.RequestOptions, cause error,
) (dcapi.ApiResponse, error) {
	switch cause.(type) {
	case *dcerrors.ValidationError, *dcerrors.AdapterTypeError:
		return dcapi.ApiResponse{}, cause
	}

	resp, err := c.hooks.HandleError(ctx, method, u, cause)
	if err != nil {
		return dcapi.ApiResponse{}, err
	}

	if resp != nil {
		return *resp, nil
	}

	for _, p := range c.plugins {
		resp, err := p.OnError(ctx, method, u, cause, opts)
		if err != nil {
			return dcapi.ApiResponse{}, err
		}

		if resp != nil {
			return *resp, nil
		}
	}

	switch cause.(type) {
	case *dcerrors.ApiConnectionError, *dcerrors.TimeoutError, *dcerrors.AuthenticationError, *dcerrors.AdapterTypeError:
		return dcapi.ApiResponse{}, cause
	default:
		return dcapi.ApiResponse{}, dcerrors.NewRequestError("request failed", cause)
	}
}

// buildApiResponse implements spec.md §4.1.1: parse the body as JSON,
// falling back to text; success is status < 400; on failure, extract
// error/error_code/error_details from well-known keys, falling back to
// "HTTP {status}: {reason}".
func buildApiResponse(raw adapter.HTTPResponse) dcapi.ApiResponse {
	headers := flattenHeaders(raw.Headers)

	var body any

	if len(raw.Body) > 0 {
		var parsed any
		if json.Unmarshal(raw.Body, &parsed) == nil {
			body = parsed
		} else {
			body = string(raw.Body)
		}
	}

	if raw.Status < 400 {
		return dcapi.NewSuccess(raw.Status, body, headers)
	}

	errMsg, errCode, errDetails := extractWireFields(body)
	wireErr := dcerrors.FromHTTPStatus(raw.Status, httpReasonPhrase(raw.Status), errMsg, errCode, errDetails)

	return dcapi.NewFailure(raw.Status, wireErr, headers)
}

func extractWireFields(body any) (msg, code, details string) {
	m, ok := body.(map[string]any)
	if !ok {
		return "", "", ""
	}

	msg = firstString(m, "error", "message", "msg")
	code = firstString(m, "code", "error_code")
	details = firstString(m, "details", "error_details")

	return msg, code, details
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}

	return ""
}

func httpReasonPhrase(status int) string {
	switch status {
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 409:
		return "Conflict"
	case 429:
		return "Too Many Requests"
	case 500:
		return "Internal Server Error"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	default:
		return ""
	}
}

func flattenHeaders(h map[string][]string) map[string]string {
	out := make(map[string]string, len(h))

	for k, v := range h {
		if len(v) > 0 {
			out[k] = strings.Join(v, ", ")
		}
	}

	return out
}

// TestConnection implements spec.md §4.1's "Connection test": a GET to the
// synthetic "ping" endpoint with raw_response=true, mapping any returned
// error to a human-readable failure message.
func (c *Client) TestConnection(ctx context.Context) (bool, string) {
	resp, err := c.Call(ctx, "GET", "ping", VerbOptions{RawResponse: true})
	if err != nil {
		return false, "Connection failed: " + err.Error()
	}

	return true, fmt.Sprintf("Connection successful (status %d)", resp.StatusCode)
}

// Close implements spec.md §4.1's "Disposal": disconnect the adapter, call
// Shutdown on every plugin, and swallow/log errors from each cleanup
// independently.
func (c *Client) Close(ctx context.Context) {
	if err := c.ad.Disconnect(ctx); err != nil {
		c.logger.Warn("failed to disconnect adapter cleanly", zap.Error(err))
	}

	for _, p := range c.plugins {
		if err := p.Shutdown(ctx); err != nil {
			c.logger.Warn("plugin failed to shut down cleanly", fields.Plugin(fmt.Sprintf("%T", p)), zap.Error(err))
		}
	}
}
