// Copyright 2025 SGNL.ai, Inc.
package hooks

import (
	"context"

	"go.uber.org/zap"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/auth"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dclog/fields"
)

// LoggingHook logs request/response at debug, grounded on the teacher's
// per-datasource zaplogger.Info calls around every request (e.g.
// pkg/crowdstrike/datasource_graphql.go's "Starting datasource request" /
// "Sending HTTP request to datasource").
type LoggingHook struct {
	Logger *zap.Logger
}

var (
	_ RequestHook     = (*LoggingHook)(nil)
	_ ResponseHook    = (*LoggingHook)(nil)
	_ ApiResponseHook = (*LoggingHook)(nil)
)

func NewLoggingHook(logger *zap.Logger) *LoggingHook {
	return &LoggingHook{Logger: logger}
}

func (h *LoggingHook) ProcessRequest(
	_ context.Context, method, url string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	h.Logger.Debug("dispatching request", fields.Method(method), fields.URL(url))

	return opts, nil
}

func (h *LoggingHook) ProcessResponse(
	_ context.Context, method, url string, raw adapter.HTTPResponse,
) (adapter.HTTPResponse, error) {
	h.Logger.Debug("received response", fields.Method(method), fields.URL(url), fields.StatusCode(raw.Status))

	return raw, nil
}

func (h *LoggingHook) ProcessApiResponse(
	_ context.Context, method, url string, _ adapter.HTTPResponse, api dcapi.ApiResponse,
) (dcapi.ApiResponse, error) {
	h.Logger.Debug("built api response",
		fields.Method(method), fields.URL(url), zap.Bool("success", api.Success))

	return api, nil
}

// HeadersHook merges a static mapping into every request's headers.
// Existing caller-supplied header keys win, per spec.md §4.4.
type HeadersHook struct {
	Headers map[string]string
}

var _ RequestHook = (*HeadersHook)(nil)

func NewHeadersHook(h map[string]string) *HeadersHook {
	return &HeadersHook{Headers: h}
}

func (h *HeadersHook) ProcessRequest(
	_ context.Context, _, _ string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	merged := make(map[string]string, len(h.Headers)+len(opts.Headers))

	for k, v := range h.Headers {
		merged[k] = v
	}

	for k, v := range opts.Headers {
		merged[k] = v
	}

	opts.Headers = merged

	return opts, nil
}

// AuthHook injects headers from an AuthProvider, merging into an existing
// Headers mapping if present, per spec.md §4.4.
type AuthHook struct {
	Provider auth.Provider
}

var _ RequestHook = (*AuthHook)(nil)

func NewAuthHook(p auth.Provider) *AuthHook {
	return &AuthHook{Provider: p}
}

func (h *AuthHook) ProcessRequest(
	ctx context.Context, _, _ string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	if !h.Provider.IsAuthenticated() {
		if err := h.Provider.Authenticate(ctx); err != nil {
			return opts, err
		}
	}

	authHeaders := h.Provider.GetAuthHeaders()
	if len(authHeaders) == 0 {
		return opts, nil
	}

	merged := make(map[string]string, len(opts.Headers)+len(authHeaders))

	for k, v := range authHeaders {
		merged[k] = v
	}

	for k, v := range opts.Headers {
		merged[k] = v
	}

	opts.Headers = merged

	return opts, nil
}
