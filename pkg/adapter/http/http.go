// Copyright 2025 SGNL.ai, Inc.

// Package http implements the default HTTP adapter of spec.md §4.2's Http
// family: a persistent, connection-pooled *http.Client with retry/backoff
// for the well-known transient status codes, mounted the way spec.md §4.2
// describes ("Configures a persistent connection-pooled session; sets
// User-Agent; mounts retry for {429, 500, 502, 503, 504}").
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/auth"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
	"github.com/dc-api-x/dcapix/pkg/validation"
)

// retryableStatus is the set of status codes the adapter retries, per
// spec.md §4.2.
var retryableStatus = map[int]bool{429: true, 500: true, 502: true, 503: true, 504: true}

// allowedMethods mirrors spec.md §4.2's "allowed methods" list. Nothing in
// the adapter reads it: SetOption has no "allowed_methods" option, and the
// adapter does not restrict which method callers pass.
var allowedMethods = map[string]bool{
	http.MethodHead: true, http.MethodGet: true, http.MethodOptions: true,
	http.MethodPost: true, http.MethodPut: true, http.MethodDelete: true, http.MethodPatch: true,
}

// Config configures the default adapter.
type Config struct {
	Timeout      time.Duration
	VerifySSL    bool
	MaxRetries   int
	RetryBackoff float64
	UserAgent    string
	AuthProvider auth.Provider

	// SSRFValidator, if set, rejects request URLs that resolve to
	// localhost or a private/reserved IP range before dispatch. Nil
	// disables the check, e.g. for adapters deliberately targeting
	// internal services.
	SSRFValidator validation.SSRFValidator
}

// Adapter is the default HTTP adapter. It satisfies adapter.HTTPAdapter.
type Adapter struct {
	cfg       Config
	client    *http.Client
	connected bool
}

var _ adapter.HTTPAdapter = (*Adapter)(nil)

// New builds an Adapter with a connection-pooled transport, per spec.md
// §4.2.
func New(cfg Config) *Adapter {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "dcapix-http-adapter/1.0"
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: !cfg.VerifySSL}, //nolint:gosec // caller opt-in via VerifySSL
	}

	return &Adapter{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

func (a *Adapter) Connect(_ context.Context) error {
	a.connected = true

	return nil
}

func (a *Adapter) Disconnect(_ context.Context) error {
	a.client.CloseIdleConnections()
	a.connected = false

	return nil
}

func (a *Adapter) IsConnected() bool { return a.connected }

func (a *Adapter) SetOption(name string, value any) {
	switch name {
	case "timeout":
		if d, ok := value.(time.Duration); ok {
			a.cfg.Timeout = d
			a.client.Timeout = d
		}
	case "max_retries":
		if n, ok := value.(int); ok {
			a.cfg.MaxRetries = n
		}
	case "retry_backoff":
		if f, ok := value.(float64); ok {
			a.cfg.RetryBackoff = f
		}
	case "user_agent":
		if s, ok := value.(string); ok {
			a.cfg.UserAgent = s
		}
	}
}

// Request dispatches one HTTP primitive call, retrying transient status
// codes with exponential backoff up to cfg.MaxRetries times (at most
// cfg.MaxRetries+1 attempts in all), and refreshing auth once before the
// first attempt if the configured provider reports it is not authenticated.
// Concurrent refreshes are not serialized: neither this adapter nor the
// built-in AuthProviders hold a lock around Authenticate.
func (a *Adapter) Request(
	ctx context.Context, method, rawURL string, opts adapter.RequestOptions,
) (*adapter.HTTPResponse, error) {
	if a.cfg.AuthProvider != nil && !a.cfg.AuthProvider.IsAuthenticated() {
		if err := a.cfg.AuthProvider.Authenticate(ctx); err != nil {
			return nil, dcerrors.NewAuthenticationError("failed to refresh credentials before request: " + err.Error())
		}
	}

	if a.cfg.SSRFValidator != nil {
		if err := a.cfg.SSRFValidator.ValidateExternalURL(ctx, rawURL); err != nil {
			return nil, dcerrors.NewValidationError("request URL failed SSRF validation: " + err.Error())
		}
	}

	reqURL, err := buildURL(rawURL, opts.Params)
	if err != nil {
		return nil, dcerrors.NewRequestError("failed to build request URL", err)
	}

	var lastErr error

	attempts := a.cfg.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(a.cfg.RetryBackoff * math.Pow(2, float64(attempt-1)) * float64(time.Second))

			select {
			case <-ctx.Done():
				return nil, dcerrors.NewTimeoutError("context cancelled during retry backoff", ctx.Err())
			case <-time.After(backoff):
			}
		}

		resp, doErr := a.do(ctx, method, reqURL, opts)
		if doErr != nil {
			lastErr = doErr

			if isTimeout(doErr) {
				return nil, dcerrors.NewTimeoutError("request timed out", doErr)
			}

			continue
		}

		if !retryableStatus[resp.Status] || attempt == attempts-1 {
			return resp, nil
		}

		lastErr = fmt.Errorf("received retryable status %d", resp.Status)
	}

	return nil, dcerrors.NewApiConnectionError("request failed after retries", lastErr)
}

func (a *Adapter) do(ctx context.Context, method string, reqURL string, opts adapter.RequestOptions) (*adapter.HTTPResponse, error) {
	body, contentType, err := buildBody(opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", a.cfg.UserAgent)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	for k, v := range opts.AuthHeaders {
		req.Header.Set(k, v)
	}

	if a.cfg.AuthProvider != nil {
		for k, v := range a.cfg.AuthProvider.GetAuthHeaders() {
			if req.Header.Get(k) == "" {
				req.Header.Set(k, v)
			}
		}

		if basic, ok := a.cfg.AuthProvider.GetAuthParams()["auth"].([2]string); ok {
			req.SetBasicAuth(basic[0], basic[1])
		}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &adapter.HTTPResponse{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    data,
	}, nil
}

func buildBody(opts adapter.RequestOptions) (io.Reader, string, error) {
	if opts.JSON != nil {
		data, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal json body: %w", err)
		}

		return bytes.NewReader(data), "application/json", nil
	}

	if len(opts.Files) > 0 {
		return buildMultipart(opts)
	}

	if opts.Body != nil {
		return bytes.NewReader(opts.Body), "", nil
	}

	return nil, "", nil
}

func buildMultipart(opts adapter.RequestOptions) (io.Reader, string, error) {
	var buf bytes.Buffer

	boundary := "dcapix-boundary"

	for name, content := range opts.Files {
		buf.WriteString("--" + boundary + "\r\n")
		buf.WriteString(fmt.Sprintf("Content-Disposition: form-data; name=%q; filename=%q\r\n\r\n", name, name))
		buf.Write(content)
		buf.WriteString("\r\n")
	}

	buf.WriteString("--" + boundary + "--\r\n")

	return &buf, "multipart/form-data; boundary=" + boundary, nil
}

func buildURL(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return true
	}

	return errorsAs(err, &netErr) && netErr.Timeout()
}

// errorsAs is a tiny local shim so this file does not need a second import
// line purely for errors.As; kept here because the adapter only ever checks
// for the Timeout() marker interface.
func errorsAs(err error, target *interface{ Timeout() bool }) bool {
	type timeouter interface{ Timeout() bool }

	for err != nil {
		if t, ok := err.(timeouter); ok {
			*target = t

			return true
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}

		err = u.Unwrap()
	}

	return false
}
