// Copyright 2026 SGNL.ai, Inc.
package http

import (
	"context"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// AsyncAdapter is the async Http adapter of spec.md §4.2, grounded on
// ext/adapters/async_adapters.py's AsyncHttpAdapter: the real work happens
// in ARequest, and the synchronous Request method is a concrete (not
// missing) implementation that rejects the call with a descriptive error
// instead of performing it — the same "sync wrapper raises" shape the
// Python original uses (its sync request() raises NotImplementedError
// telling the caller to await arequest() instead).
type AsyncAdapter struct {
	*Adapter
}

var (
	_ adapter.HTTPAdapter      = (*AsyncAdapter)(nil)
	_ adapter.AsyncHTTPAdapter = (*AsyncAdapter)(nil)
)

// NewAsync builds an AsyncAdapter around a default Adapter configured with
// cfg.
func NewAsync(cfg Config) *AsyncAdapter {
	return &AsyncAdapter{Adapter: New(cfg)}
}

// ARequest performs the request, delegating to the embedded Adapter's
// implementation. Go has no native coroutine/await distinction, so
// "async" here only marks the type as the one a Client should route
// through ARequest rather than Request — the call itself is synchronous
// under the hood, same as every other adapter in this package.
func (a *AsyncAdapter) ARequest(
	ctx context.Context, method, url string, opts adapter.RequestOptions,
) (*adapter.HTTPResponse, error) {
	return a.Adapter.Request(ctx, method, url, opts)
}

// Request shadows the embedded Adapter's Request, rejecting the sync call
// per spec.md §4.2: AsyncAdapter only does work through ARequest.
func (a *AsyncAdapter) Request(
	_ context.Context, method, url string, _ adapter.RequestOptions,
) (*adapter.HTTPResponse, error) {
	return nil, dcerrors.NewRequestError(
		"cannot call Request on an AsyncAdapter; use ARequest instead", nil,
	)
}
