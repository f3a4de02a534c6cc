// Copyright 2025 SGNL.ai, Inc.

// Package plugin implements the Plugin contract and Plugin Registry of
// spec.md §4.4/§4.7. A Plugin is tied to one Client instance (pkg/dcapix);
// the Registry is the process-wide, discover-once holder of named
// implementations for every extension axis, per spec.md §3's "Ownership &
// lifecycle" and §9's "init → load → freeze" guidance.
package plugin

import (
	"context"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcapi"
)

// Plugin is the Client-scoped extension contract of spec.md §4.4. Every
// method is optional in the Python source (defaulting to identity); the Go
// rendition expresses "optional" as an embeddable NoopPlugin base that
// callers compose into their own plugin type and override selectively —
// the same pattern the teacher uses for its EntityHandler default
// implementations (e.g. pkg/aws's handler types each implement only the
// subset of List/Get they need).
type Plugin interface {
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	BeforeRequest(ctx context.Context, method, url string, opts adapter.RequestOptions) (adapter.RequestOptions, error)
	AfterRequest(ctx context.Context, method, url string, raw adapter.HTTPResponse) (adapter.HTTPResponse, error)
	BeforeResponseProcessed(ctx context.Context, raw adapter.HTTPResponse, api dcapi.ApiResponse) (dcapi.ApiResponse, error)
	OnError(ctx context.Context, method, url string, cause error, opts adapter.RequestOptions) (*dcapi.ApiResponse, error)
}

// NoopPlugin implements every Plugin method as the identity operation.
// Embed it in a concrete plugin type and override only the methods that
// plugin needs, per spec.md §4.4 ("all optional, default to identity").
type NoopPlugin struct{}

func (NoopPlugin) Initialize(context.Context) error { return nil }

func (NoopPlugin) Shutdown(context.Context) error { return nil }

func (NoopPlugin) BeforeRequest(
	_ context.Context, _, _ string, opts adapter.RequestOptions,
) (adapter.RequestOptions, error) {
	return opts, nil
}

func (NoopPlugin) AfterRequest(
	_ context.Context, _, _ string, raw adapter.HTTPResponse,
) (adapter.HTTPResponse, error) {
	return raw, nil
}

func (NoopPlugin) BeforeResponseProcessed(
	_ context.Context, _ adapter.HTTPResponse, api dcapi.ApiResponse,
) (dcapi.ApiResponse, error) {
	return api, nil
}

func (NoopPlugin) OnError(
	_ context.Context, _, _ string, _ error, _ adapter.RequestOptions,
) (*dcapi.ApiResponse, error) {
	return nil, nil
}
