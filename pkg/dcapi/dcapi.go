// Copyright 2025 SGNL.ai, Inc.

// Package dcapi defines the core, protocol-agnostic data model of
// spec.md §3: ApiResponse, ApiRequest and Metadata. These are the types
// that flow through the Client pipeline (pkg/dcapix), the hook interfaces
// (pkg/hooks) and the plugin contract (pkg/plugin) — kept in their own
// package, beneath all three, so none of them need to import another to
// share this vocabulary.
package dcapi

import "github.com/dc-api-x/dcapix/pkg/dcerrors"

// Metadata carries pagination and versioning hints attached to a response.
type Metadata struct {
	NextCursor string
	HasMore    bool
	TotalCount int
	Extra      map[string]any
}

// ApiResponse is the unified result envelope returned by every Client
// operation, per spec.md §3. Invariant: Success == false ⇒ Error != nil;
// Success == true ⇒ Error == nil. Callers should use NewSuccess/NewFailure
// to construct a response rather than building the struct literal directly,
// so the invariant cannot be violated by omission.
type ApiResponse struct {
	Success    bool
	StatusCode int
	Data       any
	Error      *dcerrors.WireError
	Headers    map[string]string
	Meta       Metadata
}

// NewSuccess builds a successful envelope.
func NewSuccess(statusCode int, data any, headers map[string]string) ApiResponse {
	return ApiResponse{Success: true, StatusCode: statusCode, Data: data, Headers: headers}
}

// NewFailure builds a failed envelope. Panics if err is nil, since a failed
// response without a structured error violates spec.md §3's invariant.
func NewFailure(statusCode int, err *dcerrors.WireError, headers map[string]string) ApiResponse {
	if err == nil {
		panic("dcapi: NewFailure requires a non-nil error")
	}

	return ApiResponse{Success: false, StatusCode: statusCode, Error: err, Headers: headers}
}

// ApiRequest is an immutable request description a Client may build or
// receive as input to a hook, per spec.md §3.
type ApiRequest struct {
	Method      string
	Path        string
	Query       map[string]string
	Headers     map[string]string
	Body        []byte
	JSON        any
	AuthHeaders map[string]string
}
