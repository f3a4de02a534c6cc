// Copyright 2025 SGNL.ai, Inc.

package dcerrors

import "fmt"

// ErrorDetail is one entry of a structured Error's Errors sequence.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// WireError is the structured, wire-visible failure description attached to
// an ApiResponse whenever Success is false, per spec.md §3.
type WireError struct {
	Type   Type          `json:"type"`
	Title  string        `json:"title"`
	Status int           `json:"status"`
	Detail string        `json:"detail"`
	Errors []ErrorDetail `json:"errors,omitempty"`
}

func (e *WireError) Error() string {
	if e == nil {
		return ""
	}

	return e.Detail
}

// FromHTTPStatus builds a WireError for a failed HTTP-family response using
// the well-known body fields and a "HTTP {status}: {reason}" fallback, per
// spec.md §4.1.1.
func FromHTTPStatus(status int, reason, errMsg, errCode, errDetails string) *WireError {
	detail := errMsg
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d: %s", status, reason)
	}

	we := &WireError{
		Type:   typeForStatus(status),
		Title:  reason,
		Status: status,
		Detail: detail,
	}

	if errCode != "" || errMsg != "" {
		we.Errors = []ErrorDetail{{Code: errCode, Message: errMsg}}

		if errDetails != "" {
			we.Errors[0].Details = map[string]any{"details": errDetails}
		}
	}

	return we
}

func typeForStatus(status int) Type {
	switch {
	case status == 401:
		return TypeAuthentication
	case status == 403:
		return TypeAuthorization
	case status == 404:
		return TypeNotFound
	case status == 409:
		return TypeAlreadyExists
	case status == 429:
		return TypeRateLimit
	case status >= 500:
		return TypeServer
	case status >= 400:
		return TypeValidation
	default:
		return TypeUnknown
	}
}
