// Copyright 2025 SGNL.ai, Inc.
package auth

import (
	"context"
	"fmt"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// TokenProvider stores {token, token_type, header_name} per spec.md §4.3.
// Authenticate fails if the token is empty.
type TokenProvider struct {
	token      string
	tokenType  string
	headerName string
}

var _ Provider = (*TokenProvider)(nil)

// NewTokenProvider builds a provider emitting "Authorization: {type} {token}"
// by default.
func NewTokenProvider(token, tokenType string) *TokenProvider {
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &TokenProvider{token: token, tokenType: tokenType, headerName: "Authorization"}
}

// WithHeaderName overrides the header the token is emitted under.
func (t *TokenProvider) WithHeaderName(name string) *TokenProvider {
	t.headerName = name

	return t
}

func (t *TokenProvider) Authenticate(_ context.Context) error {
	if t.token == "" {
		return dcerrors.NewAuthenticationError("token auth provider has no token set")
	}

	return nil
}

func (t *TokenProvider) IsAuthenticated() bool { return t.token != "" }

func (t *TokenProvider) GetAuthHeaders() map[string]string {
	if t.token == "" {
		return map[string]string{}
	}

	return map[string]string{t.headerName: fmt.Sprintf("%s %s", t.tokenType, t.token)}
}

func (t *TokenProvider) GetAuthParams() map[string]any { return map[string]any{} }

func (t *TokenProvider) ClearAuth() { t.token = "" }

// SetToken replaces the token, e.g. after an external refresh.
func (t *TokenProvider) SetToken(token string) { t.token = token }
