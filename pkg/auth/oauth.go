// Copyright 2025 SGNL.ai, Inc.
package auth

import (
	"context"
	"time"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// OAuthProvider holds the OAuth2 client-credentials/authorization-code
// fields of spec.md §4.3. The concrete token-exchange flow is abstract here
// (spec.md leaves it to the caller's HTTP adapter); the Exchange field is
// supplied as a function, called by Authenticate, so callers can plug the
// flow appropriate to their
// authorization server without this package depending on a specific one.
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scope        string
	RedirectURI  string

	accessToken  string
	refreshToken string
	expiry       time.Time

	// Exchange performs the token exchange and returns the new access
	// token, refresh token, and expiry. It is called by Authenticate.
	Exchange func(ctx context.Context, p *OAuthProvider) (accessToken, refreshToken string, expiry time.Time, err error)
}

var _ Provider = (*OAuthProvider)(nil)

func NewOAuthProvider(clientID, clientSecret, tokenURL string) *OAuthProvider {
	return &OAuthProvider{ClientID: clientID, ClientSecret: clientSecret, TokenURL: tokenURL}
}

func (o *OAuthProvider) Authenticate(ctx context.Context) error {
	if o.Exchange == nil {
		return dcerrors.NewAuthenticationError("oauth provider has no exchange flow configured")
	}

	token, refresh, expiry, err := o.Exchange(ctx, o)
	if err != nil {
		return dcerrors.NewAuthenticationError("oauth token exchange failed: " + err.Error())
	}

	o.accessToken = token
	o.refreshToken = refresh
	o.expiry = expiry

	return nil
}

// IsAuthenticated requires a non-expired access token, per spec.md §4.3.
func (o *OAuthProvider) IsAuthenticated() bool {
	if o.accessToken == "" {
		return false
	}

	return o.expiry.IsZero() || time.Now().Before(o.expiry)
}

func (o *OAuthProvider) GetAuthHeaders() map[string]string {
	if o.accessToken == "" {
		return map[string]string{}
	}

	return map[string]string{"Authorization": "Bearer " + o.accessToken}
}

func (o *OAuthProvider) GetAuthParams() map[string]any { return map[string]any{} }

func (o *OAuthProvider) ClearAuth() {
	o.accessToken = ""
	o.refreshToken = ""
	o.expiry = time.Time{}
}
