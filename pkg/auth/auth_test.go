// Copyright 2025 SGNL.ai, Inc.
package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/auth"
)

func TestBasicProvider(t *testing.T) {
	p := auth.NewBasicProvider("alice", "s3cret")

	require.NoError(t, p.Authenticate(context.Background()))
	assert.Empty(t, p.GetAuthHeaders())
	assert.Equal(t, map[string]any{"auth": [2]string{"alice", "s3cret"}}, p.GetAuthParams())

	p.ClearAuth()
	assert.False(t, p.IsAuthenticated())
}

func TestTokenProvider(t *testing.T) {
	p := auth.NewTokenProvider("abc123", "")

	assert.Equal(t, map[string]string{"Authorization": "Bearer abc123"}, p.GetAuthHeaders())

	p.WithHeaderName("X-Api-Key")
	assert.Equal(t, map[string]string{"X-Api-Key": "Bearer abc123"}, p.GetAuthHeaders())
}

func TestTokenProvider_EmptyTokenFailsAuthenticate(t *testing.T) {
	p := auth.NewTokenProvider("", "Bearer")

	err := p.Authenticate(context.Background())
	require.Error(t, err)
}

func TestOAuthProvider_IsAuthenticated(t *testing.T) {
	p := auth.NewOAuthProvider("id", "secret", "https://example.com/token")
	assert.False(t, p.IsAuthenticated())

	p.Exchange = func(_ context.Context, _ *auth.OAuthProvider) (string, string, time.Time, error) {
		return "tok", "refresh", time.Now().Add(time.Hour), nil
	}

	require.NoError(t, p.Authenticate(context.Background()))
	assert.True(t, p.IsAuthenticated())
	assert.Equal(t, map[string]string{"Authorization": "Bearer tok"}, p.GetAuthHeaders())
}

func TestOAuthProvider_ExpiredTokenNotAuthenticated(t *testing.T) {
	p := auth.NewOAuthProvider("id", "secret", "https://example.com/token")
	p.Exchange = func(_ context.Context, _ *auth.OAuthProvider) (string, string, time.Time, error) {
		return "tok", "", time.Now().Add(-time.Hour), nil
	}

	require.NoError(t, p.Authenticate(context.Background()))
	assert.False(t, p.IsAuthenticated())
}

func TestOAuthProvider_ExchangeFailure(t *testing.T) {
	p := auth.NewOAuthProvider("id", "secret", "https://example.com/token")
	p.Exchange = func(_ context.Context, _ *auth.OAuthProvider) (string, string, time.Time, error) {
		return "", "", time.Time{}, errors.New("boom")
	}

	err := p.Authenticate(context.Background())
	require.Error(t, err)
}

func TestLdapProvider_PortDefaults(t *testing.T) {
	ssl := auth.NewLdapProvider("cn=admin", "pw", "ldaps://example.com", true, 0)
	assert.Equal(t, 636, ssl.Port)

	plain := auth.NewLdapProvider("cn=admin", "pw", "ldap://example.com", false, 0)
	assert.Equal(t, 389, plain.Port)
}

func TestLdapProvider_Bind(t *testing.T) {
	p := auth.NewLdapProvider("cn=admin,dc=example", "pw", "ldap://example.com", false, 0)

	result := p.Bind(func() error { return nil })
	assert.True(t, result.Authenticated)
	assert.Equal(t, "cn=admin,dc=example", result.User)
	assert.True(t, p.ValidateToken("cn=admin,dc=example"))
	assert.False(t, p.ValidateToken("someone-else"))
}

func TestLdapProvider_BindFailure(t *testing.T) {
	p := auth.NewLdapProvider("cn=admin", "wrong", "ldap://example.com", false, 0)

	result := p.Bind(func() error { return errors.New("invalid credentials") })
	assert.False(t, result.Authenticated)
	assert.Contains(t, result.Message, "invalid credentials")
}

func TestDatabaseProvider(t *testing.T) {
	p := auth.NewDatabaseProvider("db.example.com", 5432, "app", "pw", "appdb")

	require.NoError(t, p.Authenticate(context.Background()))
	assert.True(t, p.IsAuthenticated())

	params := p.GetAuthParams()
	assert.Equal(t, "db.example.com", params["host"])
	assert.Equal(t, 5432, params["port"])
}
