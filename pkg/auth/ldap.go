// Copyright 2025 SGNL.ai, Inc.
package auth

import "context"

// LdapProvider binds a DN + password + server URL + SSL + port, per
// spec.md §4.3. Port defaults to 636 if SSL else 389.
type LdapProvider struct {
	BindDN       string
	BindPassword string
	ServerURL    string
	SSL          bool
	Port         int

	authenticated bool
	user          string
}

var _ Provider = (*LdapProvider)(nil)

func NewLdapProvider(bindDN, bindPassword, serverURL string, ssl bool, port int) *LdapProvider {
	if port == 0 {
		if ssl {
			port = 636
		} else {
			port = 389
		}
	}

	return &LdapProvider{BindDN: bindDN, BindPassword: bindPassword, ServerURL: serverURL, SSL: ssl, Port: port}
}

// AuthenticateResult is the {authenticated, user} | {authenticated:false,
// message} shape of spec.md §4.3.
type AuthenticateResult struct {
	Authenticated bool
	User          string
	Message       string
}

// Bind performs the actual BindDN authentication check against the provided
// bind function (typically backed by pkg/adapter/directory), returning the
// documented result shape. The Directory adapter itself performs the
// network bind; this provider records the outcome.
func (l *LdapProvider) Bind(bind func() error) AuthenticateResult {
	if err := bind(); err != nil {
		l.authenticated = false

		return AuthenticateResult{Authenticated: false, Message: err.Error()}
	}

	l.authenticated = true
	l.user = l.BindDN

	return AuthenticateResult{Authenticated: true, User: l.user}
}

func (l *LdapProvider) Authenticate(_ context.Context) error {
	l.authenticated = true
	l.user = l.BindDN

	return nil
}

func (l *LdapProvider) IsAuthenticated() bool { return l.authenticated }

func (l *LdapProvider) GetAuthHeaders() map[string]string { return map[string]string{} }

func (l *LdapProvider) GetAuthParams() map[string]any {
	return map[string]any{
		"bind_dn":       l.BindDN,
		"bind_password": l.BindPassword,
		"server_url":    l.ServerURL,
		"ssl":           l.SSL,
		"port":          l.Port,
	}
}

func (l *LdapProvider) ClearAuth() {
	l.authenticated = false
	l.user = ""
}

// ValidateToken means t == bind_dn, per spec.md §4.3.
func (l *LdapProvider) ValidateToken(t string) bool { return t == l.BindDN }
