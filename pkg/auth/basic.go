// Copyright 2025 SGNL.ai, Inc.
package auth

import "context"

// BasicProvider stores a (user, pass) pair and has no side effects at
// Authenticate, per spec.md §4.3.
type BasicProvider struct {
	username string
	password string
}

var _ Provider = (*BasicProvider)(nil)

func NewBasicProvider(username, password string) *BasicProvider {
	return &BasicProvider{username: username, password: password}
}

func (b *BasicProvider) Authenticate(_ context.Context) error { return nil }

func (b *BasicProvider) IsAuthenticated() bool {
	return b.username != "" || b.password != ""
}

func (b *BasicProvider) GetAuthHeaders() map[string]string { return map[string]string{} }

func (b *BasicProvider) GetAuthParams() map[string]any {
	return map[string]any{"auth": [2]string{b.username, b.password}}
}

func (b *BasicProvider) ClearAuth() {
	b.username = ""
	b.password = ""
}
