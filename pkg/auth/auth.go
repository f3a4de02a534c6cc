// Copyright 2025 SGNL.ai, Inc.

// Package auth defines the AuthProvider contract of spec.md §4.3 and its
// built-in variants: Basic, Token, OAuth, Ldap, Database and the
// IAM-resolved Database variant added by SPEC_FULL.md §4.
package auth

import "context"

// Provider is the AuthProvider contract of spec.md §4.3.
type Provider interface {
	Authenticate(ctx context.Context) error
	IsAuthenticated() bool
	GetAuthHeaders() map[string]string
	GetAuthParams() map[string]any
	ClearAuth()
}
