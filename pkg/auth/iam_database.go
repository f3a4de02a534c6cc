// Copyright 2025 SGNL.ai, Inc.
package auth

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// IAMDatabaseProvider is the Database auth provider variant added by
// SPEC_FULL.md §4, grounded on the teacher's pkg/aws IAM handlers (which
// wrap the same *iam.Client). It carries an iam.Client for TokenSource to
// use; Authenticate itself makes no IAM call.
//
// TokenSource performs the actual auth-token signing (e.g. an RDS IAM auth
// token, or a short-lived STS-derived secret); it is supplied by the caller
// because minting an RDS token requires the
// github.com/aws/aws-sdk-go-v2/feature/rds/auth package, which is not in
// this module's go.mod.
type IAMDatabaseProvider struct {
	Client   *iam.Client
	Host     string
	Port     int
	Username string
	Database string

	TokenSource func(ctx context.Context, p *IAMDatabaseProvider) (string, error)

	token         string
	authenticated bool
}

var _ Provider = (*IAMDatabaseProvider)(nil)

func NewIAMDatabaseProvider(client *iam.Client, host string, port int, username, database string) *IAMDatabaseProvider {
	return &IAMDatabaseProvider{Client: client, Host: host, Port: port, Username: username, Database: database}
}

func (p *IAMDatabaseProvider) Authenticate(ctx context.Context) error {
	if p.TokenSource == nil {
		return dcerrors.NewAuthenticationError("iam database provider has no token source configured")
	}

	token, err := p.TokenSource(ctx, p)
	if err != nil {
		return dcerrors.NewAuthenticationError("failed to mint iam database auth token: " + err.Error())
	}

	p.token = token
	p.authenticated = true

	return nil
}

func (p *IAMDatabaseProvider) IsAuthenticated() bool { return p.authenticated && p.token != "" }

func (p *IAMDatabaseProvider) GetAuthHeaders() map[string]string { return map[string]string{} }

func (p *IAMDatabaseProvider) GetAuthParams() map[string]any {
	return map[string]any{
		"host":     p.Host,
		"port":     p.Port,
		"username": p.Username,
		"database": p.Database,
		"password": p.token,
	}
}

func (p *IAMDatabaseProvider) ClearAuth() {
	p.token = ""
	p.authenticated = false
}
