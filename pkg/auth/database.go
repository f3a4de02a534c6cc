// Copyright 2025 SGNL.ai, Inc.
package auth

import "context"

// DatabaseProvider carries user/pass/db/host/port per spec.md §4.3.
// Authenticate only marks state; the real bind happens inside the Database
// adapter's Connect (pkg/adapter/database).
type DatabaseProvider struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string

	authenticated bool
}

var _ Provider = (*DatabaseProvider)(nil)

func NewDatabaseProvider(host string, port int, username, password, database string) *DatabaseProvider {
	return &DatabaseProvider{Host: host, Port: port, Username: username, Password: password, Database: database}
}

func (d *DatabaseProvider) Authenticate(_ context.Context) error {
	d.authenticated = true

	return nil
}

func (d *DatabaseProvider) IsAuthenticated() bool { return d.authenticated }

func (d *DatabaseProvider) GetAuthHeaders() map[string]string { return map[string]string{} }

// GetAuthParams returns a connection-parameter mapping, per spec.md §4.3.
func (d *DatabaseProvider) GetAuthParams() map[string]any {
	return map[string]any{
		"host":     d.Host,
		"port":     d.Port,
		"username": d.Username,
		"password": d.Password,
		"database": d.Database,
	}
}

func (d *DatabaseProvider) ClearAuth() { d.authenticated = false }
