// Copyright 2026 SGNL.ai, Inc.

// Package directory is the Directory adapter family of spec.md §4.2,
// grounded on the teacher's pkg/ldap datasource: dial, bind, search with
// paging controls, and SID/byte-attribute decoding, generalized from a
// single-purpose ingestion GetPage call into the general-purpose
// Search/Add/Modify/Delete primitives adapter.DirectoryAdapter requires.
package directory

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/bwmarrin/go-objectsid"
	ldap "github.com/go-ldap/ldap/v3"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Config configures a Directory adapter connection.
type Config struct {
	URL              string
	BindDN           string
	BindPassword     string
	CertificateChain string // base64-encoded PEM CA bundle, for ldaps:// with a private CA.
	ServerName       string
}

// Adapter implements adapter.DirectoryAdapter over an LDAP connection,
// grounded on the teacher's Datasource.GetPage dial/bind/search sequence.
type Adapter struct {
	cfg Config

	mu   sync.Mutex
	conn *ldap.Conn
}

// New constructs an Adapter. Connect must be called before use.
func New(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

// Connect dials and binds the LDAP connection, per the teacher's
// ldap_v3.DialURL/Bind sequence in Datasource.GetPage.
func (a *Adapter) Connect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn != nil {
		return nil
	}

	opts := []ldap.DialOpt{}

	if a.cfg.CertificateChain != "" {
		tlsConfig := &tls.Config{ServerName: a.cfg.ServerName}

		decoded, err := base64.StdEncoding.DecodeString(a.cfg.CertificateChain)
		if err != nil {
			return dcerrors.NewConfigurationError(fmt.Sprintf("failed to decode certificate chain: %v", err))
		}

		pool := x509.NewCertPool()
		pool.AppendCertsFromPEM(decoded)
		tlsConfig.RootCAs = pool

		opts = append(opts, ldap.DialWithTLSConfig(tlsConfig))
	}

	conn, err := ldap.DialURL(a.cfg.URL, opts...)
	if err != nil {
		return dcerrors.NewApiConnectionError("failed to dial directory server", err)
	}

	if err := conn.Bind(a.cfg.BindDN, a.cfg.BindPassword); err != nil {
		conn.Close()

		return dcerrors.NewAuthenticationError(fmt.Sprintf("failed to bind credentials: %v", err))
	}

	a.conn = conn

	return nil
}

// Disconnect closes the underlying connection.
func (a *Adapter) Disconnect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil
	}

	err := a.conn.Close()
	a.conn = nil

	return err
}

// IsConnected reports whether Connect has established a live connection.
func (a *Adapter) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.conn != nil
}

// SetOption is a no-op; the directory adapter takes all configuration
// through Config at construction time.
func (a *Adapter) SetOption(string, any) {}

func scopeToLDAP(scope adapter.DirectoryScope) int {
	switch scope {
	case adapter.ScopeBase:
		return ldap.ScopeBaseObject
	case adapter.ScopeOneLevel:
		return ldap.ScopeSingleLevel
	default:
		return ldap.ScopeWholeSubtree
	}
}

// Search runs an LDAP search, decoding objectSid values to their string SID
// form the way the teacher's EntryToObject does; every other attribute,
// objectGUID included, is returned as raw attribute bytes rather than
// coerced to a configured attribute schema —
// the generic Search primitive has no entity schema to coerce against.
func (a *Adapter) Search(
	ctx context.Context, baseDN, filter string, attrs []string, scope adapter.DirectoryScope,
) ([]adapter.DirectoryEntry, error) {
	conn, err := a.connection()
	if err != nil {
		return nil, err
	}

	req := ldap.NewSearchRequest(
		baseDN,
		scopeToLDAP(scope),
		ldap.DerefAlways,
		0, 0, false,
		filter,
		attrs,
		nil,
	)

	result, err := conn.SearchWithPaging(req, 1000)
	if err != nil {
		var lerr *ldap.Error
		if asLDAPError(err, &lerr) {
			return nil, dcerrors.NewApiError("search_directory", fmt.Sprintf("LDAP search failed (result code %d): %s", lerr.ResultCode, lerr.Err))
		}

		return nil, dcerrors.NewApiConnectionError("directory search failed", err)
	}

	entries := make([]adapter.DirectoryEntry, 0, len(result.Entries))

	for _, entry := range result.Entries {
		entries = append(entries, adapter.DirectoryEntry{
			DN:         entry.DN,
			Attributes: decodeAttributes(entry),
		})
	}

	return entries, nil
}

func decodeAttributes(entry *ldap.Entry) map[string][][]byte {
	out := make(map[string][][]byte, len(entry.Attributes))

	for _, attr := range entry.Attributes {
		values := make([][]byte, 0, len(attr.ByteValues))

		for _, raw := range attr.ByteValues {
			if attr.Name == "objectSid" && len(raw) > 0 {
				values = append(values, []byte(objectsid.Decode(raw).String()))

				continue
			}

			values = append(values, raw)
		}

		out[attr.Name] = values
	}

	return out
}

func asLDAPError(err error, target **ldap.Error) bool {
	lerr, ok := err.(*ldap.Error)
	if !ok {
		return false
	}

	*target = lerr

	return true
}

// Add creates a new directory entry.
func (a *Adapter) Add(ctx context.Context, dn string, attrs map[string][]string) error {
	conn, err := a.connection()
	if err != nil {
		return err
	}

	req := ldap.NewAddRequest(dn, nil)
	for name, values := range attrs {
		req.Attribute(name, values)
	}

	if err := conn.Add(req); err != nil {
		return wrapModifyError("add_directory_entry", err)
	}

	return nil
}

// Modify applies attribute changes to an existing entry.
func (a *Adapter) Modify(ctx context.Context, dn string, changes map[string]adapter.DirectoryChange) error {
	conn, err := a.connection()
	if err != nil {
		return err
	}

	req := ldap.NewModifyRequest(dn, nil)

	for name, change := range changes {
		switch change.Op {
		case adapter.ChangeAdd:
			req.Add(name, change.Values)
		case adapter.ChangeDelete:
			req.Delete(name, change.Values)
		case adapter.ChangeReplace:
			req.Replace(name, change.Values)
		}
	}

	if err := conn.Modify(req); err != nil {
		return wrapModifyError("modify_directory_entry", err)
	}

	return nil
}

// Delete removes a directory entry.
func (a *Adapter) Delete(ctx context.Context, dn string) error {
	conn, err := a.connection()
	if err != nil {
		return err
	}

	if err := conn.Del(ldap.NewDelRequest(dn, nil)); err != nil {
		return wrapModifyError("delete_directory_entry", err)
	}

	return nil
}

func wrapModifyError(operation string, err error) error {
	var lerr *ldap.Error
	if asLDAPError(err, &lerr) {
		return dcerrors.NewApiError(operation, fmt.Sprintf("LDAP result code %d: %s", lerr.ResultCode, lerr.Err))
	}

	return dcerrors.NewApiConnectionError(operation+" failed", err)
}

func (a *Adapter) connection() (*ldap.Conn, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil, dcerrors.NewApiConnectionError("directory adapter is not connected", nil)
	}

	return a.conn, nil
}
