// Copyright 2026 SGNL.ai, Inc.

package directory

import (
	"context"
	"testing"

	ldap "github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

func TestScopeToLDAP(t *testing.T) {
	assert.Equal(t, ldap.ScopeBaseObject, scopeToLDAP(adapter.ScopeBase))
	assert.Equal(t, ldap.ScopeSingleLevel, scopeToLDAP(adapter.ScopeOneLevel))
	assert.Equal(t, ldap.ScopeWholeSubtree, scopeToLDAP(adapter.ScopeSubtree))
}

func TestSearch_NotConnectedFailsWithApiConnectionError(t *testing.T) {
	a := New(Config{URL: "ldap://localhost:389"})

	_, err := a.Search(context.Background(), "dc=example,dc=com", "(objectClass=*)", nil, adapter.ScopeSubtree)
	require.Error(t, err)

	var ce *dcerrors.ApiConnectionError
	assert.ErrorAs(t, err, &ce)
}

func TestConnect_BadURLFailsWithApiConnectionError(t *testing.T) {
	a := New(Config{URL: "ldap://127.0.0.1:1", BindDN: "cn=admin", BindPassword: "x"})

	err := a.Connect(context.Background())
	require.Error(t, err)

	var ce *dcerrors.ApiConnectionError
	assert.ErrorAs(t, err, &ce)
	assert.False(t, a.IsConnected())
}

func TestConnect_BadCertificateChainFailsWithConfigurationError(t *testing.T) {
	a := New(Config{URL: "ldaps://127.0.0.1:1", CertificateChain: "not-base64!!"})

	err := a.Connect(context.Background())
	require.Error(t, err)

	var ce *dcerrors.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestDecodeAttributes_PlainValuesPassThrough(t *testing.T) {
	entry := &ldap.Entry{
		DN: "cn=jdoe,dc=example,dc=com",
		Attributes: []*ldap.EntryAttribute{
			{Name: "cn", ByteValues: [][]byte{[]byte("jdoe")}},
		},
	}

	out := decodeAttributes(entry)
	require.Contains(t, out, "cn")
	assert.Equal(t, []byte("jdoe"), out["cn"][0])
}

func TestDisconnect_WithoutConnectIsNoop(t *testing.T) {
	a := New(Config{})
	assert.NoError(t, a.Disconnect(context.Background()))
	assert.False(t, a.IsConnected())
}
