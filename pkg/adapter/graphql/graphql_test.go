// Copyright 2026 SGNL.ai, Inc.

package graphql_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/adapter/graphql"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

func testServer(t *testing.T, body map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": body})
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestQuery_DecodesData(t *testing.T) {
	srv := testServer(t, map[string]any{"widget": map[string]any{"id": "1"}})
	a := graphql.New(srv.URL, srv.Client())

	out, err := a.Query(context.Background(), `query { widget { id } }`, nil, "GetWidget")
	require.NoError(t, err)
	assert.NotNil(t, out["widget"])
}

func TestMutation_RejectsNonMutationDocument(t *testing.T) {
	srv := testServer(t, map[string]any{})
	a := graphql.New(srv.URL, srv.Client())

	_, err := a.Mutation(context.Background(), `query { widget { id } }`, nil, "")
	require.Error(t, err)

	var ve *dcerrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestMutation_AcceptsMutationDocument(t *testing.T) {
	srv := testServer(t, map[string]any{"createWidget": map[string]any{"id": "2"}})
	a := graphql.New(srv.URL, srv.Client())

	out, err := a.Mutation(context.Background(), `mutation { createWidget { id } }`, nil, "")
	require.NoError(t, err)
	assert.NotNil(t, out["createWidget"])
}

func TestExecuteBatch_RunsEachOperation(t *testing.T) {
	srv := testServer(t, map[string]any{"widget": map[string]any{"id": "1"}})
	a := graphql.New(srv.URL, srv.Client())

	results, err := a.ExecuteBatch(context.Background(), []adapter.GraphQLOperation{
		{Query: `query { widget { id } }`},
		{Query: `query { widget { id } }`},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSubscribe_UnsupportedFailsWithAdapterTypeError(t *testing.T) {
	a := graphql.New("http://example.invalid/graphql", nil)

	_, err := a.Subscribe(context.Background(), "subscription{}", nil, func(map[string]any) {})
	require.Error(t, err)

	var ate *dcerrors.AdapterTypeError
	assert.ErrorAs(t, err, &ate)
}
