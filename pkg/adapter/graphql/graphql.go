// Copyright 2026 SGNL.ai, Inc.

// Package graphql is the GraphQL adapter family of spec.md §4.2, grounded
// on the teacher's pkg/crowdstrike datasource_graphql.go use of
// machinebox/graphql: build a graphql.Request, set variables and operation
// name, Run it through a graphql.Client, and decode the raw response into
// a map.
package graphql

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	gql "github.com/machinebox/graphql"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

const introspectionQuery = `query IntrospectionQuery { __schema { queryType { name } mutationType { name } } }`

// Adapter implements adapter.GraphQLAdapter over a single GraphQL endpoint.
type Adapter struct {
	endpoint string
	client   *gql.Client

	mu        sync.Mutex
	connected bool
}

// New constructs an Adapter targeting endpoint, optionally with a custom
// *http.Client (for auth headers, TLS config, timeouts).
func New(endpoint string, httpClient *http.Client) *Adapter {
	var opts []gql.ClientOption
	if httpClient != nil {
		opts = append(opts, gql.WithHTTPClient(httpClient))
	}

	return &Adapter{
		endpoint: endpoint,
		client:   gql.NewClient(endpoint, opts...),
	}
}

func (a *Adapter) Connect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = true

	return nil
}

func (a *Adapter) Disconnect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = false

	return nil
}

func (a *Adapter) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.connected
}

// SetOption is a no-op; the GraphQL adapter takes all configuration
// through New.
func (a *Adapter) SetOption(string, any) {}

func (a *Adapter) run(ctx context.Context, document string, vars map[string]any, opName string) (map[string]any, error) {
	req := gql.NewRequest(document)

	for k, v := range vars {
		req.Var(k, v)
	}

	if opName != "" {
		req.Header.Set("X-Operation-Name", opName)
	}

	var out map[string]any

	if err := a.client.Run(ctx, req, &out); err != nil {
		return nil, dcerrors.NewApiError("graphql_request", fmt.Sprintf("query failed: %v", err))
	}

	return out, nil
}

// Query runs a GraphQL query document.
func (a *Adapter) Query(ctx context.Context, query string, vars map[string]any, opName string) (map[string]any, error) {
	return a.run(ctx, query, vars, opName)
}

// Mutation runs a GraphQL mutation document, failing with a
// ValidationError if the document does not start with "mutation" per
// spec.md §4.2's mutation-string validation note.
func (a *Adapter) Mutation(ctx context.Context, mutation string, vars map[string]any, opName string) (map[string]any, error) {
	if !strings.HasPrefix(strings.TrimSpace(mutation), "mutation") {
		return nil, dcerrors.NewValidationError("mutation document must start with \"mutation\"")
	}

	return a.run(ctx, mutation, vars, opName)
}

// ExecuteBatch runs each operation sequentially, since machinebox/graphql
// has no native batch-request support; it returns the first error
// encountered, with partial results for operations already completed.
func (a *Adapter) ExecuteBatch(ctx context.Context, ops []adapter.GraphQLOperation) ([]map[string]any, error) {
	results := make([]map[string]any, 0, len(ops))

	for _, op := range ops {
		result, err := a.run(ctx, op.Query, op.Vars, "")
		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	return results, nil
}

// Introspect fetches the schema's root operation type names.
func (a *Adapter) Introspect(ctx context.Context) (map[string]any, error) {
	return a.run(ctx, introspectionQuery, nil, "")
}

// Subscribe is unsupported: machinebox/graphql is a request/response HTTP
// client with no subscription transport (no graphql-ws / SSE support), so
// this always fails with an AdapterTypeError naming the missing
// capability instead of silently no-oping.
func (a *Adapter) Subscribe(ctx context.Context, query string, vars map[string]any, callback func(map[string]any)) (string, error) {
	return "", dcerrors.NewAdapterTypeError("subscribe", "GraphQL subscription transport")
}

// Unsubscribe mirrors Subscribe's lack of subscription support.
func (a *Adapter) Unsubscribe(ctx context.Context, subscriptionID string) error {
	return dcerrors.NewAdapterTypeError("unsubscribe", "GraphQL subscription transport")
}
