// Copyright 2025 SGNL.ai, Inc.

// Package adapter defines the per-protocol transport contracts of
// spec.md §4.2. Every adapter family shares the Adapter lifecycle
// (Connect/Disconnect/IsConnected/SetOption) and adds its own primitive
// operations as a narrower interface; the Client type-asserts to the
// narrower interface it needs (pkg/dcapix), matching spec.md §9's
// instruction to replace duck typing with explicit interfaces.
package adapter

import "context"

// Adapter is the lifecycle every protocol adapter implements.
type Adapter interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	IsConnected() bool
	SetOption(name string, value any)
}

// HTTPResponse is the primitive result of an HTTP adapter's Request call:
// status code, headers, and the raw response body.
type HTTPResponse struct {
	Status  int
	Headers map[string][]string
	Body    []byte
}

// HTTPAdapter is the Http adapter family of spec.md §4.2.
type HTTPAdapter interface {
	Adapter
	Request(ctx context.Context, method, url string, opts RequestOptions) (*HTTPResponse, error)
}

// AsyncHTTPAdapter is the async variant of HTTPAdapter, grounded on
// ext/adapters/async_adapters.py's AsyncHttpAdapter: its concrete sync
// wrapper methods (connect/disconnect/request) are not abstract — they
// raise NotImplementedError with a message telling the caller to await the
// async method instead. An adapter that embeds HTTPAdapter's sync
// AsyncAdapter counterpart here (see pkg/adapter/http.AsyncAdapter) follows
// the same shape: it implements both HTTPAdapter and AsyncHTTPAdapter, but
// its own Request method rejects the call with a descriptive
// dcerrors.RequestError rather than performing it, per spec.md §4.2. The
// Client itself does no AsyncHTTPAdapter-specific detection; the rejection
// lives on the adapter, same as the Python original.
type AsyncHTTPAdapter interface {
	Adapter
	ARequest(ctx context.Context, method, url string, opts RequestOptions) (*HTTPResponse, error)
}

// RequestOptions carries everything a Client verb call can pass down to the
// adapter primitive: query params, headers, body, auth overrides, and the
// per-call timeout/raw_response flags of spec.md §4.1/§6.
type RequestOptions struct {
	Params  map[string]string
	Headers map[string]string
	Body    []byte
	JSON    any
	Files   map[string][]byte

	// AuthHeaders/AuthParams are injected by the Client from the configured
	// AuthProvider before dispatch.
	AuthHeaders map[string]string
	AuthParams  map[string]string
}

// Row is one result row/record/document from a non-HTTP adapter primitive.
type Row = map[string]any

// DatabaseAdapter is the Database adapter family of spec.md §4.2.
type DatabaseAdapter interface {
	Adapter
	Execute(ctx context.Context, query string, params ...any) ([]Row, error)
	ExecuteWrite(ctx context.Context, query string, params ...any) (rowsAffected int64, err error)
	Transaction(ctx context.Context) (DatabaseTransaction, error)
}

// DatabaseTransaction is a scoped acquisition: Commit or Rollback must be
// called exactly once to end the scope, per spec.md §4.2's "Transaction is
// a scoped acquisition" note.
type DatabaseTransaction interface {
	Execute(ctx context.Context, query string, params ...any) ([]Row, error)
	ExecuteWrite(ctx context.Context, query string, params ...any) (int64, error)
	Commit() error
	Rollback() error
}

// DirectoryScope is the LDAP search scope of spec.md §4.2.
type DirectoryScope int

const (
	ScopeBase DirectoryScope = iota
	ScopeOneLevel
	ScopeSubtree
)

// DirectoryEntry is one LDAP search result.
type DirectoryEntry struct {
	DN         string
	Attributes map[string][][]byte
}

// DirectoryChangeOp is the LDAP modify operation kind.
type DirectoryChangeOp int

const (
	ChangeAdd DirectoryChangeOp = iota
	ChangeDelete
	ChangeReplace
)

// DirectoryChange is one attribute change passed to Modify.
type DirectoryChange struct {
	Op     DirectoryChangeOp
	Values []string
}

// DirectoryAdapter is the Directory adapter family of spec.md §4.2.
type DirectoryAdapter interface {
	Adapter
	Search(ctx context.Context, baseDN, filter string, attrs []string, scope DirectoryScope) ([]DirectoryEntry, error)
	Add(ctx context.Context, dn string, attrs map[string][]string) error
	Modify(ctx context.Context, dn string, changes map[string]DirectoryChange) error
	Delete(ctx context.Context, dn string) error
}

// MessageQueueAdapter is the MessageQueue adapter family of spec.md §4.2.
// The concurrency story for long-lived Subscribe callbacks is flagged as an
// open question in spec.md §9; this module's default implementation runs
// each subscription's callback on a dedicated goroutine fed by a bounded
// channel (see pkg/adapter/messagequeue), a deliberate choice documented in
// DESIGN.md.
type MessageQueueAdapter interface {
	Adapter
	Publish(ctx context.Context, topic string, message []byte) error
	Subscribe(ctx context.Context, topic string, callback func([]byte)) (subscriptionID string, err error)
	Unsubscribe(ctx context.Context, subscriptionID string) error
}

// CacheAdapter is the Cache adapter family of spec.md §4.2.
type CacheAdapter interface {
	Adapter
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// FileSystemAdapter is the FileSystem adapter family of spec.md §4.2.
type FileSystemAdapter interface {
	Adapter
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	DeleteFile(ctx context.Context, path string) error
	ListDirectory(ctx context.Context, path string) ([]string, error)
	CreateDirectory(ctx context.Context, path string) error
	DeleteDirectory(ctx context.Context, path string, recursive bool) error
	Exists(ctx context.Context, path string) (bool, error)
	IsFile(ctx context.Context, path string) (bool, error)
	IsDirectory(ctx context.Context, path string) (bool, error)
}

// GraphQLAdapter is the GraphQL adapter family of spec.md §4.2.
type GraphQLAdapter interface {
	Adapter
	Query(ctx context.Context, query string, vars map[string]any, opName string) (map[string]any, error)
	Mutation(ctx context.Context, mutation string, vars map[string]any, opName string) (map[string]any, error)
	ExecuteBatch(ctx context.Context, ops []GraphQLOperation) ([]map[string]any, error)
	Introspect(ctx context.Context) (map[string]any, error)
	Subscribe(ctx context.Context, query string, vars map[string]any, callback func(map[string]any)) (string, error)
	Unsubscribe(ctx context.Context, subscriptionID string) error
}

// GraphQLOperation is one operation in an ExecuteBatch call.
type GraphQLOperation struct {
	Query string
	Vars  map[string]any
}

// WebSocketAdapter is the WebSocket adapter family of spec.md §4.2.
type WebSocketAdapter interface {
	ConnectWebSocket(ctx context.Context, url string, headers map[string]string) error
	DisconnectWebSocket(ctx context.Context) error
	Send(ctx context.Context, message []byte) error
	Receive(ctx context.Context, timeoutSeconds int) ([]byte, error)
	OnMessage(callback func([]byte))
	OnError(callback func(error))
	OnClose(callback func())
}
