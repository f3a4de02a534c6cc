// Copyright 2026 SGNL.ai, Inc.
package dcapix

import (
	"context"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// ExecuteQuery is the Database protocol helper of spec.md §4.1, failing
// with AdapterTypeError when the current adapter is not a DatabaseAdapter.
func (c *Client) ExecuteQuery(ctx context.Context, query string, params ...any) ([]adapter.Row, error) {
	db, ok := c.ad.(adapter.DatabaseAdapter)
	if !ok {
		return nil, dcerrors.NewAdapterTypeError("execute_query", "DatabaseAdapter")
	}

	return db.Execute(ctx, query, params...)
}

// SearchDirectory is the Directory protocol helper of spec.md §4.1.
func (c *Client) SearchDirectory(
	ctx context.Context, baseDN, filter string, attrs []string, scope adapter.DirectoryScope,
) ([]adapter.DirectoryEntry, error) {
	dir, ok := c.ad.(adapter.DirectoryAdapter)
	if !ok {
		return nil, dcerrors.NewAdapterTypeError("search_directory", "DirectoryAdapter")
	}

	return dir.Search(ctx, baseDN, filter, attrs, scope)
}

// PublishMessage is the MessageQueue protocol helper of spec.md §4.1.
func (c *Client) PublishMessage(ctx context.Context, topic string, message []byte) error {
	mq, ok := c.ad.(adapter.MessageQueueAdapter)
	if !ok {
		return dcerrors.NewAdapterTypeError("publish_message", "MessageQueueAdapter")
	}

	return mq.Publish(ctx, topic, message)
}

// ExecuteQueryWrite is the Database write-query counterpart of
// ExecuteQuery, returning the number of affected rows.
func (c *Client) ExecuteQueryWrite(ctx context.Context, query string, params ...any) (int64, error) {
	db, ok := c.ad.(adapter.DatabaseAdapter)
	if !ok {
		return 0, dcerrors.NewAdapterTypeError("execute_query", "DatabaseAdapter")
	}

	return db.ExecuteWrite(ctx, query, params...)
}
