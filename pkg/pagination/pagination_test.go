// Copyright 2026 SGNL.ai, Inc.
package pagination_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
	"github.com/dc-api-x/dcapix/pkg/pagination"
)

type fakeRequester struct {
	calls []call
	pages []dcapi.ApiResponse
}

type call struct {
	endpoint string
	params   map[string]string
}

func (f *fakeRequester) Get(_ context.Context, endpoint string, params map[string]string) (dcapi.ApiResponse, error) {
	f.calls = append(f.calls, call{endpoint: endpoint, params: params})

	idx := len(f.calls) - 1
	if idx >= len(f.pages) {
		return dcapi.NewSuccess(200, []any{}, nil), nil
	}

	return f.pages[idx], nil
}

func items(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{"id": i}
	}

	return out
}

// Scenario 1: Offset pagination stops on short page (spec.md §8.1).
func TestOffsetPagination_StopsOnShortPage(t *testing.T) {
	req := &fakeRequester{
		pages: []dcapi.ApiResponse{
			dcapi.NewSuccess(200, items(3), nil),
		},
	}

	cfg := pagination.Config{
		OffsetParam: "offset",
		LimitParam:  "limit",
		PageSize:    5,
	}

	got, err := pagination.Paginate[any](context.Background(), "offset", req, "/things", cfg, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Len(t, req.calls, 1)
}

// Scenario 2: Cursor pagination stops when has_more=false (spec.md §8.2).
func TestCursorPagination_StopsOnHasMoreFalse(t *testing.T) {
	req := &fakeRequester{
		pages: []dcapi.ApiResponse{
			dcapi.NewSuccess(200, map[string]any{
				"items":    items(2),
				"has_more": true,
				"cursor":   "page2",
			}, nil),
			dcapi.NewSuccess(200, map[string]any{
				"items":    items(2),
				"has_more": false,
			}, nil),
		},
	}

	cfg := pagination.Config{
		CursorParam:   "cursor",
		NextCursorKey: "cursor",
		HasMoreKey:    "has_more",
		DataKey:       "items",
	}

	got, err := pagination.Paginate[any](context.Background(), "cursor", req, "/things", cfg, nil)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Len(t, req.calls, 2)
}

// Scenario 3: Link pagination uses the next URL verbatim (spec.md §8.3).
func TestLinkPagination_UsesNextURLVerbatim(t *testing.T) {
	page1 := dcapi.NewSuccess(200, items(2), map[string]string{
		"Link": `<https://api/x?page=2>; rel="next", <https://api/x?page=5>; rel="last"`,
	})
	page2 := dcapi.NewSuccess(200, []any{}, nil)

	req := &fakeRequester{pages: []dcapi.ApiResponse{page1, page2}}

	cfg := pagination.Config{PageSizeParam: "page_size", PageSize: 2}

	got, err := pagination.Paginate[any](context.Background(), "link", req, "/things", cfg, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.Len(t, req.calls, 2)
	assert.Equal(t, "https://api/x?page=2", req.calls[1].endpoint)
	assert.Nil(t, req.calls[1].params)
}

func TestPagination_MaxPagesBound(t *testing.T) {
	req := &fakeRequester{
		pages: []dcapi.ApiResponse{
			dcapi.NewSuccess(200, items(5), nil),
			dcapi.NewSuccess(200, items(5), nil),
			dcapi.NewSuccess(200, items(5), nil),
		},
	}

	cfg := pagination.Config{OffsetParam: "offset", LimitParam: "limit", PageSize: 5, MaxPages: 2}

	got, err := pagination.Paginate[any](context.Background(), "offset", req, "/things", cfg, nil)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	assert.Len(t, req.calls, 2)
}

func TestPagination_EmptyFirstPageYieldsNothing(t *testing.T) {
	req := &fakeRequester{pages: []dcapi.ApiResponse{dcapi.NewSuccess(200, items(0), nil)}}

	cfg := pagination.Config{OffsetParam: "offset", LimitParam: "limit", PageSize: 5}

	got, err := pagination.Paginate[any](context.Background(), "offset", req, "/things", cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPagination_UnknownStrategy(t *testing.T) {
	req := &fakeRequester{}

	_, err := pagination.GetPaginator[any]("bogus", req, "/things", pagination.Config{}, nil)
	assert.Error(t, err)
}

func TestPagination_NonSuccessResponseAborts(t *testing.T) {
	wireErr := dcerrors.FromHTTPStatus(500, "", "boom", "", "")
	req := &fakeRequester{
		pages: []dcapi.ApiResponse{
			dcapi.NewFailure(500, wireErr, nil),
		},
	}

	cfg := pagination.Config{OffsetParam: "offset", LimitParam: "limit", PageSize: 5}

	_, err := pagination.Paginate[any](context.Background(), "offset", req, "/things", cfg, nil)
	assert.Error(t, err)
}
