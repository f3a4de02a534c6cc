// Copyright 2026 SGNL.ai, Inc.
package entity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/dcapi"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
	"github.com/dc-api-x/dcapix/pkg/entity"
)

type fakeClient struct {
	lastMethod string
	lastPath   string
	lastParams map[string]string
	lastBody   any

	resp dcapi.ApiResponse
	err  error
}

func (c *fakeClient) Get(_ context.Context, endpoint string, params map[string]string) (dcapi.ApiResponse, error) {
	c.lastMethod, c.lastPath, c.lastParams = "GET", endpoint, params

	return c.resp, c.err
}

func (c *fakeClient) Post(_ context.Context, endpoint string, body any) (dcapi.ApiResponse, error) {
	c.lastMethod, c.lastPath, c.lastBody = "POST", endpoint, body

	return c.resp, c.err
}

func (c *fakeClient) Put(_ context.Context, endpoint string, body any) (dcapi.ApiResponse, error) {
	c.lastMethod, c.lastPath, c.lastBody = "PUT", endpoint, body

	return c.resp, c.err
}

func (c *fakeClient) Patch(_ context.Context, endpoint string, body any) (dcapi.ApiResponse, error) {
	c.lastMethod, c.lastPath, c.lastBody = "PATCH", endpoint, body

	return c.resp, c.err
}

func (c *fakeClient) Delete(_ context.Context, endpoint string) (dcapi.ApiResponse, error) {
	c.lastMethod, c.lastPath = "DELETE", endpoint

	return c.resp, c.err
}

func newTestEntity(t *testing.T, client *fakeClient, basePath string) *entity.Entity[map[string]any] {
	t.Helper()

	e, err := entity.New[map[string]any](client, entity.Descriptor{
		ResourceName: "widgets",
		BasePath:     basePath,
	}, entity.Codec[map[string]any]{})
	require.NoError(t, err)

	return e
}

func TestEntity_ResourcePath(t *testing.T) {
	client := &fakeClient{resp: dcapi.NewSuccess(200, map[string]any{"id": "1"}, nil)}

	e := newTestEntity(t, client, "/api/v1")
	_, err := e.Get(context.Background(), "1", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/widgets/1", client.lastPath)

	e2 := newTestEntity(t, client, "")
	_, err = e2.Get(context.Background(), "1", nil)
	require.NoError(t, err)
	assert.Equal(t, "widgets/1", client.lastPath)
}

func TestNew_EmptyResourceNameFails(t *testing.T) {
	client := &fakeClient{}

	_, err := entity.New[map[string]any](client, entity.Descriptor{}, entity.Codec[map[string]any]{})
	require.Error(t, err)

	var ve *dcerrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestEntity_CreateUpdateDelete(t *testing.T) {
	client := &fakeClient{resp: dcapi.NewSuccess(200, map[string]any{"id": "1", "name": "a"}, nil)}
	e := newTestEntity(t, client, "")

	got, err := e.Create(context.Background(), map[string]any{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, "widgets", client.lastPath)
	assert.Equal(t, "a", got["name"])

	_, err = e.Update(context.Background(), "1", map[string]any{"name": "b"})
	require.NoError(t, err)
	assert.Equal(t, "widgets/1", client.lastPath)

	ok, err := e.Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "widgets/1", client.lastPath)
}

func TestEntity_BulkCreate(t *testing.T) {
	client := &fakeClient{resp: dcapi.NewSuccess(200, []any{
		map[string]any{"id": "1"},
		map[string]any{"id": "2"},
	}, nil)}
	e := newTestEntity(t, client, "")

	got, err := e.BulkCreate(context.Background(), []map[string]any{{"name": "a"}, {"name": "b"}})
	require.NoError(t, err)
	assert.Equal(t, "widgets/bulk", client.lastPath)
	assert.Len(t, got, 2)
}

func TestEntity_CustomAction_RejectsUnknownMethod(t *testing.T) {
	client := &fakeClient{resp: dcapi.NewSuccess(200, nil, nil)}
	e := newTestEntity(t, client, "")

	_, err := e.CustomAction(context.Background(), "activate", "1", "TRACE", nil, nil)
	assert.Error(t, err)
}

func TestEntity_CustomAction_MapsMethodToVerb(t *testing.T) {
	client := &fakeClient{resp: dcapi.NewSuccess(200, nil, nil)}
	e := newTestEntity(t, client, "")

	_, err := e.CustomAction(context.Background(), "activate", "1", "POST", map[string]any{"x": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "POST", client.lastMethod)
	assert.Equal(t, "widgets/1/activate", client.lastPath)
}

func TestManager_GetOrCreate_CachesByResourceAndBasePath(t *testing.T) {
	m := entity.NewManager()
	client := &fakeClient{}

	builds := 0
	build := func() (*entity.Entity[map[string]any], error) {
		builds++

		return entity.New[map[string]any](client, entity.Descriptor{ResourceName: "widgets", BasePath: "/v1"}, entity.Codec[map[string]any]{})
	}

	e1, err := entity.GetOrCreate(m, entity.Descriptor{ResourceName: "widgets", BasePath: "/v1"}, build)
	require.NoError(t, err)

	e2, err := entity.GetOrCreate(m, entity.Descriptor{ResourceName: "widgets", BasePath: "/v1"}, build)
	require.NoError(t, err)

	assert.Same(t, e1, e2)
	assert.Equal(t, 1, builds)
}
