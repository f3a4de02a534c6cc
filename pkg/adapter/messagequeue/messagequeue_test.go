// Copyright 2026 SGNL.ai, Inc.

package messagequeue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dc-api-x/dcapix/pkg/adapter/messagequeue"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

func connected(t *testing.T) *messagequeue.Adapter {
	t.Helper()

	a := messagequeue.New()
	require.NoError(t, a.Connect(context.Background()))

	return a
}

func TestPublish_DeliversToSubscriber(t *testing.T) {
	a := connected(t)

	var mu sync.Mutex
	var got []byte
	done := make(chan struct{})

	_, err := a.Subscribe(context.Background(), "widgets", func(msg []byte) {
		mu.Lock()
		got = msg
		mu.Unlock()
		close(done)
	})
	require.NoError(t, err)

	require.NoError(t, a.Publish(context.Background(), "widgets", []byte("hello")))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message delivery")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []byte("hello"), got)
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	a := connected(t)

	var count int
	var mu sync.Mutex

	id, err := a.Subscribe(context.Background(), "widgets", func([]byte) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)
	require.NoError(t, a.Unsubscribe(context.Background(), id))

	require.NoError(t, a.Publish(context.Background(), "widgets", []byte("hello")))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)
}

func TestUnsubscribe_UnknownIDFails(t *testing.T) {
	a := connected(t)

	err := a.Unsubscribe(context.Background(), "nonexistent")
	require.Error(t, err)

	var ae *dcerrors.ApiError
	assert.ErrorAs(t, err, &ae)
}

func TestPublish_NotConnectedFails(t *testing.T) {
	a := messagequeue.New()

	err := a.Publish(context.Background(), "widgets", []byte("x"))
	require.Error(t, err)

	var ce *dcerrors.ApiConnectionError
	assert.ErrorAs(t, err, &ce)
}
