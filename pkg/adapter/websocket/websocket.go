// Copyright 2026 SGNL.ai, Inc.

// Package websocket is the WebSocket adapter family of spec.md §4.2.
// Nothing in the retrieval pack implements the WebSocket protocol itself,
// so there is no corpus file to ground the wire handling on; the
// connection lifecycle (Connect/Disconnect/IsConnected, a read-pump
// goroutine dispatching to registered callbacks) otherwise follows the
// same shape as the teacher's pkg/adapter/http Connect/Disconnect pair.
// gorilla/websocket is the de facto standard client for this protocol in
// the Go ecosystem and is used here rather than a hand-rolled framer.
package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Adapter implements adapter.WebSocketAdapter over a single gorilla
// websocket connection.
type Adapter struct {
	mu   sync.Mutex
	conn *websocket.Conn

	onMessage []func([]byte)
	onError   []func(error)
	onClose   []func()
}

// New constructs an Adapter. ConnectWebSocket must be called before use.
func New() *Adapter {
	return &Adapter{}
}

// Connect is a no-op; this adapter family connects via ConnectWebSocket,
// which needs a target URL the generic Connect signature has no room for.
func (a *Adapter) Connect(context.Context) error { return nil }

func (a *Adapter) Disconnect(ctx context.Context) error {
	return a.DisconnectWebSocket(ctx)
}

func (a *Adapter) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.conn != nil
}

// SetOption is a no-op; the websocket adapter takes all configuration
// through ConnectWebSocket.
func (a *Adapter) SetOption(string, any) {}

// ConnectWebSocket dials url and starts the read pump.
func (a *Adapter) ConnectWebSocket(ctx context.Context, url string, headers map[string]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn != nil {
		return nil
	}

	header := make(map[string][]string, len(headers))
	for k, v := range headers {
		header[k] = []string{v}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return dcerrors.NewApiConnectionError("failed to dial websocket", err)
	}

	a.conn = conn

	go a.readPump()

	return nil
}

func (a *Adapter) readPump() {
	for {
		_, data, err := a.conn.ReadMessage()
		if err != nil {
			a.dispatchError(err)
			a.dispatchClose()

			return
		}

		a.dispatchMessage(data)
	}
}

func (a *Adapter) dispatchMessage(data []byte) {
	a.mu.Lock()
	callbacks := append([]func([]byte){}, a.onMessage...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(data)
	}
}

func (a *Adapter) dispatchError(err error) {
	a.mu.Lock()
	callbacks := append([]func(error){}, a.onError...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(err)
	}
}

func (a *Adapter) dispatchClose() {
	a.mu.Lock()
	callbacks := append([]func(){}, a.onClose...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// DisconnectWebSocket closes the connection and stops the read pump.
func (a *Adapter) DisconnectWebSocket(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn == nil {
		return nil
	}

	err := a.conn.Close()
	a.conn = nil

	return err
}

// Send writes message as a binary frame.
func (a *Adapter) Send(ctx context.Context, message []byte) error {
	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()

	if conn == nil {
		return dcerrors.NewApiConnectionError("websocket adapter is not connected", nil)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
		return dcerrors.NewApiError("send", fmt.Sprintf("failed to write message: %v", err))
	}

	return nil
}

// Receive blocks, via a one-shot OnMessage registration, until a message
// arrives or timeoutSeconds elapses.
func (a *Adapter) Receive(ctx context.Context, timeoutSeconds int) ([]byte, error) {
	msgCh := make(chan []byte, 1)

	a.mu.Lock()
	a.onMessage = append(a.onMessage, func(data []byte) {
		select {
		case msgCh <- data:
		default:
		}
	})
	a.mu.Unlock()

	select {
	case data := <-msgCh:
		return data, nil
	case <-time.After(time.Duration(timeoutSeconds) * time.Second):
		return nil, dcerrors.NewTimeoutError("timed out waiting for websocket message", nil)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnMessage registers a callback invoked for every received frame.
func (a *Adapter) OnMessage(callback func([]byte)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onMessage = append(a.onMessage, callback)
}

// OnError registers a callback invoked when the read pump encounters an
// error.
func (a *Adapter) OnError(callback func(error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onError = append(a.onError, callback)
}

// OnClose registers a callback invoked when the connection closes.
func (a *Adapter) OnClose(callback func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onClose = append(a.onClose, callback)
}
