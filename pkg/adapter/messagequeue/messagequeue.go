// Copyright 2026 SGNL.ai, Inc.

// Package messagequeue is the MessageQueue adapter family of spec.md §4.2.
// No broker client (amqp/kafka/nats/sqs) appears anywhere in the
// retrieval pack, so there is nothing to ground a real broker driver on
// without fabricating a dependency; this adapter is an in-process topic
// fan-out instead, resolving spec.md §9's open question on Subscribe
// callback concurrency the way adapter.MessageQueueAdapter's doc comment
// describes: one dedicated goroutine per subscription, fed by a bounded
// channel, so a slow callback cannot stall Publish or other subscribers.
package messagequeue

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

const subscriberBuffer = 64

type subscriber struct {
	ch     chan []byte
	cancel func()
}

// Adapter implements adapter.MessageQueueAdapter as an in-process topic
// fan-out.
type Adapter struct {
	mu          sync.Mutex
	connected   bool
	subscribers map[string]map[string]*subscriber // topic -> subscriptionID -> subscriber
}

// New constructs an empty Adapter.
func New() *Adapter {
	return &Adapter{subscribers: make(map[string]map[string]*subscriber)}
}

func (a *Adapter) Connect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = true

	return nil
}

// Disconnect stops every subscriber's goroutine and clears subscriptions.
func (a *Adapter) Disconnect(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, subs := range a.subscribers {
		for _, sub := range subs {
			sub.cancel()
		}
	}

	a.subscribers = make(map[string]map[string]*subscriber)
	a.connected = false

	return nil
}

func (a *Adapter) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.connected
}

// SetOption is a no-op; the in-process queue takes no configuration.
func (a *Adapter) SetOption(string, any) {}

// Publish fans message out to every live subscriber of topic. A
// subscriber whose buffer is full drops the message rather than
// blocking Publish, per the bounded-channel design note above.
func (a *Adapter) Publish(ctx context.Context, topic string, message []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.connected {
		return dcerrors.NewApiConnectionError("message queue adapter is not connected", nil)
	}

	for _, sub := range a.subscribers[topic] {
		select {
		case sub.ch <- message:
		default:
		}
	}

	return nil
}

// Subscribe registers callback to run, on a dedicated goroutine, for
// every message published to topic until Unsubscribe is called or ctx is
// canceled.
func (a *Adapter) Subscribe(ctx context.Context, topic string, callback func([]byte)) (string, error) {
	a.mu.Lock()

	if !a.connected {
		a.mu.Unlock()

		return "", dcerrors.NewApiConnectionError("message queue adapter is not connected", nil)
	}

	id := uuid.NewString()
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscriber{ch: make(chan []byte, subscriberBuffer), cancel: cancel}

	if a.subscribers[topic] == nil {
		a.subscribers[topic] = make(map[string]*subscriber)
	}

	a.subscribers[topic][id] = sub
	a.mu.Unlock()

	go func() {
		for {
			select {
			case <-subCtx.Done():
				return
			case msg := <-sub.ch:
				callback(msg)
			}
		}
	}()

	return id, nil
}

// Unsubscribe stops the subscription's goroutine and removes it.
func (a *Adapter) Unsubscribe(ctx context.Context, subscriptionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for topic, subs := range a.subscribers {
		sub, ok := subs[subscriptionID]
		if !ok {
			continue
		}

		sub.cancel()
		delete(subs, subscriptionID)

		if len(subs) == 0 {
			delete(a.subscribers, topic)
		}

		return nil
	}

	return dcerrors.NewApiError("unsubscribe", fmt.Sprintf("no such subscription: %s", subscriptionID))
}
