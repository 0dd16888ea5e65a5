package broadcast

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("broadcast: channel closed")

// Hub is an in-process topic shared by every channel attached to it. It
// stands in for a real transport when all instances live in one process
// (tests, single-binary demos).
//
// Delivery is synchronous on the publisher's goroutine, to every current
// subscriber including the publisher's own. Handlers therefore run with
// whatever ordering the callers' goroutines impose, matching the
// per-sender-FIFO, no-global-order contract.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]subscription
}

type subscription struct {
	owner *HubChannel
	h     Handler
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]subscription)}
}

// Channel attaches a new instance to the hub.
func (hub *Hub) Channel() *HubChannel {
	return &HubChannel{hub: hub}
}

func (hub *Hub) publish(payload []byte) {
	hub.mu.Lock()
	handlers := make([]Handler, 0, len(hub.subs))
	for _, sub := range hub.subs {
		handlers = append(handlers, sub.h)
	}
	hub.mu.Unlock()

	// Invoked outside the lock so a handler may publish in turn.
	for _, h := range handlers {
		h(payload)
	}
}

func (hub *Hub) subscribe(owner *HubChannel, h Handler) (cancel func()) {
	hub.mu.Lock()
	id := hub.next
	hub.next++
	hub.subs[id] = subscription{owner: owner, h: h}
	hub.mu.Unlock()

	return func() {
		hub.mu.Lock()
		delete(hub.subs, id)
		hub.mu.Unlock()
	}
}

func (hub *Hub) drop(owner *HubChannel) {
	hub.mu.Lock()
	for id, sub := range hub.subs {
		if sub.owner == owner {
			delete(hub.subs, id)
		}
	}
	hub.mu.Unlock()
}

// HubChannel is one instance's attachment to a Hub.
type HubChannel struct {
	hub *Hub

	mu     sync.Mutex
	closed bool
}

func (c *HubChannel) Publish(payload []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return ErrClosed
	}
	c.hub.publish(payload)
	return nil
}

func (c *HubChannel) Subscribe(h Handler) (func(), error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	return c.hub.subscribe(c, h), nil
}

func (c *HubChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.hub.drop(c)
	return nil
}
