package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// Redis is a channel backed by Redis pub/sub on a named topic. Redis fans a
// published message out to every subscriber, the publisher's own included,
// so payloads carry an origin tag and receivers skip their own.
type Redis struct {
	client *redis.Client
	topic  string

	mu      sync.Mutex
	closed  bool
	pubsubs []*redis.PubSub
}

func NewRedis(client *redis.Client, topic string) *Redis {
	return &Redis{client: client, topic: topic}
}

func (c *Redis) Publish(payload []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return c.client.Publish(ctx, c.topic, payload).Err()
}

func (c *Redis) Subscribe(h Handler) (func(), error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}

	ps := c.client.Subscribe(context.Background(), c.topic)
	c.pubsubs = append(c.pubsubs, ps)
	c.mu.Unlock()

	go func() {
		for msg := range ps.Channel() {
			h([]byte(msg.Payload))
		}
	}()

	return func() { _ = ps.Close() }, nil
}

func (c *Redis) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	pubsubs := c.pubsubs
	c.pubsubs = nil
	c.mu.Unlock()

	for _, ps := range pubsubs {
		_ = ps.Close()
	}
	return nil
}
