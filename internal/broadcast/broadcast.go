// Package broadcast carries opaque payloads between concurrently running
// storefront instances. Delivery is best effort: per-sender order is
// preserved, there is no global order and no delivery guarantee, which is
// enough for a last-writer-wins snapshot protocol.
package broadcast

// Handler receives one published payload. Handlers must not block for long;
// delivery to other subscribers waits on them.
type Handler func(payload []byte)

// Channel is one instance's attachment to a named topic. Implementations may
// or may not deliver an instance's own messages back to it; subscribers that
// care must filter by an origin tag in the payload.
type Channel interface {
	Publish(payload []byte) error
	Subscribe(h Handler) (cancel func(), err error)
	Close() error
}
