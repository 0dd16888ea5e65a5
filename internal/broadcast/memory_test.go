package broadcast

import (
	"errors"
	"reflect"
	"testing"
)

func TestHub_DeliversToEverySubscriber(t *testing.T) {
	hub := NewHub()
	a := hub.Channel()
	b := hub.Channel()

	var gotA, gotB [][]byte
	if _, err := a.Subscribe(func(p []byte) { gotA = append(gotA, p) }); err != nil {
		t.Fatalf("subscribe a: %v", err)
	}
	if _, err := b.Subscribe(func(p []byte) { gotB = append(gotB, p) }); err != nil {
		t.Fatalf("subscribe b: %v", err)
	}

	if err := a.Publish([]byte("one")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := a.Publish([]byte("two")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	want := [][]byte{[]byte("one"), []byte("two")}
	if !reflect.DeepEqual(gotB, want) {
		t.Fatalf("b got %q want %q in order", gotB, want)
	}

	// The hub echoes to the sender's own subscription as well; receivers
	// are expected to filter by origin.
	if !reflect.DeepEqual(gotA, want) {
		t.Fatalf("a got %q want %q", gotA, want)
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	a := hub.Channel()
	b := hub.Channel()

	var got int
	cancel, err := b.Subscribe(func([]byte) { got++ })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := a.Publish([]byte("x")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	cancel()
	if err := a.Publish([]byte("y")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got != 1 {
		t.Fatalf("got=%d want 1", got)
	}
}

func TestHubChannel_CloseDropsSubscriptionsAndRejectsPublish(t *testing.T) {
	hub := NewHub()
	a := hub.Channel()
	b := hub.Channel()

	var got int
	if _, err := b.Subscribe(func([]byte) { got++ }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := a.Publish([]byte("x")); err != nil {
		t.Fatalf("publish after peer close: %v", err)
	}
	if got != 0 {
		t.Fatalf("closed channel still receiving")
	}

	if err := b.Publish([]byte("y")); !errors.Is(err, ErrClosed) {
		t.Fatalf("publish on closed channel: err=%v want ErrClosed", err)
	}
	if _, err := b.Subscribe(func([]byte) {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("subscribe on closed channel: err=%v want ErrClosed", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("double close: %v", err)
	}
}

func TestHub_HandlerMayPublishInTurn(t *testing.T) {
	hub := NewHub()
	a := hub.Channel()
	b := hub.Channel()

	var got [][]byte
	if _, err := b.Subscribe(func(p []byte) {
		got = append(got, p)
		if string(p) == "ping" {
			_ = b.Publish([]byte("pong"))
		}
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := a.Publish([]byte("ping")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	want := [][]byte{[]byte("ping"), []byte("pong")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}
