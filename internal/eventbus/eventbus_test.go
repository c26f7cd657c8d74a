package eventbus

import "testing"

func TestPublishSubscribe(t *testing.T) {
	b := New[string]()
	sub := b.Subscribe()
	b.Publish("hello")
	select {
	case got := <-sub:
		if got != "hello" {
			t.Fatalf("unexpected event %q", got)
		}
	default:
		t.Fatalf("no event delivered")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed")
	}
	// Publishing after unsubscribe must not panic.
	b.Publish(1)
}

func TestCloseDropsSubscribers(t *testing.T) {
	b := New[int]()
	s1 := b.Subscribe()
	s2 := b.Subscribe()
	b.Close()
	if _, ok := <-s1; ok {
		t.Fatalf("s1 should be closed")
	}
	if _, ok := <-s2; ok {
		t.Fatalf("s2 should be closed")
	}
	// Subscribing after close yields a closed channel.
	s3 := b.Subscribe()
	if _, ok := <-s3; ok {
		t.Fatalf("s3 should be closed")
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	for i := 0; i < 20; i++ {
		b.Publish(i)
	}
	// Buffer is 8; the rest are dropped, not queued.
	n := 0
	for {
		select {
		case <-sub:
			n++
			continue
		default:
		}
		break
	}
	if n != 8 {
		t.Fatalf("expected 8 buffered events, got %d", n)
	}
}
