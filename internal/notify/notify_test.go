package notify

import "testing"

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	var h Hub
	var calls []string

	h.Subscribe(func() { calls = append(calls, "first") })
	h.Subscribe(func() { calls = append(calls, "second") })

	h.Publish()

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("expected [first second], got %v", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	var h Hub
	count := 0

	unsubscribe := h.Subscribe(func() { count++ })
	h.Publish()
	unsubscribe()
	unsubscribe()
	h.Publish()

	if count != 1 {
		t.Errorf("expected 1 call, got %d", count)
	}
}

func TestSubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	var h Hub
	count := 0

	var unsubscribe func()
	unsubscribe = h.Subscribe(func() {
		count++
		unsubscribe()
	})

	h.Publish()
	h.Publish()

	if count != 1 {
		t.Errorf("expected 1 call, got %d", count)
	}
}
