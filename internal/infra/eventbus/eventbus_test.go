package eventbus

import "testing"

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe("deck.generated")

	bus.Publish("deck.generated", "payload")

	select {
	case evt := <-ch:
		if evt.Topic != "deck.generated" || evt.Payload != "payload" {
			t.Errorf("event = %+v", evt)
		}
	default:
		t.Fatal("event not delivered")
	}
}

func TestPublishToOtherTopicNotDelivered(t *testing.T) {
	bus := New()
	ch := bus.Subscribe("deck.generated")

	bus.Publish("something.else", "payload")

	select {
	case evt := <-ch:
		t.Fatalf("unexpected event %+v", evt)
	default:
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := New()
	ch := bus.Subscribe("t")

	// Fill the buffer past capacity; Publish must never block.
	for i := 0; i < defaultBufferSize+10; i++ {
		bus.Publish("t", i)
	}
	if got := len(ch); got != defaultBufferSize {
		t.Fatalf("buffered = %d, want %d", got, defaultBufferSize)
	}
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	bus := New()
	a := bus.Subscribe("t")
	b := bus.Subscribe("t")

	bus.Publish("t", 1)

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("deliveries: a=%d b=%d", len(a), len(b))
	}
}
