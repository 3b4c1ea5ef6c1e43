package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvOne(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_DeliversToMatchingTopicOnly(t *testing.T) {
	hub := NewHub()

	orders, cancelOrders := hub.Subscribe(TopicOrders)
	defer cancelOrders()
	products, cancelProducts := hub.Subscribe(TopicProducts)
	defer cancelProducts()

	hub.Publish(TopicOrders, map[string]int{"order": 1})

	ev := recvOne(t, orders)
	assert.Equal(t, TopicOrders, ev.Topic)

	select {
	case ev := <-products:
		t.Fatalf("product subscriber received %q event", ev.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_NoFilterReceivesAllTopics(t *testing.T) {
	hub := NewHub()

	all, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(TopicCart, "cart")
	hub.Publish(TopicPlans, "plans")

	assert.Equal(t, TopicCart, recvOne(t, all).Topic)
	assert.Equal(t, TopicPlans, recvOne(t, all).Topic)
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicUsers)
	cancel()

	// Publish after cancel must not panic and must not deliver.
	hub.Publish(TopicUsers, "gone")

	_, open := <-ch
	require.False(t, open)

	// cancel is idempotent
	cancel()
}

func TestHub_SlowSubscriberIsDroppedNotBlocked(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe(TopicTrainers)
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More events than the channel buffers; Publish must never block.
		for i := 0; i < 100; i++ {
			hub.Publish(TopicTrainers, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
