package realtime

import (
	"log"
	"sync"
)

// Topic names, one per entity the UI live-refreshes on.
const (
	TopicProducts = "ProductUpdates"
	TopicCart     = "CartUpdates"
	TopicOrders   = "OrderChanges"
	TopicTrainers = "TrainerChanges"
	TopicUsers    = "UserChanges"
	TopicPlans    = "MembershipPlanChanges"
)

// Topics lists every known topic; a subscriber with no filter gets them all.
var Topics = []string{TopicProducts, TopicCart, TopicOrders, TopicTrainers, TopicUsers, TopicPlans}

type Event struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}

// Hub fans mutation events out to subscribers by topic. Delivery is
// fire-and-forget: a subscriber whose buffer is full misses the event. This is
// a UI refresh channel, not a durability or ordering mechanism.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers interest in the given topics (all topics when none are
// given) and returns the event channel plus a cancel func that must be called
// when the subscriber goes away.
func (h *Hub) Subscribe(topics ...string) (<-chan Event, func()) {
	if len(topics) == 0 {
		topics = Topics
	}

	ch := make(chan Event, 16)

	h.mu.Lock()
	for _, topic := range topics {
		if h.subs[topic] == nil {
			h.subs[topic] = make(map[chan Event]struct{})
		}
		h.subs[topic][ch] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			for _, topic := range topics {
				delete(h.subs[topic], ch)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of the topic without blocking
// the caller.
func (h *Hub) Publish(topic string, data interface{}) {
	ev := Event{Topic: topic, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[topic] {
		select {
		case ch <- ev:
		default:
			log.Printf("⚠️ realtime: dropping %s event for slow subscriber", topic)
		}
	}
}
