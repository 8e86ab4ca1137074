package http

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aretw0/libstate/pkg/domain"
)

// Event is a serialized lifecycle event.
type Event struct {
	Name string
	Data []byte
}

// Broadcaster fans lifecycle events out to SSE subscribers.
// Slow subscribers drop events instead of blocking the run.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	buffer int
}

// NewBroadcaster creates a broadcaster whose subscribers buffer up to buffer events.
func NewBroadcaster(buffer int) *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{}), buffer: buffer}
}

// Subscribe registers a subscriber. The returned function unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broadcaster) publish(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- Event{Name: name, Data: data}:
		default:
		}
	}
}

// Hooks returns lifecycle hooks publishing every event.
func (b *Broadcaster) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			b.publish("run_start", e)
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			b.publish("run_end", e)
		},
		OnVisit: func(_ context.Context, e *domain.VisitEvent) {
			b.publish("visit", e)
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			b.publish("transition", e)
		},
	}
}
