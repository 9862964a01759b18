// internal/infra/bus/bus.go
package bus

import (
	"sync"

	"drop_notification_bot/internal/domain/drop"
)

// Handler receives a published status change.
type Handler func(drop.StatusChange)

// StatusBus is an in-process broadcast channel for drop status changes.
// Every subscriber sees every event regardless of which widget published
// it. Publish delivers synchronously on the caller's goroutine, so a
// subscriber's reaction is ordered after the tick that emitted the event.
type StatusBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Handler
}

func New() *StatusBus {
	return &StatusBus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its subscription id.
func (b *StatusBus) Subscribe(h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[b.nextID] = h
	return b.nextID
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (b *StatusBus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Publish delivers the event to every handler subscribed at publish
// time. Handlers run synchronously; the subscriber set is snapshotted
// first so a handler may subscribe or unsubscribe without deadlocking.
func (b *StatusBus) Publish(ev drop.StatusChange) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
