// ABOUTME: Typed event bus connecting the chat session to its observers
// ABOUTME: Handlers run synchronously in subscription order; a panicking handler is isolated

package eventbus

import (
	"sync"

	"github.com/mauromedda/supportbot-go/internal/log"
)

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscription[T any] struct {
	id      int
	name    string
	handler Handler[T]
}

// Bus is a typed event bus that delivers events to registered handlers.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []subscription[T]
	nextID int
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a named handler and returns an unsubscribe function.
// The name only appears in logs when the handler panics.
func (b *Bus[T]) Subscribe(name string, handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, name: name, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers event to every handler registered at the time of the call,
// in subscription order. It returns the number of handlers that panicked.
func (b *Bus[T]) Publish(event T) int {
	b.mu.RLock()
	snapshot := b.subs
	b.mu.RUnlock()

	failed := 0
	for _, s := range snapshot {
		if !deliver(s, event) {
			failed++
		}
	}
	return failed
}

func deliver[T any](s subscription[T], event T) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("eventbus: handler %q panicked: %v", s.name, r)
			ok = false
		}
	}()
	s.handler(event)
	return true
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
