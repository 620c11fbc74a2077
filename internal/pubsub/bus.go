// Package pubsub provides a small generic publish/subscribe broker.
package pubsub

import (
	"context"
	"sync"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

const defaultBuffer = 64

// Option configures a Broker.
type Option func(*brokerOptions)

type brokerOptions struct {
	buffer int
}

// WithBuffer sets the per-subscriber channel buffer size.
func WithBuffer(n int) Option {
	return func(o *brokerOptions) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// Broker fans published events out to any number of subscribers.
// Publish never blocks: an event is dropped for a subscriber whose
// buffer is full.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]struct{}
	buffer int
	closed bool
}

// NewBroker creates a broker with the default buffer size (64).
func NewBroker[T any](opts ...Option) *Broker[T] {
	o := brokerOptions{buffer: defaultBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		buffer: o.buffer,
	}
}

// Subscribe registers a new subscriber and returns its channel.
// The subscription ends and the channel closes when ctx is cancelled
// or the broker is closed, whichever comes first.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], b.buffer)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish delivers an event to every subscriber that has buffer space.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for sub := range b.subs {
		select {
		case sub <- event:
		default:
			// Subscriber is not keeping up; drop rather than block.
		}
	}
}

// Close shuts down the broker and closes all subscriber channels.
// Further Publish and Subscribe calls are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
