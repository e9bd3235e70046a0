package ecs

import (
	"slices"

	"github.com/google/uuid"
)

// EventBus dispatches typed events to the handlers subscribed to their
// Signal. A bus belongs to one scene and is disposed with it.
type EventBus struct {
	handlers [signalCount][]subscriber
	disposed bool
}

type subscriber struct {
	id uuid.UUID
	fn any
}

// Subscription identifies a registered handler.
type Subscription struct {
	bus    *EventBus
	signal Signal
	ID     uuid.UUID
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers fn for every event of type E published on bus.
// Subscribing to a disposed bus returns an inert subscription.
func Subscribe[E Event](bus *EventBus, fn func(E)) Subscription {
	var zero E
	signal := zero.Signal()
	sub := Subscription{bus: bus, signal: signal, ID: uuid.New()}
	if bus == nil || bus.disposed {
		return sub
	}
	bus.handlers[signal] = append(bus.handlers[signal], subscriber{id: sub.ID, fn: fn})
	return sub
}

// Publish delivers ev to the handlers subscribed when the call starts, in
// subscription order. Publishing on a nil or disposed bus does nothing.
func Publish[E Event](bus *EventBus, ev E) {
	if bus == nil || bus.disposed {
		return
	}
	for _, sub := range slices.Clone(bus.handlers[ev.Signal()]) {
		// a handler may dispose the bus
		if bus.disposed {
			return
		}
		sub.fn.(func(E))(ev)
	}
}

// Cancel removes the handler. Cancelling twice is harmless.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.handlers[s.signal] = slices.DeleteFunc(s.bus.handlers[s.signal], func(sub subscriber) bool {
		return sub.id == s.ID
	})
}

// SubscriberCount returns the number of handlers registered for signal.
func (b *EventBus) SubscriberCount(signal Signal) int {
	return len(b.handlers[signal])
}

// Dispose drops every handler. Later Publish and Subscribe calls are no-ops.
func (b *EventBus) Dispose() {
	b.disposed = true
	for i := range b.handlers {
		b.handlers[i] = nil
	}
}

func (b *EventBus) IsDisposed() bool { return b.disposed }
