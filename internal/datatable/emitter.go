package datatable

import (
	"slices"

	"github.com/oklog/ulid/v2"
)

// Subscription is a handle returned when registering a handler.
type Subscription struct {
	id     ulid.ULID
	cancel func()
}

// ID returns the unique identifier of the subscription.
func (s Subscription) ID() ulid.ULID {
	return s.id
}

// Unsubscribe removes the handler. It is safe to call more than once and from
// inside a handler while an event is being delivered.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type handler[E any] struct {
	id ulid.ULID
	fn func(E)
}

// Emitter broadcasts events to registered handlers synchronously, in
// registration order. The zero value is ready to use. Emitter is not safe for
// concurrent use; it follows the single-threaded model of Controller.
type Emitter[E any] struct {
	handlers []handler[E]
}

// Subscribe registers fn. A nil fn is ignored and yields an inert Subscription.
func (e *Emitter[E]) Subscribe(fn func(E)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	id := ulid.Make()
	e.handlers = append(e.handlers, handler[E]{id: id, fn: fn})
	return Subscription{
		id: id,
		cancel: func() {
			e.handlers = slices.DeleteFunc(slices.Clone(e.handlers), func(h handler[E]) bool {
				return h.id == id
			})
		},
	}
}

// Emit delivers ev to every handler registered at the moment of the call.
func (e *Emitter[E]) Emit(ev E) {
	for _, h := range slices.Clone(e.handlers) {
		h.fn(ev)
	}
}

// Len returns the number of registered handlers.
func (e *Emitter[E]) Len() int {
	return len(e.handlers)
}
