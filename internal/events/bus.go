package events

// Bus is a synchronous multicast notifier. The zero value is ready to
// use; the listener registry is allocated lazily on first Subscribe.
//
// Bus is not safe for concurrent use. The engine's loop is
// single-threaded by design, so subscription and dispatch happen on
// one goroutine.
type Bus struct {
	listeners []Listener
}

// Subscribe adds a listener if it is not already registered.
func (b *Bus) Subscribe(l Listener) {
	if l == nil {
		return
	}
	for _, existing := range b.listeners {
		if existing == l {
			return
		}
	}
	b.listeners = append(b.listeners, l)
}

// Unsubscribe removes a listener if present; a no-op otherwise.
func (b *Bus) Unsubscribe(l Listener) {
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every listener synchronously, in
// subscription order. Dispatch iterates over a point-in-time snapshot
// of the registry: a listener that unsubscribes itself or others during
// dispatch does not affect the current Publish call.
//
// Publish does not recover panics. A panicking listener aborts the
// dispatch and propagates to the caller, taking the surrounding
// evaluation with it.
func (b *Bus) Publish(e Event) {
	if len(b.listeners) == 0 {
		return
	}

	snapshot := make([]Listener, len(b.listeners))
	copy(snapshot, b.listeners)

	for _, l := range snapshot {
		l.HandleEvent(e)
	}
}

// Listeners returns the number of registered listeners.
func (b *Bus) Listeners() int {
	return len(b.listeners)
}
