package core

// Signal holds a single value and notifies subscribers synchronously on
// every Set.
//
// Signal is NOT thread-safe. It must only be accessed from the UI thread.
// Work finished on another goroutine has to be handed back to the UI thread
// before it calls Set.
//
// Example:
//
//	count := core.NewSignal(0)
//	count.Subscribe(func(v int) {
//	    label.SetProperty("innerText", strconv.Itoa(v))
//	})
//	count.Set(count.Value() + 1)
type Signal[T any] struct {
	value       T
	subscribers []func(T)
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Value returns the current value.
func (s *Signal[T]) Value() T {
	return s.value
}

// Set stores v and then calls every subscriber, in registration order, with
// v. Set returns only after the whole fan-out has run, including any nested
// Set made from inside a subscriber. A subscriber that panics aborts the
// fan-out and the panic reaches the caller of Set.
func (s *Signal[T]) Set(v T) {
	s.value = v
	// Subscribers added during this fan-out wait for the next Set.
	subs := s.subscribers
	for _, cb := range subs {
		cb(v)
	}
}

// Update applies transform to the current value and stores the result.
func (s *Signal[T]) Update(transform func(T) T) {
	s.Set(transform(s.value))
}

// Subscribe appends cb and immediately calls it once with the current value.
// There is no way to unsubscribe. Subscribing the same function twice makes
// it run twice per Set.
func (s *Signal[T]) Subscribe(cb func(T)) {
	s.subscribers = append(s.subscribers, cb)
	cb(s.value)
}

// SubscriberCount returns the number of registered subscribers.
func (s *Signal[T]) SubscriberCount() int {
	return len(s.subscribers)
}
