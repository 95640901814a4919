// Package core provides the reactive state primitives: Signal and Record.
//
// Both notify subscribers synchronously, in registration order, on the
// calling goroutine. There is no unsubscribe and no equality check: every
// Set notifies, even when the value did not change.
//
// # Signal
//
// A Signal holds one value of type T:
//
//	count := core.NewSignal(0)
//	count.Subscribe(func(v int) { fmt.Println("count", v) }) // prints "count 0"
//	count.Set(1)                                            // prints "count 1"
//
// Subscribe calls the callback once with the current value. A Set made
// from inside a subscriber completes its own fan-out before the outer one
// resumes.
//
// # Record
//
// A Record wraps a struct and notifies per field:
//
//	type AppState struct {
//	    Count    int    `observe:"count"`
//	    Username string `observe:"username"`
//	}
//
//	store := core.NewRecord(func(r *core.Record[AppState]) {
//	    r.Set("username", "Go Developer")
//	})
//	store.Subscribe("count", func(v any) { fmt.Println("count", v) })
//	store.Set("count", 1)
//
// Field names come from the observe tag, or the Go field name when there is
// no tag. Setting one field never notifies another field's subscribers.
//
// # Threading
//
// Neither type is safe for concurrent use. Both are meant to be driven from
// the single thread that also owns the host document.
package core
