// Package proxy keeps guest-side boundary wrappers alive while the host may
// still invoke them.
//
// A host document never tells the guest when it drops an event listener, so
// every wrapper handed to the host through the renderer is retained here for
// the lifetime of the process:
//
//	handle := proxy.KeepAlive(doc.CreateProxy(onClick))
//	button.AddEventListener("click", handle)
//
// The registry is not safe for concurrent use. Like the rest of the reactive
// core it must only be touched from the UI thread.
package proxy

// Handle is an opaque reference to a guest callable exposed to the host.
// Identity matters, not value. Release tears the wrapper down; the registry
// itself never calls it.
type Handle interface {
	Release()
}

// Registry is an append-only, ordered collection of handles.
type Registry struct {
	handles []Handle
}

// Default is the process-wide registry used by KeepAlive and by renderers
// that are not given their own.
var Default = &Registry{}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends h and returns it unchanged.
// Registering the same handle twice keeps two entries.
func (r *Registry) Register(h Handle) Handle {
	r.handles = append(r.handles, h)
	return h
}

// Len returns the number of retained handles.
func (r *Registry) Len() int {
	return len(r.handles)
}

// Handles returns the retained handles in registration order.
// The returned slice is a copy.
func (r *Registry) Handles() []Handle {
	out := make([]Handle, len(r.handles))
	copy(out, r.handles)
	return out
}

// Contains reports whether h has been registered at least once.
func (r *Registry) Contains(h Handle) bool {
	for _, existing := range r.handles {
		if existing == h {
			return true
		}
	}
	return false
}

// KeepAlive registers h with the Default registry and returns it with its
// concrete type intact.
func KeepAlive[H Handle](h H) H {
	Default.Register(h)
	return h
}

// ResetForTest drops every handle held by the Default registry.
// This should only be called from tests.
func ResetForTest() {
	Default.handles = nil
}
