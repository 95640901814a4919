package vdom

import (
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// EventPrefix marks a property as an event handler. The event name is the
// property name with the prefix removed, case preserved: "onclick" listens
// for "click", "onClick" for "Click".
const EventPrefix = "on"

// Handler is the value of an event property: either a raw Callback that the
// renderer wraps and retains, or a Wrapped proxy that is attached as-is.
type Handler interface {
	isHandler()
}

// Callback is a plain guest function. The renderer wraps it with the
// document's CreateProxy and registers the proxy so it outlives the call.
type Callback func(host.Event)

func (Callback) isHandler() {}

// Wrapped is a proxy the caller already created and keeps alive. The
// renderer neither re-wraps nor re-registers it.
type Wrapped struct {
	Handle proxy.Handle
}

func (Wrapped) isHandler() {}

// Wrap is shorthand for Wrapped{Handle: h}.
func Wrap(h proxy.Handle) Wrapped {
	return Wrapped{Handle: h}
}

// asHandler resolves a prop value to a Handler. A bare func(host.Event) or
// host.EventHandler counts as a Callback, and a bare proxy.Handle as Wrapped.
func asHandler(v any) (Handler, bool) {
	switch h := v.(type) {
	case Callback:
		return h, h != nil
	case Wrapped:
		return h, h.Handle != nil
	case func(host.Event):
		return Callback(h), h != nil
	case host.EventHandler:
		return Callback(h), h != nil
	case proxy.Handle:
		return Wrapped{Handle: h}, h != nil
	default:
		return nil, false
	}
}
