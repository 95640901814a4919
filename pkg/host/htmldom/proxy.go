package htmldom

import "github.com/go-drift/tether/pkg/host"

// Proxy is the document's boundary wrapper around a guest EventHandler.
type Proxy struct {
	doc      *Document
	fn       host.EventHandler
	released bool
}

// Release tears the wrapper down. Later calls fail with host.ErrReleased.
func (p *Proxy) Release() {
	p.released = true
	p.fn = nil
}

// Released reports whether Release has been called.
func (p *Proxy) Released() bool {
	return p.released
}

// Call invokes the wrapped handler.
func (p *Proxy) Call(ev host.Event) error {
	if p.released {
		return host.ErrReleased
	}
	p.fn(ev)
	return nil
}
