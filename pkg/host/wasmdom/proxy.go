//go:build js && wasm

package wasmdom

import "syscall/js"

// Proxy owns a js.Func. It is a pointer type because js.Value is not
// comparable and registries compare handles.
type Proxy struct {
	doc      *Document
	fn       js.Func
	released bool
}

// Release frees the js.Func. The browser throws if it calls it afterwards.
func (p *Proxy) Release() {
	if p.released {
		return
	}
	p.released = true
	p.fn.Release()
}

// Func returns the wrapped js.Func.
func (p *Proxy) Func() js.Func {
	return p.fn
}
