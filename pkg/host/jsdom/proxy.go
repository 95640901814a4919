package jsdom

import (
	"github.com/dop251/goja"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
)

// Proxy exposes a guest EventHandler to the runtime as a JS function.
type Proxy struct {
	doc      *Document
	fn       host.EventHandler
	value    goja.Value
	released bool
}

// Release tears the wrapper down. Later calls from the runtime throw.
func (p *Proxy) Release() {
	p.released = true
	p.fn = nil
}

// Released reports whether Release has been called.
func (p *Proxy) Released() bool {
	return p.released
}

// Value returns the JS function the runtime calls.
func (p *Proxy) Value() goja.Value {
	return p.value
}

func (p *Proxy) call(call goja.FunctionCall) goja.Value {
	vm := p.doc.vm
	if p.released {
		panic(vm.NewGoError(host.ErrReleased))
	}

	ev := host.Event{}
	if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
		obj := arg.ToObject(vm)
		ev.Type = obj.Get("type").String()
		if t := obj.Get("target"); t != nil && !goja.IsUndefined(t) && !goja.IsNull(t) {
			ev.Target = p.doc.wrap(t.ToObject(vm))
		}
	}

	p.invoke(ev)
	return goja.Undefined()
}

// invoke runs the handler and turns a Go panic into a JS exception so the
// host's dispatch loop sees it as a throwing listener.
func (p *Proxy) invoke(ev host.Event) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*goja.Object); ok {
				panic(r)
			}
			panic(p.doc.vm.NewGoError(&errors.PanicError{
				Op:         "jsdom.Proxy",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			}))
		}
	}()
	p.fn(ev)
}
