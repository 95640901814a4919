//go:build js && wasm

// Package wasmdom is the browser host adapter, built on syscall/js.
//
// Listeners are js.Func values. The browser does not know when a Go
// callback stops being needed, so every proxy must be kept alive by a
// proxy.Registry until Release is called.
package wasmdom

import (
	"fmt"
	"syscall/js"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// Document wraps the browser's global document.
type Document struct {
	v js.Value
}

// New returns the document of the current page.
func New() *Document {
	return &Document{v: js.Global().Get("document")}
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) host.Element {
	v := d.v.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{doc: d, v: v}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) (el host.Element, err error) {
	defer catch("wasmdom.CreateElement", tag, &err)
	return &Element{doc: d, v: d.v.Call("createElement", tag)}, nil
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) (host.Node, error) {
	return &TextNode{doc: d, v: d.v.Call("createTextNode", text)}, nil
}

// CreateProxy wraps fn in a js.Func. A panic in fn is reported through
// errors.Recover instead of taking down the wasm program.
func (d *Document) CreateProxy(fn host.EventHandler) proxy.Handle {
	p := &Proxy{doc: d}
	p.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer errors.Recover("wasmdom.Proxy")
		ev := host.Event{}
		if len(args) > 0 {
			ev.Type = args[0].Get("type").String()
			if t := args[0].Get("currentTarget"); t.Truthy() {
				ev.Target = &Element{doc: d, v: t}
			}
		}
		fn(ev)
		return nil
	})
	return p
}

// Dispatch fires a plain Event of the given type at target.
func (d *Document) Dispatch(target host.Element, event string) (err error) {
	el, ok := target.(*Element)
	if !ok || el.doc != d {
		return host.ErrForeignNode
	}
	defer catch("wasmdom.Dispatch", event, &err)
	el.v.Call("dispatchEvent", js.Global().Get("Event").New(event))
	return nil
}

// catch converts a thrown JS exception, which syscall/js surfaces as a
// panic of js.Error, into a *errors.HostError.
func catch(op, target string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	jsErr, ok := r.(js.Error)
	if !ok {
		panic(r)
	}
	*err = &errors.HostError{Op: op, Kind: errors.KindHost, Target: target, Err: fmt.Errorf("wasmdom: %w", jsErr)}
}

func (d *Document) unwrap(n host.Node) (js.Value, error) {
	switch v := n.(type) {
	case *Element:
		if v != nil && v.doc == d {
			return v.v, nil
		}
	case *TextNode:
		if v != nil && v.doc == d {
			return v.v, nil
		}
	}
	return js.Undefined(), host.ErrForeignNode
}
