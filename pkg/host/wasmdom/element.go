//go:build js && wasm

package wasmdom

import (
	"strings"
	"syscall/js"

	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// Element is a browser element.
type Element struct {
	doc *Document
	v   js.Value
}

// Document returns the owning document.
func (e *Element) Document() host.Document { return e.doc }

// Value returns the underlying js.Value.
func (e *Element) Value() js.Value { return e.v }

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) (err error) {
	defer catch("wasmdom.SetAttribute", name, &err)
	e.v.Call("setAttribute", name, value)
	return nil
}

// GetAttribute returns an attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

// SetProperty assigns a DOM property directly.
func (e *Element) SetProperty(name, value string) (err error) {
	defer catch("wasmdom.SetProperty", name, &err)
	e.v.Set(name, value)
	return nil
}

// AddEventListener attaches a proxy created by this document.
func (e *Element) AddEventListener(event string, h proxy.Handle) error {
	p, ok := h.(*Proxy)
	if !ok || p.doc != e.doc {
		return host.ErrForeignProxy
	}
	e.v.Call("addEventListener", event, p.fn)
	return nil
}

// AppendChild appends child.
func (e *Element) AppendChild(child host.Node) (err error) {
	v, err := e.doc.unwrap(child)
	if err != nil {
		return err
	}
	defer catch("wasmdom.AppendChild", "", &err)
	e.v.Call("appendChild", v)
	return nil
}

// ReplaceChildren replaces every child with nodes.
func (e *Element) ReplaceChildren(nodes ...host.Node) (err error) {
	args := make([]any, len(nodes))
	for i, n := range nodes {
		v, err := e.doc.unwrap(n)
		if err != nil {
			return err
		}
		args[i] = v
	}
	defer catch("wasmdom.ReplaceChildren", "", &err)
	e.v.Call("replaceChildren", args...)
	return nil
}

// TextNode is a browser text node.
type TextNode struct {
	doc *Document
	v   js.Value
}

// Document returns the owning document.
func (t *TextNode) Document() host.Document { return t.doc }
