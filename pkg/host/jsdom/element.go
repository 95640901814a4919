package jsdom

import (
	"strings"

	"github.com/dop251/goja"
	"golang.org/x/net/html"

	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// Element is a JS element object owned by the runtime.
type Element struct {
	doc *Document
	obj *goja.Object
}

// Document returns the owning document.
func (e *Element) Document() host.Document {
	return e.doc
}

// Object returns the underlying JS object.
func (e *Element) Object() *goja.Object {
	return e.obj
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return e.obj.Get("localName").String()
}

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) error {
	_, err := e.doc.call("jsdom.SetAttribute", e.obj, "setAttribute", name, value)
	return err
}

// GetAttribute returns an attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	v, err := e.doc.call("jsdom.GetAttribute", e.obj, "getAttribute", name)
	if err != nil || goja.IsNull(v) {
		return "", false
	}
	return v.String(), true
}

// SetProperty assigns a host property. innerText, textContent, id and
// className are the document's own properties; any other name is written
// as an attribute.
func (e *Element) SetProperty(name, value string) error {
	switch name {
	case "innerText", "textContent", "id", "className":
		if err := e.obj.Set(name, value); err != nil {
			return e.doc.hostError("jsdom.SetProperty", name, err)
		}
		return nil
	}
	return e.SetAttribute(name, value)
}

// AddEventListener attaches a proxy created by this document.
func (e *Element) AddEventListener(event string, h proxy.Handle) error {
	p, ok := h.(*Proxy)
	if !ok || p.doc != e.doc {
		return host.ErrForeignProxy
	}
	_, err := e.doc.call("jsdom.AddEventListener", e.obj, "addEventListener", event, p.value)
	return err
}

// AppendChild appends child.
func (e *Element) AppendChild(child host.Node) error {
	obj, err := e.doc.unwrap(child)
	if err != nil {
		return err
	}
	_, err = e.doc.call("jsdom.AppendChild", e.obj, "appendChild", obj)
	return err
}

// ReplaceChildren replaces every child with nodes.
func (e *Element) ReplaceChildren(nodes ...host.Node) error {
	args := make([]any, len(nodes))
	for i, n := range nodes {
		obj, err := e.doc.unwrap(n)
		if err != nil {
			return err
		}
		args[i] = obj
	}
	_, err := e.doc.call("jsdom.ReplaceChildren", e.obj, "replaceChildren", args...)
	return err
}

// Text returns the element's textContent.
func (e *Element) Text() string {
	return e.obj.Get("textContent").String()
}

// TextNode is a JS text node.
type TextNode struct {
	doc *Document
	obj *goja.Object
}

// Document returns the owning document.
func (t *TextNode) Document() host.Document {
	return t.doc
}

// Data returns the node's text.
func (t *TextNode) Data() string {
	return t.obj.Get("data").String()
}

func escapeText(s string) string {
	// html.EscapeString also escapes quotes, which text content does not need.
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "&#34;", `"`)
	return strings.ReplaceAll(s, "&#39;", "'")
}
