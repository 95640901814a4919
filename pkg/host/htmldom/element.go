package htmldom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// Element wraps an element node. The same node always yields the same
// *Element.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the owning document.
func (e *Element) Document() host.Document {
	return e.doc
}

// Node returns the underlying node.
func (e *Element) Node() *html.Node {
	return e.node
}

// TagName returns the lowercased tag.
func (e *Element) TagName() string {
	return e.node.Data
}

// SetAttribute sets or replaces an attribute.
func (e *Element) SetAttribute(name, value string) error {
	for i := range e.node.Attr {
		if e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return nil
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// GetAttribute returns an attribute value.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetProperty maps host properties onto the tree: "innerText" and
// "textContent" replace the children with a single text node, "className"
// sets the class attribute, and any other name sets the attribute of the
// same name.
func (e *Element) SetProperty(name, value string) error {
	switch name {
	case "innerText", "textContent":
		text, _ := e.doc.CreateTextNode(value)
		return e.ReplaceChildren(text)
	case "className":
		return e.SetAttribute("class", value)
	default:
		return e.SetAttribute(name, value)
	}
}

// Text returns the concatenated text of all descendant text nodes.
func (e *Element) Text() string {
	var sb strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

// Children returns the child nodes in order.
func (e *Element) Children() []host.Node {
	var out []host.Node
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			out = append(out, e.doc.wrap(c))
		case html.TextNode:
			out = append(out, &TextNode{doc: e.doc, node: c})
		}
	}
	return out
}

// AddEventListener attaches a proxy created by this document.
func (e *Element) AddEventListener(event string, h proxy.Handle) error {
	p, ok := h.(*Proxy)
	if !ok || p == nil || p.doc != e.doc {
		return host.ErrForeignProxy
	}
	e.doc.listeners[e.node] = append(e.doc.listeners[e.node], listener{event: event, proxy: p})
	return nil
}

// AppendChild moves child under e as its last child.
func (e *Element) AppendChild(child host.Node) error {
	n, err := e.doc.unwrap(child)
	if err != nil {
		return err
	}
	detach(n)
	e.node.AppendChild(n)
	return nil
}

// ReplaceChildren removes every child of e and appends nodes in order.
func (e *Element) ReplaceChildren(nodes ...host.Node) error {
	unwrapped := make([]*html.Node, 0, len(nodes))
	for _, child := range nodes {
		n, err := e.doc.unwrap(child)
		if err != nil {
			return err
		}
		unwrapped = append(unwrapped, n)
	}
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	for _, n := range unwrapped {
		detach(n)
		e.node.AppendChild(n)
	}
	return nil
}

// TextNode wraps a text node.
type TextNode struct {
	doc  *Document
	node *html.Node
}

// Document returns the owning document.
func (t *TextNode) Document() host.Document {
	return t.doc
}

// Data returns the text content.
func (t *TextNode) Data() string {
	return t.node.Data
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
