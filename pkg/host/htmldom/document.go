// Package htmldom is an in-memory host document built on golang.org/x/net/html.
//
// It backs the CLI and the test harness. Elements are *html.Node values;
// listeners are kept per node and run synchronously by Dispatch. Events do
// not bubble.
package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

const emptyPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory host document.
// It is NOT thread-safe.
type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node][]listener
}

type listener struct {
	event string
	proxy *Proxy
}

// New returns a document with an empty head and body.
func New() *Document {
	doc, err := Parse(strings.NewReader(emptyPage))
	if err != nil {
		// The constant page always parses.
		panic(err)
	}
	return doc
}

// Parse reads an HTML page into a document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node][]listener),
	}, nil
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or nil.
func (d *Document) Body() *Element {
	n := htmlquery.FindOne(d.root, "//body")
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// AppendContainer appends an empty div with the given id to the body and
// returns it. The id is stored as an attribute value, so any string is kept
// verbatim.
func (d *Document) AppendContainer(id string) (*Element, error) {
	body := d.Body()
	if body == nil {
		return nil, fmt.Errorf("htmldom: document has no body")
	}
	div := d.wrap(&html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err := div.SetAttribute("id", id); err != nil {
		return nil, err
	}
	if err := body.AppendChild(div); err != nil {
		return nil, err
	}
	return div, nil
}

// GetElementByID returns the attached element whose id attribute equals id.
func (d *Document) GetElementByID(id string) host.Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if v, ok := attr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// CreateElement creates a detached element. The tag is lowercased.
func (d *Document) CreateElement(tag string) (host.Element, error) {
	if tag == "" {
		return nil, fmt.Errorf("htmldom: empty tag name")
	}
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n), nil
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) (host.Node, error) {
	return &TextNode{doc: d, node: &html.Node{Type: html.TextNode, Data: text}}, nil
}

// CreateProxy wraps fn so elements of this document can call it.
func (d *Document) CreateProxy(fn host.EventHandler) proxy.Handle {
	return &Proxy{doc: d, fn: fn}
}

// Query returns the elements matching an XPath expression.
func (d *Document) Query(xpath string) ([]*Element, error) {
	nodes, err := htmlquery.QueryAll(d.root, xpath)
	if err != nil {
		return nil, fmt.Errorf("htmldom: query %q: %w", xpath, err)
	}
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, d.wrap(n))
		}
	}
	return out, nil
}

// ElementFor returns the wrapper for an element node of this document's
// tree, or nil when n is not an element.
func (d *Document) ElementFor(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return d.wrap(n)
}

// Dispatch runs the listeners registered on target for event, in
// registration order, and returns how many ran. A listener that panics or
// whose proxy was released is reported through pkg/errors and does not stop
// the remaining listeners.
func (d *Document) Dispatch(target host.Element, event string) (int, error) {
	el, ok := target.(*Element)
	if !ok || el.doc != d {
		return 0, host.ErrForeignNode
	}
	var matching []*Proxy
	for _, l := range d.listeners[el.node] {
		if l.event == event {
			matching = append(matching, l.proxy)
		}
	}
	ran := 0
	for _, p := range matching {
		if d.invoke(p, host.Event{Type: event, Target: el}) {
			ran++
		}
	}
	return ran, nil
}

func (d *Document) invoke(p *Proxy, ev host.Event) (ok bool) {
	defer errors.RecoverWithCallback("htmldom.Dispatch", func(any) { ok = false })
	if err := p.Call(ev); err != nil {
		errors.Report(&errors.HostError{
			Op:     "htmldom.Dispatch",
			Kind:   errors.KindListener,
			Target: ev.Type,
			Err:    err,
		})
		return false
	}
	return true
}

// ListenerCount returns the number of listeners for event on el.
func (d *Document) ListenerCount(el host.Element, event string) int {
	e, ok := el.(*Element)
	if !ok || e.doc != d {
		return 0
	}
	count := 0
	for _, l := range d.listeners[e.node] {
		if l.event == event {
			count++
		}
	}
	return count
}

// Listeners returns the number of listeners on el per event type.
func (d *Document) Listeners(el host.Element) map[string]int {
	e, ok := el.(*Element)
	if !ok || e.doc != d {
		return nil
	}
	var out map[string]int
	for _, l := range d.listeners[e.node] {
		if out == nil {
			out = make(map[string]int)
		}
		out[l.event]++
	}
	return out
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// OuterHTML returns the HTML of n and its descendants.
func (d *Document) OuterHTML(n host.Node) string {
	hn, err := d.unwrap(n)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, hn); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func (d *Document) unwrap(n host.Node) (*html.Node, error) {
	switch v := n.(type) {
	case *Element:
		if v != nil && v.doc == d {
			return v.node, nil
		}
	case *TextNode:
		if v != nil && v.doc == d {
			return v.node, nil
		}
	}
	return nil, host.ErrForeignNode
}

// walk visits n and its descendants depth-first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
