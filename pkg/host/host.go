// Package host defines the boundary between guest code and the host-owned
// document tree.
//
// Guest code never owns host nodes: once a node is attached, the host keeps
// it. The renderer only uses the calls listed here, so any document
// implementation (a browser, an embedded JS runtime, an in-memory tree) can
// sit behind them. Adapters live in the htmldom, jsdom and wasmdom
// subpackages.
package host

import (
	"errors"

	"github.com/go-drift/tether/pkg/proxy"
)

// Sentinel errors shared by host adapters.
var (
	// ErrForeignNode is returned when a node from another document is passed in.
	ErrForeignNode = errors.New("host: node belongs to a different document")

	// ErrForeignProxy is returned when a listener was not created by this document.
	ErrForeignProxy = errors.New("host: proxy belongs to a different document")

	// ErrReleased is returned when a released proxy is invoked.
	ErrReleased = errors.New("host: proxy has been released")
)

// Event is delivered to listeners when the host dispatches an event.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string
	// Target is the element the event was dispatched on.
	Target Element
}

// EventHandler is a guest callback for host events.
type EventHandler func(Event)

// Node is any node realized in the host tree.
type Node interface {
	// Document returns the document that created the node.
	Document() Document
}

// Element is a host element.
type Element interface {
	Node

	// TagName returns the element's tag as given to CreateElement.
	TagName() string
	// SetAttribute sets a string-valued attribute.
	SetAttribute(name, value string) error
	// GetAttribute returns the attribute value and whether it is present.
	GetAttribute(name string) (string, bool)
	// SetProperty sets a host property such as "innerText" or "value".
	SetProperty(name, value string) error
	// AddEventListener attaches a proxy created by the same document.
	AddEventListener(event string, listener proxy.Handle) error
	// AppendChild appends child as the last child.
	AppendChild(child Node) error
	// ReplaceChildren removes every current child and appends nodes in order.
	ReplaceChildren(nodes ...Node) error
}

// Document is the host document.
type Document interface {
	// GetElementByID returns the element with the given id, or nil.
	GetElementByID(id string) Element
	// CreateElement creates a detached element.
	CreateElement(tag string) (Element, error)
	// CreateTextNode creates a detached text node.
	CreateTextNode(text string) (Node, error)
	// CreateProxy wraps fn so the host can call it. The caller is
	// responsible for keeping the returned handle alive.
	CreateProxy(fn EventHandler) proxy.Handle
}
