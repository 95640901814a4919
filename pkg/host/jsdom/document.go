// Package jsdom hosts the document inside an embedded JavaScript runtime.
//
// The document is a small script evaluated in a goja runtime, so every
// renderer call crosses a real language boundary: elements are JS objects,
// listeners are Go functions exposed as JS callables, and host exceptions
// come back as Go errors. Host console output goes to the configured logger.
package jsdom

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/logging"
	"github.com/go-drift/tether/pkg/proxy"
)

//go:embed dom.js
var domScript string

// Document is a host document living in a goja runtime.
// It is NOT thread-safe; goja runtimes must stay on one goroutine.
type Document struct {
	vm       *goja.Runtime
	obj      *goja.Object
	logger   *slog.Logger
	elements map[int64]*Element
}

// Option configures a Document.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	container string
}

// WithLogger routes host console output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithContainer appends an empty div with the given id to the body.
func WithContainer(id string) Option {
	return func(o *options) {
		o.container = id
	}
}

// New starts a runtime and evaluates the document script in it.
func New(opts ...Option) (*Document, error) {
	o := options{logger: logging.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	vm := goja.New()
	registry := require.NewRegistry()
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(printer{logger: o.logger}))
	registry.Enable(vm)
	console.Enable(vm)

	if _, err := vm.RunScript("dom.js", domScript); err != nil {
		return nil, &errors.HostError{Op: "jsdom.New", Kind: errors.KindHost, Err: err}
	}

	d := &Document{
		vm:       vm,
		obj:      vm.Get("document").ToObject(vm),
		logger:   o.logger,
		elements: make(map[int64]*Element),
	}

	if o.container != "" {
		el, err := d.CreateElement("div")
		if err != nil {
			return nil, err
		}
		if err := el.SetAttribute("id", o.container); err != nil {
			return nil, err
		}
		if err := d.Body().AppendChild(el); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Runtime returns the underlying goja runtime.
func (d *Document) Runtime() *goja.Runtime {
	return d.vm
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.wrap(d.obj.Get("body").ToObject(d.vm))
}

// Eval runs src in the document's runtime.
func (d *Document) Eval(src string) (goja.Value, error) {
	v, err := d.vm.RunString(src)
	if err != nil {
		return nil, &errors.HostError{Op: "jsdom.Eval", Kind: errors.KindHost, Err: err}
	}
	return v, nil
}

// GetElementByID returns the attached element whose id attribute equals id.
func (d *Document) GetElementByID(id string) host.Element {
	v, err := d.call("jsdom.GetElementByID", d.obj, "getElementById", id)
	if err != nil || goja.IsNull(v) || goja.IsUndefined(v) {
		return nil
	}
	return d.wrap(v.ToObject(d.vm))
}

// CreateElement creates a detached element. The tag is lowercased.
func (d *Document) CreateElement(tag string) (host.Element, error) {
	v, err := d.call("jsdom.CreateElement", d.obj, "createElement", tag)
	if err != nil {
		return nil, err
	}
	return d.wrap(v.ToObject(d.vm)), nil
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) (host.Node, error) {
	v, err := d.call("jsdom.CreateTextNode", d.obj, "createTextNode", text)
	if err != nil {
		return nil, err
	}
	return &TextNode{doc: d, obj: v.ToObject(d.vm)}, nil
}

// CreateProxy exposes fn to the runtime as a JS function.
func (d *Document) CreateProxy(fn host.EventHandler) proxy.Handle {
	p := &Proxy{doc: d, fn: fn}
	p.value = d.vm.ToValue(p.call)
	return p
}

// Dispatch calls dispatchEvent on target and returns how many listeners
// completed. Listener exceptions are logged by the host and do not stop
// the remaining listeners.
func (d *Document) Dispatch(target host.Element, event string) (int, error) {
	el, ok := target.(*Element)
	if !ok || el.doc != d {
		return 0, host.ErrForeignNode
	}
	v, err := d.call("jsdom.Dispatch", el.obj, "dispatchEvent", event)
	if err != nil {
		return 0, err
	}
	return int(v.ToInteger()), nil
}

// ListenerCount returns the number of listeners for event on el.
func (d *Document) ListenerCount(el host.Element, event string) int {
	e, ok := el.(*Element)
	if !ok || e.doc != d {
		return 0
	}
	v, err := d.call("jsdom.ListenerCount", e.obj, "listenerCount", event)
	if err != nil {
		return 0
	}
	return int(v.ToInteger())
}

// OuterHTML returns the serialized form of n.
func (d *Document) OuterHTML(n host.Node) string {
	switch v := n.(type) {
	case *Element:
		if v.doc == d {
			return v.obj.Get("outerHTML").String()
		}
	case *TextNode:
		if v.doc == d {
			return escapeText(v.Data())
		}
	}
	return ""
}

// call invokes obj[method](args...) and converts a thrown exception into a
// *errors.HostError.
func (d *Document) call(op string, obj *goja.Object, method string, args ...any) (goja.Value, error) {
	fn, ok := goja.AssertFunction(obj.Get(method))
	if !ok {
		return nil, &errors.HostError{
			Op:   op,
			Kind: errors.KindHost,
			Err:  fmt.Errorf("%s is not a function", method),
		}
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = d.vm.ToValue(a)
	}
	v, err := fn(obj, vals...)
	if err != nil {
		return nil, &errors.HostError{Op: op, Kind: errors.KindHost, Target: method, Err: err}
	}
	return v, nil
}

func (d *Document) hostError(op, target string, err error) error {
	return &errors.HostError{Op: op, Kind: errors.KindHost, Target: target, Err: fmt.Errorf("jsdom: %w", err)}
}

func (d *Document) wrap(obj *goja.Object) *Element {
	id := obj.Get("__id").ToInteger()
	if el, ok := d.elements[id]; ok {
		return el
	}
	el := &Element{doc: d, obj: obj}
	d.elements[id] = el
	return el
}

func (d *Document) unwrap(n host.Node) (*goja.Object, error) {
	switch v := n.(type) {
	case *Element:
		if v != nil && v.doc == d {
			return v.obj, nil
		}
	case *TextNode:
		if v != nil && v.doc == d {
			return v.obj, nil
		}
	}
	return nil, host.ErrForeignNode
}
