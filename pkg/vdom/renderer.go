package vdom

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/logging"
	"github.com/go-drift/tether/pkg/proxy"
)

// Sentinel errors for rendering.
var (
	// ErrContainerNotFound is returned by Patch when the container id did
	// not resolve when the renderer was created.
	ErrContainerNotFound = stderrors.New("vdom: container not found")

	// ErrInvalidHandler is returned when an event property holds something
	// other than a Handler.
	ErrInvalidHandler = stderrors.New("vdom: event property does not hold a handler")

	// ErrNilNode is returned when a description contains a nil node.
	ErrNilNode = stderrors.New("vdom: nil node")
)

// Metrics receives render observations. See pkg/observability for a
// Prometheus implementation.
type Metrics interface {
	// ObservePatch is called after a successful Patch.
	ObservePatch(d time.Duration, nodes int)
	// ObserveProxy is called each time a raw callback is wrapped and retained.
	ObserveProxy()
}

type nopMetrics struct{}

func (nopMetrics) ObservePatch(time.Duration, int) {}
func (nopMetrics) ObserveProxy()                   {}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry retains wrapped callbacks in reg instead of proxy.Default.
func WithRegistry(reg *proxy.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

// Renderer realizes tree descriptions in a host document and swaps them
// into a single container element. Every Patch replaces the container's
// whole subtree; host-side state of the discarded nodes, such as focus or
// scroll position, is lost.
//
// Renderer is NOT thread-safe. It must only be used from the UI thread.
type Renderer struct {
	doc         host.Document
	containerID string
	container   host.Element
	registry    *proxy.Registry
	logger      *slog.Logger
	metrics     Metrics
}

// NewRenderer looks up the container once. A missing container is not an
// error here; the first Patch reports it.
func NewRenderer(doc host.Document, containerID string, opts ...Option) *Renderer {
	r := &Renderer{
		doc:         doc,
		containerID: containerID,
		registry:    proxy.Default,
		logger:      logging.Default(),
		metrics:     nopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.container = doc.GetElementByID(containerID)
	if r.container == nil {
		r.logger.Debug("render container not found", "id", containerID)
	}
	return r
}

// Container returns the resolved container, or nil.
func (r *Renderer) Container() host.Element {
	return r.container
}

// Registry returns the registry wrapped callbacks are retained in.
func (r *Renderer) Registry() *proxy.Registry {
	return r.registry
}

// CreateNode builds a detached host node tree from n. Raw callbacks in
// event properties are wrapped and registered before being attached.
func (r *Renderer) CreateNode(n Node) (host.Node, error) {
	var count int
	return r.createNode(n, &count)
}

// Patch builds a new host tree from tree and replaces all children of the
// container with it.
func (r *Renderer) Patch(tree Node) error {
	start := time.Now()
	var count int
	node, err := r.createNode(tree, &count)
	if err != nil {
		return err
	}
	if r.container == nil {
		return &errors.HostError{
			Op:     "vdom.Patch",
			Kind:   errors.KindRender,
			Target: r.containerID,
			Err:    ErrContainerNotFound,
		}
	}
	if err := r.container.ReplaceChildren(node); err != nil {
		return &errors.HostError{
			Op:     "vdom.Patch",
			Kind:   errors.KindHost,
			Target: r.containerID,
			Err:    err,
		}
	}
	elapsed := time.Since(start)
	r.metrics.ObservePatch(elapsed, count)
	r.logger.Debug("patched container", "id", r.containerID, "nodes", count, "elapsed", elapsed)
	return nil
}

func (r *Renderer) createNode(n Node, count *int) (host.Node, error) {
	switch v := n.(type) {
	case Text:
		*count++
		return r.doc.CreateTextNode(string(v))
	case *Element:
		if v == nil {
			return nil, ErrNilNode
		}
		return r.createElement(v, count)
	case nil:
		return nil, ErrNilNode
	default:
		return nil, fmt.Errorf("vdom: unsupported node type %T", n)
	}
}

func (r *Renderer) createElement(v *Element, count *int) (host.Node, error) {
	el, err := r.doc.CreateElement(v.Tag)
	if err != nil {
		return nil, fmt.Errorf("vdom: create <%s>: %w", v.Tag, err)
	}
	*count++

	for _, name := range sortedKeys(v.Props) {
		value := v.Props[name]
		if strings.HasPrefix(name, EventPrefix) {
			if err := r.attach(el, name, value); err != nil {
				return nil, err
			}
			continue
		}
		if err := el.SetAttribute(name, Stringify(value)); err != nil {
			return nil, fmt.Errorf("vdom: set %q on <%s>: %w", name, v.Tag, err)
		}
	}

	for _, child := range v.Children {
		node, err := r.createNode(child, count)
		if err != nil {
			return nil, err
		}
		if err := el.AppendChild(node); err != nil {
			return nil, fmt.Errorf("vdom: append to <%s>: %w", v.Tag, err)
		}
	}
	return el, nil
}

func (r *Renderer) attach(el host.Element, name string, value any) error {
	h, ok := asHandler(value)
	if !ok {
		return fmt.Errorf("%w: %q is %T", ErrInvalidHandler, name, value)
	}

	var handle proxy.Handle
	switch h := h.(type) {
	case Callback:
		handle = r.registry.Register(r.doc.CreateProxy(host.EventHandler(h)))
		r.metrics.ObserveProxy()
	case Wrapped:
		handle = h.Handle
	}

	event := name[len(EventPrefix):]
	if err := el.AddEventListener(event, handle); err != nil {
		return fmt.Errorf("vdom: listen %q on <%s>: %w", event, el.TagName(), err)
	}
	return nil
}

// Stringify converts a property value to the string passed to the host's
// SetAttribute: strings are used as-is, nil becomes "", and everything else
// is formatted with fmt.Sprint (so true becomes "true" and 1.5 "1.5").
//
// The formatting is fmt's: nil gives "" rather than "<nil>" or
// "None", and float64 1.0 gives "1" rather than "1.0". Pass a
// preformatted string when the exact text matters.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
