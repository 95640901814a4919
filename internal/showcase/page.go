// Package showcase holds the demo applications mounted by the CLI and the
// browser build: a declaratively rendered counter, a signal-driven card and
// a record bound to fixed elements.
package showcase

import (
	"fmt"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
	"github.com/go-drift/tether/pkg/vdom"
)

// Element ids the demos expect in the page.
const (
	CounterRoot = "vdom-root"

	SignalCard   = "sig-card"
	SignalCount  = "sig-count"
	SignalDouble = "sig-double"
	SignalInc    = "sig-inc"
	SignalTheme  = "sig-theme"

	ObserverCount = "count-display"
	ObserverBadge = "count-badge"
	ObserverName  = "name-display"
	ObserverInc   = "obs-inc"
	ObserverInput = "name-input"
)

// Page is a host page containing every element the demos bind to.
const Page = `<!DOCTYPE html>
<html>
<head><title>tether showcase</title></head>
<body>
<section id="vdom-root"></section>
<section id="sig-card">
<p>Count: <span id="sig-count"></span></p>
<p>Double: <span id="sig-double"></span></p>
<button id="sig-inc">+1</button>
<button id="sig-theme">Toggle theme</button>
</section>
<section>
<p>Count: <span id="count-display"></span> <span id="count-badge">*</span></p>
<p>Hello, <b id="name-display"></b></p>
<button id="obs-inc">+1</button>
<input id="name-input">
</section>
</body>
</html>`

// Showcase is the set of mounted demos.
type Showcase struct {
	Counter  *CounterApp
	Signals  *SignalsDemo
	Observer *ObserverDemo
}

// Mount sets every demo up against doc. Proxies for listeners attached by
// hand are kept alive in reg; the counter's renderer uses reg as well.
func Mount(doc host.Document, reg *proxy.Registry, opts ...vdom.Option) (*Showcase, error) {
	opts = append([]vdom.Option{vdom.WithRegistry(reg)}, opts...)
	counter := NewCounterApp(vdom.NewRenderer(doc, CounterRoot, opts...))
	if err := counter.Update(); err != nil {
		return nil, fmt.Errorf("showcase: counter: %w", err)
	}

	signals := NewSignalsDemo()
	if err := signals.Setup(doc, reg); err != nil {
		return nil, fmt.Errorf("showcase: signals: %w", err)
	}

	observer := NewObserverDemo()
	if err := observer.Setup(doc, reg); err != nil {
		return nil, fmt.Errorf("showcase: observer: %w", err)
	}

	return &Showcase{Counter: counter, Signals: signals, Observer: observer}, nil
}

// listen attaches fn to the element with the given id and keeps the proxy
// alive in reg. A missing element is skipped.
func listen(doc host.Document, reg *proxy.Registry, id, event string, fn host.EventHandler) error {
	el := doc.GetElementByID(id)
	if el == nil {
		return nil
	}
	return el.AddEventListener(event, reg.Register(doc.CreateProxy(fn)))
}

// must panics with a *errors.HostError when err is set. Listeners and
// subscribers have no error return.
func must(op, target string, kind errors.ErrorKind, err error) {
	if err != nil {
		panic(&errors.HostError{Op: op, Kind: kind, Target: target, Err: err})
	}
}

// setProperty writes a property on the element with the given id. A missing
// element is skipped.
func setProperty(doc host.Document, id, name, value string) {
	if el := doc.GetElementByID(id); el != nil {
		must("showcase.SetProperty", id, errors.KindHost, el.SetProperty(name, value))
	}
}
