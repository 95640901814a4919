package testing

import (
	"fmt"
	"testing"

	"github.com/go-drift/tether/pkg/host/htmldom"
	"github.com/go-drift/tether/pkg/proxy"
	"github.com/go-drift/tether/pkg/vdom"
)

// DefaultContainerID is the id of the container div the tester renders into.
const DefaultContainerID = "app"

// Tester mounts trees into an in-memory document and drives events.
type Tester struct {
	doc       *htmldom.Document
	renderer  *vdom.Renderer
	registry  *proxy.Registry
	container *htmldom.Element
}

// NewTester creates a tester with an empty container.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...vdom.Option) *Tester {
	doc := htmldom.New()
	container, err := doc.AppendContainer(DefaultContainerID)
	if err != nil {
		// htmldom.New always has a body.
		panic(err)
	}
	registry := proxy.NewRegistry()
	opts = append([]vdom.Option{vdom.WithRegistry(registry)}, opts...)
	return &Tester{
		doc:       doc,
		renderer:  vdom.NewRenderer(doc, DefaultContainerID, opts...),
		registry:  registry,
		container: container,
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB, opts ...vdom.Option) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup releases every proxy created while mounting.
func (t *Tester) Cleanup() {
	for _, h := range t.registry.Handles() {
		h.Release()
	}
}

// Mount renders tree into the container, replacing what was there.
func (t *Tester) Mount(tree vdom.Node) error {
	return t.renderer.Patch(tree)
}

// Document returns the tester's document.
func (t *Tester) Document() *htmldom.Document {
	return t.doc
}

// Renderer returns the renderer bound to the container.
func (t *Tester) Renderer() *vdom.Renderer {
	return t.renderer
}

// Registry returns the registry holding the tester's proxies.
func (t *Tester) Registry() *proxy.Registry {
	return t.registry
}

// Container returns the container element.
func (t *Tester) Container() *htmldom.Element {
	return t.container
}

// HTML returns the container's outer HTML.
func (t *Tester) HTML() string {
	return t.doc.OuterHTML(t.container)
}

// Find evaluates a finder against the container's subtree.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		elements: finder.Evaluate(t.container),
		finder:   finder,
	}
}

// Tap dispatches a click on the first element matched by finder.
func (t *Tester) Tap(finder Finder) error {
	return t.Dispatch(finder, "click")
}

// Dispatch fires event on the first element matched by finder and returns
// an error if nothing matched or no listener ran.
func (t *Tester) Dispatch(finder Finder, event string) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Dispatch: finder matched no elements: %s", finder.Description())
	}
	ran, err := t.doc.Dispatch(result.First(), event)
	if err != nil {
		return err
	}
	if ran == 0 {
		return fmt.Errorf("Dispatch: no %q listener ran on %s", event, finder.Description())
	}
	return nil
}
