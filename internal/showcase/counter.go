package showcase

import (
	"fmt"

	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/vdom"
)

// CounterApp re-renders its whole card on every change.
type CounterApp struct {
	renderer *vdom.Renderer
	count    int
}

// NewCounterApp returns a counter that patches through r.
func NewCounterApp(r *vdom.Renderer) *CounterApp {
	return &CounterApp{renderer: r}
}

// Count returns the current count.
func (a *CounterApp) Count() int {
	return a.count
}

// Increment adds one and re-renders.
func (a *CounterApp) Increment(host.Event) {
	a.count++
	a.mustUpdate()
}

// Reset zeroes the count and re-renders.
func (a *CounterApp) Reset(host.Event) {
	a.count = 0
	a.mustUpdate()
}

// View describes the card for the current count.
func (a *CounterApp) View() vdom.Node {
	return vdom.H("div", vdom.Props{"class": "card"}, []vdom.Node{
		vdom.H("h2", nil, "Counter"),
		vdom.H("p", nil, fmt.Sprintf("Count: %d", a.count)),
		vdom.H("button", vdom.Props{"onclick": a.Increment}, "Increment"),
		vdom.H("button", vdom.Props{"onclick": a.Reset}, "Reset"),
	})
}

// Update patches the container with View.
func (a *CounterApp) Update() error {
	return a.renderer.Patch(a.View())
}

// Event handlers cannot return errors; a failed patch from inside one
// propagates as a panic to the host's dispatch.
func (a *CounterApp) mustUpdate() {
	if err := a.Update(); err != nil {
		panic(err)
	}
}
