package showcase

import (
	"github.com/go-drift/tether/pkg/bind"
	"github.com/go-drift/tether/pkg/core"
	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

// AppState is the observer demo's record.
type AppState struct {
	Count    int    `observe:"count"`
	Username string `observe:"username"`
}

// ObserverDemo binds record fields to fixed elements.
type ObserverDemo struct {
	Store *core.Record[AppState]
}

// NewObserverDemo returns the demo with its default username.
func NewObserverDemo() *ObserverDemo {
	return &ObserverDemo{
		Store: core.NewRecord(func(r *core.Record[AppState]) {
			must("showcase.NewObserverDemo", "username", errors.KindUnknown,
				core.SetField(r, "username", "Go Developer"))
		}),
	}
}

// Setup binds the fields and attaches the listeners.
func (o *ObserverDemo) Setup(doc host.Document, reg *proxy.Registry) error {
	bindings := []struct{ field, id, attr string }{
		{"count", ObserverCount, ""},
		{"count", ObserverBadge, "title"},
		{"username", ObserverName, ""},
	}
	for _, b := range bindings {
		if err := bind.Field(doc, o.Store, b.field, b.id, b.attr); err != nil {
			return err
		}
	}

	if err := listen(doc, reg, ObserverInc, "click", o.Increment); err != nil {
		return err
	}
	return listen(doc, reg, ObserverInput, "input", o.UpdateName)
}

// Increment adds one to the count field.
func (o *ObserverDemo) Increment(host.Event) {
	must("showcase.Increment", "count", errors.KindListener,
		core.SetField(o.Store, "count", o.Store.Snapshot().Count+1))
}

// UpdateName copies the event target's value into the username field.
func (o *ObserverDemo) UpdateName(ev host.Event) {
	if ev.Target == nil {
		return
	}
	value, _ := ev.Target.GetAttribute("value")
	must("showcase.UpdateName", "username", errors.KindListener,
		core.SetField(o.Store, "username", value))
}
