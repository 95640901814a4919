// Package bind keeps host element properties in sync with reactive state.
package bind

import (
	"github.com/go-drift/tether/pkg/core"
	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/vdom"
)

// DefaultProperty is the property written when none is given.
const DefaultProperty = "innerText"

// FieldSource is a record that supports per-field subscriptions, such as
// *core.Record.
type FieldSource interface {
	Subscribe(field string, cb func(any)) error
}

// Field writes field of src into the attr property of the element with the
// given id, now and after every change. The element is looked up on each
// change, so it may appear later; changes made while it is absent are
// skipped. An empty attr means DefaultProperty. A failed property write
// panics with an *errors.HostError, which propagates out of the Set that
// triggered it like any other subscriber fault.
func Field(doc host.Document, src FieldSource, field, elementID, attr string) error {
	return src.Subscribe(field, updater(doc, elementID, attr))
}

// Signal is like Field for a single-value signal.
func Signal[T any](doc host.Document, sig *core.Signal[T], elementID, attr string) {
	update := updater(doc, elementID, attr)
	sig.Subscribe(func(v T) { update(v) })
}

func updater(doc host.Document, elementID, attr string) func(any) {
	if attr == "" {
		attr = DefaultProperty
	}
	return func(v any) {
		el := doc.GetElementByID(elementID)
		if el == nil {
			return
		}
		if err := el.SetProperty(attr, vdom.Stringify(v)); err != nil {
			panic(&errors.HostError{Op: "bind.SetProperty", Kind: errors.KindHost, Target: elementID, Err: err})
		}
	}
}
