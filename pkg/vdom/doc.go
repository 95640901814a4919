// Package vdom builds host nodes from declarative tree descriptions.
//
// A description is plain data: Text leaves and *Element values built with H
// or decoded from YAML. A Renderer turns a description into host nodes and
// swaps it into its container:
//
//	r := vdom.NewRenderer(doc, "app")
//	count := core.NewSignal(0)
//	count.Subscribe(func(v int) {
//	    r.Patch(vdom.H("div", nil, []vdom.Node{
//	        vdom.H("p", nil, fmt.Sprintf("Count: %d", v)),
//	        vdom.H("button", vdom.Props{"onclick": vdom.Callback(func(host.Event) {
//	            count.Set(count.Value() + 1)
//	        })}, "Increment"),
//	    }))
//	})
//
// There is no diffing. Each Patch replaces the container's children with a
// freshly built tree, and each raw Callback in that tree is wrapped and
// retained in the proxy registry for the life of the process. Pass a
// Wrapped handle for long-lived handlers that should be wrapped only once.
package vdom
