package vdom

import "fmt"

// Node is a tree description: either a Text leaf or an *Element.
// Descriptions are data only and are not modified by rendering.
type Node interface {
	isNode()
}

// Text is a text leaf.
type Text string

func (Text) isNode() {}

// Props maps property names to values. Names starting with "on" are event
// handlers and must hold a Handler; everything else becomes a string
// attribute.
type Props map[string]any

// Element describes a host element with properties and ordered children.
type Element struct {
	Tag      string
	Props    Props
	Children []Node
}

func (*Element) isNode() {}

// H builds an element description.
//
// children is normalized to a slice: nil and "" become no children, a
// []Node, []any or []string is used element by element (nil entries of a
// []any are dropped), and any other
// single value becomes a one-element slice. Values that are not nodes or
// strings become text leaves through fmt.Sprint.
//
//	vdom.H("div", vdom.Props{"class": "card"}, []vdom.Node{
//	    vdom.H("h2", nil, "Counter"),
//	    vdom.H("button", vdom.Props{"onclick": vdom.Callback(inc)}, "Increment"),
//	})
func H(tag string, props Props, children any) *Element {
	if props == nil {
		props = Props{}
	}
	return &Element{
		Tag:      tag,
		Props:    props,
		Children: Children(children),
	}
}

// Children normalizes a children argument the way H does.
func Children(children any) []Node {
	switch c := children.(type) {
	case nil:
		return []Node{}
	case []Node:
		if c == nil {
			return []Node{}
		}
		return c
	case []any:
		out := make([]Node, 0, len(c))
		for _, child := range c {
			if child == nil {
				continue
			}
			out = append(out, toNode(child))
		}
		return out
	case []string:
		out := make([]Node, 0, len(c))
		for _, child := range c {
			out = append(out, Text(child))
		}
		return out
	case string:
		if c == "" {
			return []Node{}
		}
		return []Node{Text(c)}
	case Text:
		if c == "" {
			return []Node{}
		}
		return []Node{c}
	default:
		return []Node{toNode(c)}
	}
}

func toNode(v any) Node {
	switch n := v.(type) {
	case Node:
		return n
	case string:
		return Text(n)
	default:
		return Text(fmt.Sprint(n))
	}
}
