package vdom

import (
	stderrors "errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownHandler is returned by Decode when an event property names a
// handler that is not in the Handlers map.
var ErrUnknownHandler = stderrors.New("vdom: unknown handler")

// Handlers resolves handler names used in description files.
type Handlers map[string]Callback

// Decode parses a YAML tree description. A scalar is a text leaf; a mapping
// has a required "tag", an optional "props" mapping and optional
// "children", normalized like H. Event properties hold the name of an entry
// in handlers.
//
//	tag: div
//	props: {class: card}
//	children:
//	  - {tag: h2, children: Counter}
//	  - tag: button
//	    props: {onclick: increment}
//	    children: Increment
func Decode(data []byte, handlers Handlers) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vdom: parse description: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("vdom: empty description")
	}
	return decodeNode(doc.Content[0], handlers)
}

func decodeNode(n *yaml.Node, handlers Handlers) (Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, fmt.Errorf("vdom: line %d: %w", n.Line, ErrNilNode)
		}
		return Text(n.Value), nil
	case yaml.MappingNode:
		return decodeElement(n, handlers)
	case yaml.AliasNode:
		return decodeNode(n.Alias, handlers)
	default:
		return nil, fmt.Errorf("vdom: line %d: a node must be a string or a mapping", n.Line)
	}
}

func decodeElement(n *yaml.Node, handlers Handlers) (*Element, error) {
	el := &Element{Props: Props{}, Children: []Node{}}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "tag":
			if value.Kind != yaml.ScalarNode || value.Value == "" {
				return nil, fmt.Errorf("vdom: line %d: tag must be a non-empty string", value.Line)
			}
			el.Tag = value.Value
		case "props":
			props, err := decodeProps(value, handlers)
			if err != nil {
				return nil, err
			}
			el.Props = props
		case "children":
			children, err := decodeChildren(value, handlers)
			if err != nil {
				return nil, err
			}
			el.Children = children
		default:
			return nil, fmt.Errorf("vdom: line %d: unknown key %q", key.Line, key.Value)
		}
	}
	if el.Tag == "" {
		return nil, fmt.Errorf("vdom: line %d: element has no tag", n.Line)
	}
	return el, nil
}

func decodeProps(n *yaml.Node, handlers Handlers) (Props, error) {
	props := Props{}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return props, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("vdom: line %d: props must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("vdom: line %d: prop %q must be a scalar", value.Line, key.Value)
		}
		if strings.HasPrefix(key.Value, EventPrefix) {
			cb, ok := handlers[value.Value]
			if !ok || cb == nil {
				return nil, fmt.Errorf("vdom: line %d: %w: %q", value.Line, ErrUnknownHandler, value.Value)
			}
			props[key.Value] = cb
			continue
		}
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("vdom: line %d: prop %q: %w", value.Line, key.Value, err)
		}
		props[key.Value] = v
	}
	return props, nil
}

func decodeChildren(n *yaml.Node, handlers Handlers) ([]Node, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		out := make([]Node, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := decodeNode(c, handlers)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		}
		return out, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" || n.Value == "" {
			return []Node{}, nil
		}
		return []Node{Text(n.Value)}, nil
	default:
		child, err := decodeNode(n, handlers)
		if err != nil {
			return nil, err
		}
		return []Node{child}, nil
	}
}
