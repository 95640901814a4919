package vdom

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/proxy"
)

const counterYAML = `
tag: div
props:
  class: card
  data-step: 2
children:
  - tag: h2
    children: Counter
  - tag: button
    props: {onclick: increment}
    children: Increment
  - plain text
`

func TestDecode(t *testing.T) {
	clicks := 0
	handlers := Handlers{"increment": func(host.Event) { clicks++ }}

	n, err := Decode([]byte(counterYAML), handlers)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	root, ok := n.(*Element)
	if !ok {
		t.Fatalf("Decode returned %T, want *Element", n)
	}
	if root.Tag != "div" || root.Props["class"] != "card" || root.Props["data-step"] != 2 {
		t.Errorf("root = %+v", root)
	}
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(root.Children))
	}
	h2 := root.Children[0].(*Element)
	if !reflect.DeepEqual(h2.Children, []Node{Text("Counter")}) {
		t.Errorf("h2 children = %#v", h2.Children)
	}
	if root.Children[2] != Text("plain text") {
		t.Errorf("third child = %#v", root.Children[2])
	}

	btn := root.Children[1].(*Element)
	cb, ok := btn.Props["onclick"].(Callback)
	if !ok {
		t.Fatalf("onclick = %T, want Callback", btn.Props["onclick"])
	}
	cb(host.Event{Type: "click"})
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestDecode_RendersThroughRenderer(t *testing.T) {
	doc := newDoc(t)
	r := NewRenderer(doc, "root", WithRegistry(proxy.NewRegistry()))
	n, err := Decode([]byte(counterYAML), Handlers{"increment": func(host.Event) {}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := r.Patch(n); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	want := `<div id="root"><div class="card" data-step="2"><h2>Counter</h2><button>Increment</button>plain text</div></div>`
	if got := doc.OuterHTML(r.Container()); got != want {
		t.Errorf("container =\n%s\nwant\n%s", got, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		is   error
	}{
		{"empty", "", "empty description", nil},
		{"no tag", "props: {a: b}", "element has no tag", nil},
		{"unknown key", "tag: div\nstyle: x", `unknown key "style"`, nil},
		{"unknown handler", "tag: a\nprops: {onclick: nope}", "", ErrUnknownHandler},
		{"nested prop", "tag: a\nprops: {x: [1]}", "must be a scalar", nil},
		{"null node", "tag: ul\nchildren: [~]", "", ErrNilNode},
		{"sequence root", "- a\n- b", "string or a mapping", nil},
		{"bad yaml", "tag: [", "parse description", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src), Handlers{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !stderrors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDecode_ChildrenNormalization(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"tag: p", 0},
		{"tag: p\nchildren: ~", 0},
		{"tag: p\nchildren: ''", 0},
		{"tag: p\nchildren: hi", 1},
		{"tag: p\nchildren: {tag: b}", 1},
		{"tag: p\nchildren: [a, b, {tag: i}]", 3},
	}
	for _, tt := range tests {
		n, err := Decode([]byte(tt.src), nil)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.src, err)
		}
		if got := len(n.(*Element).Children); got != tt.want {
			t.Errorf("Decode(%q) children = %d, want %d", tt.src, got, tt.want)
		}
	}
}
