package testing

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/tether/pkg/host"
	"github.com/go-drift/tether/pkg/vdom"
)

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(vdom.H("div", vdom.Props{"class": "card"}, []vdom.Node{
		vdom.H("button", vdom.Props{"onclick": func(host.Event) {}}, "go"),
		vdom.Text("tail"),
	}))

	snap := tester.CaptureSnapshot()
	if len(snap.Tree) != 1 {
		t.Fatalf("expected one root node, got %d", len(snap.Tree))
	}
	root := snap.Tree[0]
	if root.Tag != "div" || root.Attrs["class"] != "card" {
		t.Errorf("root = %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected two children, got %d", len(root.Children))
	}
	if root.Children[0].Listeners["click"] != 1 {
		t.Errorf("button listeners = %v", root.Children[0].Listeners)
	}
	if root.Children[1].Text != "tail" {
		t.Errorf("text child = %+v", root.Children[1])
	}
	if snap.Proxies != 1 {
		t.Errorf("proxies = %d, want 1", snap.Proxies)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(vdom.H("p", nil, "a"))
	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}

	tester.Mount(vdom.H("p", nil, "b"))
	c := tester.CaptureSnapshot()
	diff := a.Diff(c)
	if !strings.Contains(diff, `"text": "b"`) || !strings.Contains(diff, `"text": "a"`) {
		t.Errorf("unexpected diff:\n%s", diff)
	}
}

// fakeT records failures instead of stopping the test.
type fakeT struct {
	fatals []string
	errors []string
}

func (f *fakeT) Helper()                           {}
func (f *fakeT) Fatalf(format string, args ...any) { f.fatals = append(f.fatals, format) }
func (f *fakeT) Errorf(format string, args ...any) { f.errors = append(f.errors, format) }
func (f *fakeT) Name() string                      { return "TestFake" }

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewTesterWithT(t)
	tester.Mount(vdom.H("p", vdom.Props{"title": "x"}, "hello"))
	path := filepath.Join(t.TempDir(), "nested", "p.snapshot.json")

	snap := tester.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	ft := &fakeT{}
	snap.MatchesFile(ft, path)
	if len(ft.fatals)+len(ft.errors) != 0 {
		t.Errorf("expected match, got fatals=%v errors=%v", ft.fatals, ft.errors)
	}

	tester.Mount(vdom.H("p", vdom.Props{"title": "y"}, "hello"))
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 1 {
		t.Errorf("expected one mismatch error, got %v", ft.errors)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewTesterWithT(t)
	ft := &fakeT{}

	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "missing.json"))
	if len(ft.fatals) != 1 {
		t.Errorf("expected one fatal, got %v", ft.fatals)
	}
}

func TestSnapshot_UpdateEnv(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "1")
	tester := NewTesterWithT(t)
	tester.Mount(vdom.Text("x"))
	path := filepath.Join(t.TempDir(), "env.json")
	ft := &fakeT{}

	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.fatals)+len(ft.errors) != 0 {
		t.Fatalf("update should not fail: %v %v", ft.fatals, ft.errors)
	}
	loaded, err := loadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Tree) != 1 || loaded.Tree[0].Text != "x" {
		t.Errorf("loaded = %+v", loaded.Tree)
	}
}
