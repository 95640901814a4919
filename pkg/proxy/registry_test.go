package proxy

import "testing"

type fakeHandle struct {
	name     string
	released bool
}

func (h *fakeHandle) Release() {
	h.released = true
}

func TestRegistry_RegisterReturnsSameHandle(t *testing.T) {
	r := NewRegistry()
	h := &fakeHandle{name: "click"}

	got := r.Register(h)
	if got != Handle(h) {
		t.Fatalf("Register returned %v, want the same handle", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if h.released {
		t.Error("registry must not release handles")
	}
}

func TestRegistry_KeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	a := &fakeHandle{name: "a"}
	b := &fakeHandle{name: "b"}
	c := &fakeHandle{name: "c"}
	r.Register(a)
	r.Register(b)
	r.Register(c)

	handles := r.Handles()
	want := []*fakeHandle{a, b, c}
	if len(handles) != len(want) {
		t.Fatalf("Handles() returned %d entries, want %d", len(handles), len(want))
	}
	for i, h := range handles {
		if h != Handle(want[i]) {
			t.Errorf("Handles()[%d] = %v, want %s", i, h, want[i].name)
		}
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	h := &fakeHandle{}
	r.Register(h)
	r.Register(h)

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2 for duplicate registration", r.Len())
	}
}

func TestRegistry_HandlesIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeHandle{})

	handles := r.Handles()
	handles[0] = nil

	if r.Handles()[0] == nil {
		t.Error("mutating the returned slice must not affect the registry")
	}
}

func TestRegistry_Contains(t *testing.T) {
	r := NewRegistry()
	kept := &fakeHandle{}
	other := &fakeHandle{}
	r.Register(kept)

	if !r.Contains(kept) {
		t.Error("Contains(kept) = false, want true")
	}
	if r.Contains(other) {
		t.Error("Contains(other) = true, want false")
	}
}

func TestKeepAlive_UsesDefault(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	h := KeepAlive(&fakeHandle{name: "typed"})
	if h.name != "typed" {
		t.Errorf("KeepAlive returned %q, want the typed handle", h.name)
	}
	if Default.Len() != 1 {
		t.Errorf("Default.Len() = %d, want 1", Default.Len())
	}
	if !Default.Contains(h) {
		t.Error("Default registry should contain the kept handle")
	}
}
