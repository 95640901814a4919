package core

import (
	"fmt"
	"reflect"
	"testing"
)

func TestSignal_ValueAfterSet(t *testing.T) {
	s := NewSignal(10)
	for _, v := range []int{20, -1, 0, 42} {
		s.Set(v)
		if got := s.Value(); got != v {
			t.Errorf("Value() after Set(%d) = %d", v, got)
		}
	}
}

func TestSignal_SubscribeCallsImmediately(t *testing.T) {
	s := NewSignal(0)
	var calls []int

	s.Subscribe(func(v int) { calls = append(calls, v) })

	if !reflect.DeepEqual(calls, []int{0}) {
		t.Errorf("calls after Subscribe = %v, want [0]", calls)
	}
}

func TestSignal_History(t *testing.T) {
	s := NewSignal(10)
	var history []int

	s.Subscribe(func(v int) { history = append(history, v) })
	if s.Value() != 10 {
		t.Errorf("Value() = %d, want 10", s.Value())
	}

	s.Set(20)
	if s.Value() != 20 {
		t.Errorf("Value() = %d, want 20", s.Value())
	}
	if !reflect.DeepEqual(history, []int{10, 20}) {
		t.Errorf("history = %v, want [10 20]", history)
	}
}

func TestSignal_NotifiesInRegistrationOrder(t *testing.T) {
	s := NewSignal("a")
	var trace []string
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("s%d", i)
		s.Subscribe(func(v string) { trace = append(trace, name+":"+v) })
	}
	trace = nil

	s.Set("b")

	want := []string{"s1:b", "s2:b", "s3:b"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestSignal_DuplicateSubscriberRunsTwice(t *testing.T) {
	s := NewSignal(0)
	count := 0
	cb := func(int) { count++ }
	s.Subscribe(cb)
	s.Subscribe(cb)
	count = 0

	s.Set(1)

	if count != 2 {
		t.Errorf("duplicate subscriber ran %d times, want 2", count)
	}
	if s.SubscriberCount() != 2 {
		t.Errorf("SubscriberCount() = %d, want 2", s.SubscriberCount())
	}
}

func TestSignal_Update(t *testing.T) {
	s := NewSignal(1)
	var seen []int
	s.Subscribe(func(v int) { seen = append(seen, v) })

	s.Update(func(v int) int { return v * 10 })

	if s.Value() != 10 {
		t.Errorf("Value() = %d, want 10", s.Value())
	}
	if !reflect.DeepEqual(seen, []int{1, 10}) {
		t.Errorf("seen = %v, want [1 10]", seen)
	}
}

func TestSignal_ReentrantSetIsDepthFirst(t *testing.T) {
	s := NewSignal(0)
	var trace []string

	s.Subscribe(func(v int) {
		trace = append(trace, fmt.Sprintf("first(%d)", v))
		if v == 1 {
			s.Set(2)
		}
	})
	s.Subscribe(func(v int) {
		trace = append(trace, fmt.Sprintf("second(%d)", v))
	})
	trace = nil

	s.Set(1)

	want := []string{"first(1)", "first(2)", "second(2)", "second(1)"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
	if s.Value() != 2 {
		t.Errorf("Value() = %d, want 2 after nested Set", s.Value())
	}
}

func TestSignal_SubscriberAddedDuringFanOutWaits(t *testing.T) {
	s := NewSignal(0)
	late := 0
	added := false
	s.Subscribe(func(v int) {
		if v == 1 && !added {
			added = true
			s.Subscribe(func(int) { late++ })
		}
	})

	s.Set(1)
	if late != 1 {
		t.Fatalf("late subscriber ran %d times, want 1 (immediate call only)", late)
	}

	s.Set(2)
	if late != 2 {
		t.Errorf("late subscriber ran %d times after next Set, want 2", late)
	}
}

func TestSignal_PanicAbortsFanOut(t *testing.T) {
	s := NewSignal(0)
	reached := false
	s.Subscribe(func(v int) {
		if v != 0 {
			panic("boom")
		}
	})
	s.Subscribe(func(v int) {
		if v != 0 {
			reached = true
		}
	})

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recovered %v, want boom", r)
			}
		}()
		s.Set(1)
	}()

	if reached {
		t.Error("subscriber after the panicking one should not run")
	}
	if s.Value() != 1 {
		t.Errorf("Value() = %d, want 1; the store happens before notification", s.Value())
	}
}
