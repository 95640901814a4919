package core

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Sentinel errors for record field access.
var (
	// ErrUnknownField is returned when a field name does not exist on the record.
	ErrUnknownField = errors.New("core: unknown field")

	// ErrFieldType is returned when a value cannot be stored in a field.
	ErrFieldType = errors.New("core: value not assignable to field")
)

// Record wraps a plain struct value and adds per-field subscriptions.
// Assigning one field only notifies that field's subscribers, so a change to
// one field never triggers updates bound to another.
//
// Fields are addressed by their exported Go name, or by the name given in an
// `observe:"..."` struct tag. A tag of "-" hides the field.
//
//	type AppState struct {
//	    Count    int    `observe:"count"`
//	    Username string `observe:"username"`
//	}
//
//	store := core.NewRecord(func(r *core.Record[AppState]) {
//	    r.Set("username", "Go Developer")
//	})
//	store.Subscribe("count", func(v any) { ... })
//	store.Set("count", 1)
//
// Record is NOT thread-safe. It must only be accessed from the UI thread.
type Record[T any] struct {
	value       T
	fields      map[string]int
	subscribers map[string][]func(any)
}

// NewRecord creates a record holding the zero value of T and then runs init,
// if non-nil, against it. The subscriber map exists before init runs, so
// init may call Set.
func NewRecord[T any](init func(r *Record[T])) *Record[T] {
	r := &Record[T]{
		fields:      fieldIndex(reflect.TypeOf((*T)(nil)).Elem()),
		subscribers: make(map[string][]func(any)),
	}
	if init != nil {
		init(r)
	}
	return r
}

// Get returns the current value of field.
func (r *Record[T]) Get(field string) (any, error) {
	fv, err := r.field(field)
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

// Set stores value in field and then calls that field's subscribers, in
// registration order, with the stored value. Fields without subscribers are
// stored silently. Nothing is stored or notified when an error is returned.
func (r *Record[T]) Set(field string, value any) error {
	fv, err := r.field(field)
	if err != nil {
		return err
	}
	nv, err := assignable(fv.Type(), value)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrFieldType, field, err)
	}
	fv.Set(nv)

	stored := fv.Interface()
	subs := r.subscribers[field]
	for _, cb := range subs {
		cb(stored)
	}
	return nil
}

// Subscribe appends cb to field's subscribers and immediately calls it with
// the field's current value. The field name is not validated before the
// subscription is recorded: subscribing to a field that does not exist
// leaves the subscription in place and returns ErrUnknownField from the
// immediate read.
func (r *Record[T]) Subscribe(field string, cb func(any)) error {
	r.subscribers[field] = append(r.subscribers[field], cb)
	current, err := r.Get(field)
	if err != nil {
		return err
	}
	cb(current)
	return nil
}

// SubscriberCount returns the number of subscribers registered for field.
func (r *Record[T]) SubscriberCount(field string) int {
	return len(r.subscribers[field])
}

// Snapshot returns a copy of the wrapped struct.
func (r *Record[T]) Snapshot() T {
	return r.value
}

// Fields returns the addressable field names in declaration order.
func (r *Record[T]) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r.fields[names[i]] < r.fields[names[j]]
	})
	return names
}

func (r *Record[T]) field(name string) (reflect.Value, error) {
	idx, ok := r.fields[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return reflect.ValueOf(&r.value).Elem().Field(idx), nil
}

// SubscribeField is a typed form of Record.Subscribe. When the field exists
// and its type cannot be held by V, nothing is subscribed and ErrFieldType
// is returned.
func SubscribeField[T, V any](r *Record[T], field string, cb func(V)) error {
	if fv, err := r.field(field); err == nil {
		if !fv.Type().AssignableTo(reflect.TypeOf((*V)(nil)).Elem()) {
			return fmt.Errorf("%w: %q is %s", ErrFieldType, field, fv.Type())
		}
	}
	return r.Subscribe(field, func(v any) {
		typed, _ := v.(V)
		cb(typed)
	})
}

// SetField is a typed form of Record.Set.
func SetField[T, V any](r *Record[T], field string, value V) error {
	return r.Set(field, value)
}

func fieldIndex(t reflect.Type) map[string]int {
	fields := make(map[string]int)
	if t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("observe"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields[name] = i
	}
	return fields
}

func assignable(t reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), t)
	}
	return v, nil
}
