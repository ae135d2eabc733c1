package component

import (
	"fmt"
	"reflect"
)

// entry is a registered listener along with its registration index. It is
// activated once its Initialize hook returned without error, and only
// activated entries are torn down. The one exception is a child component
// which failed while starting: it is still stopped, so that it releases
// whatever it had activated itself. A child which refused to start because it
// was not Idle is left alone.
type entry struct {
	// What the registry reports to queries: the listener itself, or the
	// child component for children
	value     interface{}
	listener  Listener
	index     int
	activated bool
	failed    bool
}

func (e *entry) needsTeardown() bool {
	if e.activated {
		return true
	}
	_, isChild := e.listener.(*childListener)
	return isChild && e.failed
}

// registry is the ordered sequence of the listeners and children of a
// container. Registration order defines the initialization order, and its
// reverse the teardown order. It is not safe for concurrent use; the owning
// container guards it with its lifecycle lock.
type registry struct {
	entries []*entry
	next    int
}

func (r *registry) add(value interface{}, l Listener) (*entry, error) {
	if value == nil || l == nil {
		return nil, fmt.Errorf("cannot register a nil listener")
	}
	if r.find(value) >= 0 {
		return nil, fmt.Errorf("%T: %w", value, errAlreadyRegistered)
	}
	e := &entry{value: value, listener: l, index: r.next}
	r.next++
	r.entries = append(r.entries, e)
	return e, nil
}

// drop removes e, which must have been returned by add, without any check.
func (r *registry) drop(e *entry) {
	for i, candidate := range r.entries {
		if candidate == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *registry) remove(value interface{}) (*entry, error) {
	i := r.find(value)
	if i < 0 {
		return nil, fmt.Errorf("%T: %w", value, errNotRegistered)
	}
	e := r.entries[i]
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return e, nil
}

func (r *registry) find(value interface{}) int {
	for i, e := range r.entries {
		if sameValue(e.value, value) {
			return i
		}
	}
	return -1
}

// values returns a copy of the registered values in registration order.
func (r *registry) values() []interface{} {
	res := make([]interface{}, len(r.entries))
	for i, e := range r.entries {
		res[i] = e.value
	}
	return res
}

// teardownOrder returns the entries to tear down, in reverse registration
// order.
func (r *registry) teardownOrder() []*entry {
	var res []*entry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].needsTeardown() {
			res = append(res, r.entries[i])
		}
	}
	return res
}

// sameValue compares two registered values by identity. Values whose dynamic
// type is not comparable never match, rather than panicking.
func sameValue(a, b interface{}) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Queryable is implemented by containers exposing their registered listeners
// and children.
type Queryable interface {
	// Listeners returns the registered listeners and children in
	// registration order.
	Listeners() []interface{}
}

// Query returns, in registration order, the listeners and children of q that
// are of type T. T is typically a concrete listener type or an interface
// describing a capability.
func Query[T any](q Queryable) []T {
	var res []T
	for _, v := range q.Listeners() {
		if t, ok := v.(T); ok {
			res = append(res, t)
		}
	}
	return res
}

// QueryTree is like Query, but also searches the children of q that are
// themselves Queryable, depth-first in registration order.
func QueryTree[T any](q Queryable) []T {
	var res []T
	visited := map[interface{}]bool{}
	var walk func(Queryable)
	walk = func(q Queryable) {
		if reflect.TypeOf(q).Comparable() {
			if visited[q] {
				return
			}
			visited[q] = true
		}
		for _, v := range q.Listeners() {
			if t, ok := v.(T); ok {
				res = append(res, t)
			}
			if nested, ok := v.(Queryable); ok {
				walk(nested)
			}
		}
	}
	walk(q)
	return res
}
