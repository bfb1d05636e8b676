package fiber

import (
	"slices"
)

// Fiber is the named, immutable collection of elements an instance
// attaches to one object of its category. Element order is not
// semantically meaningful; Elems and Snapshot return elements in the
// canonical Compare order so equal fibers serialize identically.
type Fiber struct {
	name  string
	elems []Value
}

// New constructs a fiber. Elements are copied and stored in canonical
// order with duplicates preserved (deduplication is a combiner policy,
// not a fiber property).
func New(name string, elems ...Value) Fiber {
	sorted := slices.Clone(elems)
	slices.SortStableFunc(sorted, Compare)
	return Fiber{name: name, elems: sorted}
}

// Name returns the fiber's name.
func (f Fiber) Name() string { return f.name }

// Len returns the number of elements.
func (f Fiber) Len() int { return len(f.elems) }

// Empty reports whether the fiber has no elements.
func (f Fiber) Empty() bool { return len(f.elems) == 0 }

// Elems returns the elements in canonical order. The returned slice is
// a copy.
func (f Fiber) Elems() []Value {
	return slices.Clone(f.elems)
}

// Contains reports whether the fiber holds an element equal to v.
func (f Fiber) Contains(v Value) bool {
	for _, e := range f.elems {
		if e == v {
			return true
		}
	}
	return false
}

// Equal reports element-wise equality of two fibers, ignoring names.
// This is the equality notion the adjunction check compares under.
func (f Fiber) Equal(other Fiber) bool {
	return slices.Equal(f.elems, other.elems)
}

// Rename returns a copy of the fiber under a new name.
func (f Fiber) Rename(name string) Fiber {
	return Fiber{name: name, elems: f.elems}
}

// Map returns a new fiber with fn applied to every element.
func (f Fiber) Map(name string, fn func(Value) Value) Fiber {
	out := make([]Value, len(f.elems))
	for i, e := range f.elems {
		out[i] = fn(e)
	}
	return New(name, out...)
}

// Snapshot returns a canonical-marshalable view of the fiber.
func (f Fiber) Snapshot() map[string]any {
	elems := make([]any, len(f.elems))
	for i, e := range f.elems {
		elems[i] = e
	}
	return map[string]any{
		"name":  f.name,
		"elems": elems,
	}
}
