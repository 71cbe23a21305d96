// Package taggedptr implements an atomic cell holding a pointer together
// with a monotonic version count and a mark bit, mutated as a single unit.
//
// The count exists to defeat the ABA problem in CAS retry loops: callers
// bump the count on every successful publish of a cell, so a cell observed
// equal to an earlier load is untouched in the interim. The mark bit is the
// logical-deletion flag used by marked-list algorithms.
//
// Go has no native double-width compare-and-swap, so the cell is narrowed
// to an atomic pointer to an immutable snapshot record. Each successful
// Store or CompareAndSwap installs a fresh snapshot. CompareAndSwap compares
// the {ptr, count, mark} value of the published snapshot with the expected
// value, then swaps that exact snapshot, so a publish racing between the
// comparison and the swap makes it fail.
package taggedptr

import (
	"sync/atomic"
)

type (
	// Value is one observation of a Cell: the pointer, its version count,
	// and the mark bit. Values are plain data; they are compared with ==.
	Value[T any] struct {
		// Ptr is the pointer component. May be nil.
		Ptr *T

		// Count is the version tag, bumped by convention on every
		// successful publish.
		Count uint64

		// Mark is the logical-deletion flag.
		Mark bool
	}

	// Cell is an atomic {ptr, count, mark} cell.
	//
	// The zero value is ready to use, and holds the zero Value.
	Cell[T any] struct {
		p atomic.Pointer[Value[T]]
	}
)

// Load atomically observes the cell.
func (x *Cell[T]) Load() Value[T] {
	if v := x.p.Load(); v != nil {
		return *v
	}
	return Value[T]{}
}

// Store atomically publishes value, unconditionally.
func (x *Cell[T]) Store(value Value[T]) {
	x.p.Store(&value)
}

// CompareAndSwap atomically publishes new if the cell still holds old,
// reporting whether it did.
//
// The comparison is by value: if another publish installed a value equal
// to old since the caller's Load, the swap still succeeds. Callers bump
// Value.Count on the values they publish, so in practice a changed cell
// never compares equal to an earlier observation.
func (x *Cell[T]) CompareAndSwap(old, new Value[T]) bool {
	observed := x.p.Load()
	if observed == nil {
		if (old != Value[T]{}) {
			return false
		}
		return x.p.CompareAndSwap(nil, &new)
	}
	if *observed != old {
		return false
	}
	return x.p.CompareAndSwap(observed, &new)
}
