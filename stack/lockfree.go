package stack

import (
	"github.com/Hoshiningen/concurrent-data-structures/taggedptr"
)

type (
	// LockFree is a Treiber stack: the top pointer lives in a tagged
	// atomic cell, and push/pop are CAS retry loops. The version count is
	// bumped on every successful publish, so a pop that raced with an
	// intervening pop+push of the same node cannot succeed against its
	// stale observation.
	//
	// The zero value is an empty stack, ready to use. See also NewLockFree.
	LockFree[T any] struct {
		top taggedptr.Cell[lockFreeNode[T]]
	}

	lockFreeNode[T any] struct {
		value T
		// written before the node is published, immutable afterwards
		next *lockFreeNode[T]
	}
)

// NewLockFree initializes a new empty LockFree stack.
func NewLockFree[T any]() *LockFree[T] {
	return new(LockFree[T])
}

// Push adds value to the top of the stack.
func (x *LockFree[T]) Push(value T) {
	node := &lockFreeNode[T]{value: value}
	for {
		observed := x.top.Load()
		node.next = observed.Ptr
		if x.top.CompareAndSwap(observed, taggedptr.Value[lockFreeNode[T]]{
			Ptr:   node,
			Count: observed.Count + 1,
		}) {
			return
		}
	}
}

// Pop removes and returns the value at the top of the stack, reporting
// false if the stack is empty. The removal linearizes at the successful
// swap of the top cell; the popped node is unreachable from the stack
// afterwards, and is reclaimed by the garbage collector once no racing
// observer still holds it.
func (x *LockFree[T]) Pop() (value T, ok bool) {
	for {
		observed := x.top.Load()
		if observed.Ptr == nil {
			return
		}
		if x.top.CompareAndSwap(observed, taggedptr.Value[lockFreeNode[T]]{
			Ptr:   observed.Ptr.next,
			Count: observed.Count + 1,
		}) {
			return observed.Ptr.value, true
		}
	}
}
