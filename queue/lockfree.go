package queue

import (
	"github.com/Hoshiningen/concurrent-data-structures/taggedptr"
)

type (
	// LockFree is a Michael–Scott FIFO queue. Head, tail, and every node's
	// next link are tagged atomic cells; the version counts are bumped on
	// every successful publish. Head always points at a sentinel node, so
	// neither cell is ever nil after construction. Instances must be
	// initialized using the NewLockFree factory.
	LockFree[T any] struct {
		head taggedptr.Cell[lockFreeNode[T]]
		tail taggedptr.Cell[lockFreeNode[T]]
	}

	lockFreeNode[T any] struct {
		value T
		next  taggedptr.Cell[lockFreeNode[T]]
	}
)

// NewLockFree initializes a new empty LockFree queue, with its sentinel in
// place.
func NewLockFree[T any]() *LockFree[T] {
	x := new(LockFree[T])
	sentinel := new(lockFreeNode[T])
	x.head.Store(taggedptr.Value[lockFreeNode[T]]{Ptr: sentinel})
	x.tail.Store(taggedptr.Value[lockFreeNode[T]]{Ptr: sentinel})
	return x
}

// Enqueue adds value at the back of the queue. The insertion linearizes at
// the successful link of the new node onto the last node's next cell; the
// subsequent tail swing may fail harmlessly, when another goroutine helped
// the lagging tail forward.
func (x *LockFree[T]) Enqueue(value T) {
	node := &lockFreeNode[T]{value: value}
	var tail taggedptr.Value[lockFreeNode[T]]
	for {
		tail = x.tail.Load()
		next := tail.Ptr.next.Load()
		if x.tail.Load() != tail {
			continue
		}
		if next.Ptr == nil {
			if tail.Ptr.next.CompareAndSwap(next, taggedptr.Value[lockFreeNode[T]]{
				Ptr:   node,
				Count: next.Count + 1,
			}) {
				break
			}
		} else {
			// tail is lagging: help it forward, then retry
			x.tail.CompareAndSwap(tail, taggedptr.Value[lockFreeNode[T]]{
				Ptr:   next.Ptr,
				Count: tail.Count + 1,
			})
		}
	}
	x.tail.CompareAndSwap(tail, taggedptr.Value[lockFreeNode[T]]{
		Ptr:   node,
		Count: tail.Count + 1,
	})
}

// Dequeue removes and returns the value at the front of the queue,
// reporting false if the queue is empty. The removal linearizes at the
// successful swing of the head cell; the retired sentinel becomes
// unreachable from the queue and is reclaimed by the garbage collector
// once no racing observer still holds it.
func (x *LockFree[T]) Dequeue() (value T, ok bool) {
	for {
		head := x.head.Load()
		tail := x.tail.Load()
		next := head.Ptr.next.Load()
		if x.head.Load() != head {
			continue
		}
		if head.Ptr == tail.Ptr {
			if next.Ptr == nil {
				var zero T
				return zero, false
			}
			// tail is lagging behind a pending enqueue: help it forward
			x.tail.CompareAndSwap(tail, taggedptr.Value[lockFreeNode[T]]{
				Ptr:   next.Ptr,
				Count: tail.Count + 1,
			})
			continue
		}
		// read the value before the swing; afterwards next.Ptr is the
		// sentinel and its value slot must be treated as unread
		value = next.Ptr.value
		if x.head.CompareAndSwap(head, taggedptr.Value[lockFreeNode[T]]{
			Ptr:   next.Ptr,
			Count: head.Count + 1,
		}) {
			return value, true
		}
	}
}
