package queue

import (
	"sync"
	"sync/atomic"
)

type (
	// Locked is a two-lock FIFO queue: enqueue synchronizes on the tail
	// mutex, dequeue on the head mutex, so producers and consumers do not
	// contend with one another. A sentinel node always heads the chain
	// once one has been created; it is created lazily, on first enqueue,
	// which is the only moment both mutexes are held.
	//
	// The zero value is an empty queue, ready to use. See also NewLocked.
	Locked[T any] struct {
		headMu sync.Mutex
		tailMu sync.Mutex
		head   *lockedNode[T] // sentinel; nil until first enqueue
		tail   *lockedNode[T]
	}

	lockedNode[T any] struct {
		value T
		// next is written on the tail side and probed on the head side
		// when the chain is one node long; atomic keeps that probe sound
		next atomic.Pointer[lockedNode[T]]
	}
)

// NewLocked initializes a new empty Locked queue.
func NewLocked[T any]() *Locked[T] {
	return new(Locked[T])
}

// Enqueue adds value at the back of the queue. The insertion linearizes at
// the tail advance, under the tail mutex.
func (x *Locked[T]) Enqueue(value T) {
	node := &lockedNode[T]{value: value}
	x.tailMu.Lock()
	if x.tail == nil {
		// first ever enqueue: link the sentinel and head as well
		x.headMu.Lock()
		sentinel := new(lockedNode[T])
		sentinel.next.Store(node)
		x.head = sentinel
		x.tail = node
		x.headMu.Unlock()
	} else {
		x.tail.next.Store(node)
		x.tail = node
	}
	x.tailMu.Unlock()
}

// Dequeue removes and returns the value at the front of the queue,
// reporting false if the queue is empty. The removal linearizes at the
// head advance, under the head mutex; the dequeued node becomes the new
// sentinel.
func (x *Locked[T]) Dequeue() (value T, ok bool) {
	x.headMu.Lock()
	if x.head != nil {
		if node := x.head.next.Load(); node != nil {
			value, ok = node.value, true
			var zero T
			node.value = zero
			x.head = node
		}
	}
	x.headMu.Unlock()
	return
}
