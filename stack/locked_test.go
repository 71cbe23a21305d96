package stack

import (
	"sync"
	"testing"
)

func TestLocked_sequential(t *testing.T) {
	s := NewLocked[int]()

	for _, v := range []int{1, 2, 3} {
		s.Push(v)
	}

	for _, expected := range []int{3, 2, 1} {
		v, ok := s.Pop()
		if !ok {
			t.Fatal(`expected pop to succeed`)
		}
		if v != expected {
			t.Fatalf(`expected %d, got %d`, expected, v)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Fatal(`expected pop on empty stack to fail`)
	}
}

func TestLocked_popEmptyNoSideEffects(t *testing.T) {
	var s Locked[string]

	if _, ok := s.Pop(); ok {
		t.Fatal(`expected pop on empty stack to fail`)
	}

	s.Push(`a`)
	if v, ok := s.Pop(); !ok || v != `a` {
		t.Fatalf(`expected ("a", true), got (%q, %v)`, v, ok)
	}
	if _, ok := s.Pop(); ok {
		t.Fatal(`expected pop on drained stack to fail`)
	}
}

func TestLocked_concurrentDistinct(t *testing.T) {
	testStackConcurrentDistinct(t, NewLocked[int]())
}

// testStackConcurrentDistinct drives two producers pushing disjoint ranges
// while a consumer pops until both producers have joined and the stack
// reports empty twice in a row; every pushed value must be popped exactly
// once.
func testStackConcurrentDistinct(t *testing.T, s Stack[int]) {
	const perProducer = 10000

	var producers sync.WaitGroup
	for p := 0; p < 2; p++ {
		producers.Add(1)
		go func(base int) {
			defer producers.Done()
			for i := 0; i < perProducer; i++ {
				s.Push(base + i)
			}
		}(p * perProducer)
	}

	joined := make(chan struct{})
	go func() {
		producers.Wait()
		close(joined)
	}()

	seen := make(map[int]int, 2*perProducer)
	var misses int
	for {
		if v, ok := s.Pop(); ok {
			misses = 0
			seen[v]++
			continue
		}
		select {
		case <-joined:
			misses++
			if misses >= 2 {
				goto drained
			}
		default:
			misses = 0
		}
	}
drained:

	if len(seen) != 2*perProducer {
		t.Fatalf(`expected %d distinct values, got %d`, 2*perProducer, len(seen))
	}
	for v, n := range seen {
		if n != 1 {
			t.Fatalf(`expected value %d to be popped once, got %d`, v, n)
		}
	}
}
