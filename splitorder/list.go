package splitorder

import (
	"github.com/Hoshiningen/concurrent-data-structures/taggedptr"
)

type (
	// node is an element of the split-ordered list. sortKey is the
	// bit-reversed order key: even for dummies, odd for regular items.
	// All fields other than next are immutable once the node is published.
	node[K comparable, V any] struct {
		sortKey uint64
		key     K
		value   V
		dummy   bool
		next    taggedptr.Cell[node[K, V]]
	}

	// position is the (prev, curr) pair a list search halts on. prevVal is
	// the value observed in prev, with prevVal.Ptr == curr; next is the
	// value observed in curr's next cell, when curr is non-nil.
	position[K comparable, V any] struct {
		prev    *taggedptr.Cell[node[K, V]]
		prevVal taggedptr.Value[node[K, V]]
		curr    *node[K, V]
		next    taggedptr.Value[node[K, V]]
	}
)

// search walks the list from head until it finds key (reporting true), or
// halts on the first node that sorts after it (reporting false, with the
// position being the insertion point). Marked nodes encountered along the
// way are physically unlinked; an unlink losing its CAS restarts the walk.
//
// matchKey selects regular-item semantics: equality requires an unmarked
// regular node with the same sort key and an equal key, and equal sort
// keys with differing keys are walked past. Without matchKey (dummy
// semantics), sort key equality alone matches.
func search[K comparable, V any](head *node[K, V], sortKey uint64, key K, matchKey bool) (position[K, V], bool) {
retry:
	for {
		prev := &head.next
		prevVal := prev.Load()
		for {
			curr := prevVal.Ptr
			if curr == nil {
				return position[K, V]{prev: prev, prevVal: prevVal}, false
			}
			next := curr.next.Load()
			if prev.Load() != prevVal {
				continue retry
			}
			if next.Mark {
				unlinked := taggedptr.Value[node[K, V]]{Ptr: next.Ptr, Count: prevVal.Count + 1}
				if !prev.CompareAndSwap(prevVal, unlinked) {
					continue retry
				}
				prevVal = unlinked
				continue
			}
			if curr.sortKey > sortKey {
				return position[K, V]{prev: prev, prevVal: prevVal, curr: curr, next: next}, false
			}
			if curr.sortKey == sortKey {
				if !matchKey || (!curr.dummy && curr.key == key) {
					return position[K, V]{prev: prev, prevVal: prevVal, curr: curr, next: next}, true
				}
			}
			prev = &curr.next
			prevVal = next
		}
	}
}

// listInsert splices n into the sorted list starting at head. On success
// it reports (n, true); if an equal node already exists it reports that
// node and false, and n is discarded.
func listInsert[K comparable, V any](head *node[K, V], n *node[K, V]) (*node[K, V], bool) {
	for {
		pos, found := search(head, n.sortKey, n.key, !n.dummy)
		if found {
			return pos.curr, false
		}
		n.next.Store(taggedptr.Value[node[K, V]]{Ptr: pos.curr})
		if pos.prev.CompareAndSwap(pos.prevVal, taggedptr.Value[node[K, V]]{
			Ptr:   n,
			Count: pos.prevVal.Count + 1,
		}) {
			return n, true
		}
	}
}

// listDelete removes the regular node with the given sort key and key,
// reporting false if it is absent. Deletion is two-phase: a CAS on the
// victim's next cell sets the mark bit (the logical delete, and the
// linearization point), then one physical unlink is attempted; if that
// unlink loses, a rerun of search cleans up.
func listDelete[K comparable, V any](head *node[K, V], sortKey uint64, key K) bool {
	for {
		pos, found := search(head, sortKey, key, true)
		if !found {
			return false
		}
		if !pos.curr.next.CompareAndSwap(pos.next, taggedptr.Value[node[K, V]]{
			Ptr:   pos.next.Ptr,
			Count: pos.next.Count + 1,
			Mark:  true,
		}) {
			continue
		}
		if !pos.prev.CompareAndSwap(pos.prevVal, taggedptr.Value[node[K, V]]{
			Ptr:   pos.next.Ptr,
			Count: pos.prevVal.Count + 1,
		}) {
			search(head, sortKey, key, true)
		}
		return true
	}
}

// listFind reports whether the regular node with the given sort key and
// key is present, returning its value if so.
func listFind[K comparable, V any](head *node[K, V], sortKey uint64, key K) (V, bool) {
	pos, found := search(head, sortKey, key, true)
	if !found {
		var zero V
		return zero, false
	}
	return pos.curr.value, true
}
