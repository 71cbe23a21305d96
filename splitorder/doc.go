// Package splitorder implements a resizable lock-free hash table over a
// split-ordered list, after Shalev and Shavit's "Split-Ordered Lists:
// Lock-Free Extensible Hash Tables".
//
// All items live in a single sorted lock-free linked list, ordered by the
// bit-reversed hash. Each bucket owns a dummy node whose key is the bit
// reversal of the bucket index, placed so that a bucket's items sit
// immediately after its dummy. Growing the table never moves an item: the
// bucket directory doubles, and the new buckets' dummies are spliced into
// the list lazily, on first access, by recursively initializing each
// bucket's parent (the bucket index with its highest set bit cleared).
//
// The list itself is a marked (Harris/Michael) list: a node is deleted
// logically by setting the mark bit on its next cell, and unlinked
// physically by whichever traversal encounters the mark first. The bucket
// directory is a fixed array of segments, each installed at most once with
// a compare-and-swap.
package splitorder
