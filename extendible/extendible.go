// Package extendible implements a serial extendible hash table over shared
// pages, with memento snapshots for undo.
//
// The table is the storage back-end of the transaction framework: all
// mutation is routed through a single logical writer, and state is captured
// and restored wholesale via mementos. Pages carry a reader/writer lock for
// finer-grained access should parallel readers be added; every page access
// takes the page's lock, the read lock for lookups and copies and the write
// lock for item mutation.
package extendible

import (
	"slices"
)

type (
	// Table is a serial extendible hash table of ints. Instances must be
	// initialized using the NewTable factory.
	//
	// The directory holds 2^globalDepth entries; entries whose low
	// localDepth index bits agree share a page, and a page's localDepth
	// never exceeds the globalDepth.
	Table struct {
		directory   []entry
		globalDepth uint32
	}

	entry struct {
		verificationBits uint32
		page             *page
	}
)

// NewTable initializes a new empty Table, with a two-entry directory.
func NewTable() *Table {
	return &Table{
		directory: []entry{
			{verificationBits: 0, page: newPage(1)},
			{verificationBits: 1, page: newPage(1)},
		},
		globalDepth: 1,
	}
}

// pseudoKey is the low depth bits of the item's hash. The hash of an int
// is the int itself.
func pseudoKey(item int, depth uint32) uint64 {
	return uint64(item) & (1<<depth - 1)
}

// Insert adds item, reporting false if it is already present. A full page
// splits; a full page already at the global depth forces a directory
// expansion first. Splits cascade until the item's page has room.
func (x *Table) Insert(item int) bool {
	if x.Contains(item) {
		return false
	}
	for {
		p := x.directory[pseudoKey(item, x.globalDepth)].page
		if !p.full() {
			p.insert(item)
			return true
		}
		if p.localDepth == x.globalDepth {
			x.expand()
		}
		x.splitPage(p)
	}
}

// Contains reports whether item is present.
func (x *Table) Contains(item int) bool {
	return x.directory[pseudoKey(item, x.globalDepth)].page.contains(item)
}

// Erase removes item, reporting false if it is absent: the target page is
// located first, then locked for the deletion.
func (x *Table) Erase(item int) bool {
	return x.directory[pseudoKey(item, x.globalDepth)].page.remove(item)
}

// Update replaces oldItem with newItem, reporting false (and changing
// nothing) if oldItem is absent.
func (x *Table) Update(oldItem, newItem int) bool {
	if !x.Erase(oldItem) {
		return false
	}
	x.Insert(newItem)
	return true
}

// Len returns the number of items in the table.
func (x *Table) Len() int {
	total := 0
	seen := make(map[*page]struct{}, len(x.directory))
	for _, e := range x.directory {
		if _, ok := seen[e.page]; ok {
			continue
		}
		seen[e.page] = struct{}{}
		total += e.page.len()
	}
	return total
}

// expand doubles the directory, duplicating each cell: entry i is shared
// by i and i+2^globalDepth, matching pseudo-key indexing by low bits.
func (x *Table) expand() {
	doubled := make([]entry, 2*len(x.directory))
	for i := range doubled {
		doubled[i] = entry{
			verificationBits: uint32(i),
			page:             x.directory[i%len(x.directory)].page,
		}
	}
	x.directory = doubled
	x.globalDepth++
}

// splitPage replaces p with two pages one level deeper, redistributing
// items by the bit the deeper pseudo-key adds, and re-points the affected
// directory cells.
func (x *Table) splitPage(p *page) {
	p0, p1 := p.split()
	for i, e := range x.directory {
		if e.page != p {
			continue
		}
		if uint64(i)>>p.localDepth&1 == 0 {
			x.directory[i].page = p0
		} else {
			x.directory[i].page = p1
		}
	}
}

// mergePages unions two pages into one. The merged local depth is
// floor(log2(|merged|)), inherited from the original design; note textbook
// extendible hashing would use min(localDepth)-1 instead.
func mergePages(p1, p2 *page) *page {
	merged := newPage(0)
	merged.items = append(slices.Clone(p1.items), p2.items...)
	if n := len(merged.items); n > 0 {
		merged.localDepth = uint32(log2(n))
	}
	return merged
}

func log2(n int) int {
	d := 0
	for n > 1 {
		n >>= 1
		d++
	}
	return d
}
