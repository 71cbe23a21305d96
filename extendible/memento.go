package extendible

type (
	// Memento is an opaque snapshot of a Table's state. Only a Table can
	// create one (CreateMemento), and only a Table can consume one
	// (SetMemento); holders just carry it.
	Memento struct {
		directory   []entry
		globalDepth uint32
	}
)

// CreateMemento captures the table's current state. The snapshot copies
// the directory and the page contents, preserving the page-sharing
// structure, so later mutation of the table cannot leak into it.
func (x *Table) CreateMemento() *Memento {
	return &Memento{
		directory:   cloneDirectory(x.directory),
		globalDepth: x.globalDepth,
	}
}

// SetMemento overwrites the table's state with the snapshot. The memento
// itself is not consumed: applying it again is valid, and a second
// application after the first leaves the table unchanged.
func (x *Table) SetMemento(m *Memento) {
	if m == nil {
		panic(`extendible: nil memento`)
	}
	x.directory = cloneDirectory(m.directory)
	x.globalDepth = m.globalDepth
}

// cloneDirectory deep-copies a directory, cloning each distinct page once
// so that entries sharing a page keep sharing its clone.
func cloneDirectory(directory []entry) []entry {
	pages := make(map[*page]*page)
	out := make([]entry, len(directory))
	for i, e := range directory {
		clone, ok := pages[e.page]
		if !ok {
			clone = e.page.clone()
			pages[e.page] = clone
		}
		out[i] = entry{verificationBits: e.verificationBits, page: clone}
	}
	return out
}
