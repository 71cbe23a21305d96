package extendible

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// observableState flattens a table into what a reader can observe, for
// deep comparison across snapshot round trips.
type observableState struct {
	Items       []int
	GlobalDepth uint32
	LocalDepths []uint32
}

func observe(x *Table) observableState {
	state := observableState{GlobalDepth: x.globalDepth}
	seen := make(map[*page]struct{})
	for _, e := range x.directory {
		state.LocalDepths = append(state.LocalDepths, e.page.localDepth)
		if _, ok := seen[e.page]; ok {
			continue
		}
		seen[e.page] = struct{}{}
		state.Items = append(state.Items, e.page.items...)
	}
	slices.Sort(state.Items)
	return state
}

func TestTable_insertContainsErase(t *testing.T) {
	x := NewTable()

	require.True(t, x.Insert(7))
	require.True(t, x.Insert(11))
	require.False(t, x.Insert(7), `duplicate insert must fail`)

	require.True(t, x.Contains(7))
	require.True(t, x.Contains(11))
	require.False(t, x.Contains(3))
	require.Equal(t, 2, x.Len())

	require.True(t, x.Erase(11))
	require.False(t, x.Erase(11), `repeated erase must fail`)
	require.False(t, x.Contains(11))
	require.Equal(t, 1, x.Len())
}

func TestTable_update(t *testing.T) {
	x := NewTable()

	require.True(t, x.Insert(7))
	require.True(t, x.Insert(11))
	require.True(t, x.Update(7, 8))
	require.True(t, x.Erase(11))

	require.True(t, x.Contains(8))
	require.False(t, x.Contains(7))
	require.False(t, x.Contains(11))

	require.False(t, x.Update(99, 100), `update of an absent item must fail`)
	require.False(t, x.Contains(100))
}

func TestTable_splitAndExpand(t *testing.T) {
	x := NewTable()

	// enough items to force repeated splits and directory expansions
	const items = 256
	for i := 0; i < items; i++ {
		require.True(t, x.Insert(i))
	}

	require.Greater(t, x.globalDepth, uint32(1), `expected the directory to expand`)
	require.Len(t, x.directory, 1<<x.globalDepth)

	for i := 0; i < items; i++ {
		require.True(t, x.Contains(i), `item %d lost across splits`, i)
	}
	require.Equal(t, items, x.Len())

	// structural invariants: localDepth <= globalDepth, and entries agree
	// with their page's low bits
	for i, e := range x.directory {
		require.LessOrEqual(t, e.page.localDepth, x.globalDepth)
		for _, item := range e.page.items {
			require.Equal(t,
				uint64(i)&(1<<e.page.localDepth-1),
				pseudoKey(item, e.page.localDepth),
				`item %d filed under entry %d`, item, i)
		}
	}
}

func TestTable_pageSharing(t *testing.T) {
	x := NewTable()
	for i := 0; i < 64; i++ {
		require.True(t, x.Insert(i))
	}

	// entries whose low localDepth bits agree must share a page
	for i, e := range x.directory {
		for j, other := range x.directory {
			sameLowBits := uint64(i)&(1<<e.page.localDepth-1) == uint64(j)&(1<<e.page.localDepth-1)
			if sameLowBits != (e.page == other.page) && e.page.localDepth == other.page.localDepth {
				t.Fatalf(`entries %d and %d: sharing does not match low-bit agreement`, i, j)
			}
		}
	}
}

func TestTable_negativeItems(t *testing.T) {
	x := NewTable()

	require.True(t, x.Insert(-1))
	require.True(t, x.Insert(-42))
	require.True(t, x.Contains(-1))
	require.True(t, x.Erase(-42))
	require.False(t, x.Contains(-42))
}

func TestMergePages_depthPolicy(t *testing.T) {
	p1 := newPage(3)
	p1.items = []int{0, 2, 4}
	p2 := newPage(3)
	p2.items = []int{1, 3}

	merged := mergePages(p1, p2)
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4}, merged.items)
	// depth is floor(log2(5)) under the inherited policy
	require.Equal(t, uint32(2), merged.localDepth)

	empty := mergePages(newPage(2), newPage(2))
	require.Empty(t, empty.items)
	require.Equal(t, uint32(0), empty.localDepth)
}

func TestMemento_roundTrip(t *testing.T) {
	x := NewTable()
	require.True(t, x.Insert(1))
	require.True(t, x.Insert(2))

	before := observe(x)
	snapshot := x.CreateMemento()

	for i := 10; i < 200; i++ {
		x.Insert(i)
	}
	x.Erase(1)
	require.NotEmpty(t, cmp.Diff(before, observe(x)), `mutations must be observable`)

	x.SetMemento(snapshot)
	require.Empty(t, cmp.Diff(before, observe(x)))
}

func TestMemento_restoreOrder(t *testing.T) {
	x := NewTable()

	s0 := x.CreateMemento()
	require.True(t, x.Insert(100))
	s1 := x.CreateMemento()
	require.True(t, x.Erase(100))

	x.SetMemento(s1)
	require.True(t, x.Contains(100))

	x.SetMemento(s0)
	require.False(t, x.Contains(100))
}

func TestMemento_idempotent(t *testing.T) {
	x := NewTable()
	for i := 0; i < 32; i++ {
		x.Insert(i)
	}
	snapshot := x.CreateMemento()

	x.Insert(1000)
	x.SetMemento(snapshot)
	first := observe(x)

	x.SetMemento(snapshot)
	require.Empty(t, cmp.Diff(first, observe(x)))
}

func TestMemento_isolatedFromTable(t *testing.T) {
	x := NewTable()
	x.Insert(5)
	snapshot := x.CreateMemento()

	// mutating the live table must not bleed into the snapshot
	x.Insert(6)
	x.Erase(5)

	x.SetMemento(snapshot)
	require.True(t, x.Contains(5))
	require.False(t, x.Contains(6))
}

func TestSetMemento_nil(t *testing.T) {
	require.PanicsWithValue(t, `extendible: nil memento`, func() {
		NewTable().SetMemento(nil)
	})
}
