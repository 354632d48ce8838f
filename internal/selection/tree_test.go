package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gpxgrip/internal/hierarchy"
)

func TestTreeSetAndHas(t *testing.T) {
	tree := NewTree()
	track0 := hierarchy.TrackItem{File: "f1", Track: 0}
	track1 := hierarchy.TrackItem{File: "f1", Track: 1}

	tree.Set(track0, true)

	require.True(t, tree.Has(track0))
	require.False(t, tree.Has(track1))
	require.False(t, tree.Has(hierarchy.FileItem{File: "f1"}))
	require.Equal(t, 1, tree.Size())
}

func TestTreeSetRoundTrip(t *testing.T) {
	tree := NewTree()
	seg := hierarchy.SegmentItem{File: "f1", Track: 0, Segment: 2}

	tree.Set(seg, true)
	require.True(t, tree.Has(seg))

	tree.Set(seg, false)
	require.False(t, tree.Has(seg))
	require.Equal(t, 0, tree.Size())

	// Setting the same value twice is idempotent
	tree.Set(seg, true)
	tree.Set(seg, true)
	require.Equal(t, 1, tree.Size())
}

func TestTreeDoubleToggleRestoresState(t *testing.T) {
	tree := NewTree()
	wpt := hierarchy.WaypointItem{File: "f1", Waypoint: 3}

	tree.Toggle(wpt)
	require.True(t, tree.Has(wpt))

	tree.Toggle(wpt)
	tree.Toggle(wpt)
	require.True(t, tree.Has(wpt))
	require.Equal(t, 1, tree.Size())
}

func TestTreeSizeMatchesSelectedCount(t *testing.T) {
	tree := NewTree()
	items := []hierarchy.Item{
		hierarchy.FileItem{File: "f1"},
		hierarchy.TrackItem{File: "f1", Track: 0},
		hierarchy.TrackItem{File: "f2", Track: 1},
		hierarchy.SegmentItem{File: "f2", Track: 1, Segment: 0},
		hierarchy.WaypointsItem{File: "f1"},
		hierarchy.WaypointItem{File: "f3", Waypoint: 9},
	}
	for _, item := range items {
		tree.Set(item, true)
		require.Equal(t, len(tree.Selected()), tree.Size())
	}
	require.Equal(t, len(items), tree.Size())

	tree.Set(items[1], false)
	tree.Toggle(items[3])
	tree.Toggle(hierarchy.FileItem{File: "f4"})
	require.Equal(t, len(tree.Selected()), tree.Size())
	require.Equal(t, 5, tree.Size())
}

func TestTreeSelectionIsPerNode(t *testing.T) {
	tree := NewTree()
	tree.Set(hierarchy.FileItem{File: "f1"}, true)

	// Selecting a file does not select its tracks or the root
	require.False(t, tree.Has(hierarchy.TrackItem{File: "f1", Track: 0}))
	require.False(t, tree.Has(hierarchy.RootItem{}))
}

func TestTreeHasAnyParent(t *testing.T) {
	tree := NewTree()
	track := hierarchy.TrackItem{File: "f1", Track: 0}
	seg := hierarchy.SegmentItem{File: "f1", Track: 0, Segment: 1}

	tree.Set(track, true)

	require.True(t, tree.HasAnyParent(seg, true))
	require.True(t, tree.HasAnyParent(seg, false))
	require.True(t, tree.HasAnyParent(track, true))

	// No ancestor distinct from the item itself is selected
	require.False(t, tree.HasAnyParent(track, false))

	// Other branches are unaffected
	require.False(t, tree.HasAnyParent(hierarchy.TrackItem{File: "f1", Track: 1}, true))
	require.False(t, tree.HasAnyParent(hierarchy.WaypointItem{File: "f1", Waypoint: 0}, true))
}

func TestTreeHasAnyChildren(t *testing.T) {
	tree := NewTree()
	file := hierarchy.FileItem{File: "f1"}
	seg := hierarchy.SegmentItem{File: "f1", Track: 2, Segment: 0}

	tree.Set(seg, true)

	require.True(t, tree.HasAnyChildren(file, true))
	require.True(t, tree.HasAnyChildren(file, false))
	require.True(t, tree.HasAnyChildren(hierarchy.TrackItem{File: "f1", Track: 2}, false))
	require.False(t, tree.HasAnyChildren(hierarchy.TrackItem{File: "f1", Track: 0}, true))
	require.False(t, tree.HasAnyChildren(hierarchy.FileItem{File: "f2"}, true))

	// self toggles whether the node's own selection counts
	tree.Clear()
	tree.Set(file, true)
	require.True(t, tree.HasAnyChildren(file, true))
	require.False(t, tree.HasAnyChildren(file, false))
}

func TestTreeHasAnyChildrenIgnoresBranches(t *testing.T) {
	tree := NewTree()
	file := hierarchy.FileItem{File: "f1"}
	tree.Set(hierarchy.TrackItem{File: "f1", Track: 0}, true)

	require.True(t, tree.HasAnyChildren(file, false))
	require.False(t, tree.HasAnyChildren(file, false, hierarchy.IndexID(0)))

	tree.Set(hierarchy.TrackItem{File: "f1", Track: 1}, true)
	require.True(t, tree.HasAnyChildren(file, false, hierarchy.IndexID(0)))
	require.False(t, tree.HasAnyChildren(file, false, hierarchy.IndexID(0), hierarchy.IndexID(1)))
}

func TestTreeClear(t *testing.T) {
	tree := NewTree()
	track := hierarchy.TrackItem{File: "f1", Track: 0}
	wpt := hierarchy.WaypointItem{File: "f2", Waypoint: 1}
	tree.Set(track, true)
	tree.Set(wpt, true)

	tree.Clear()

	require.Equal(t, 0, tree.Size())
	require.Empty(t, tree.Selected())
	require.False(t, tree.Has(track))
	require.False(t, tree.HasAnyParent(wpt, true))
	require.False(t, tree.HasAnyChildren(hierarchy.RootItem{}, true))

	// Nodes are reused after a clear
	child := tree.Child(hierarchy.FileID("f1"))
	require.NotNil(t, child)
	tree.Set(track, true)
	require.Same(t, child, tree.Child(hierarchy.FileID("f1")))
	require.Equal(t, 1, tree.Size())
}

func TestTreeDeleteChild(t *testing.T) {
	tree := NewTree()
	tree.Set(hierarchy.FileItem{File: "f1"}, true)
	tree.Set(hierarchy.TrackItem{File: "f1", Track: 0}, true)
	tree.Set(hierarchy.WaypointItem{File: "f1", Waypoint: 2}, true)
	tree.Set(hierarchy.FileItem{File: "f2"}, true)
	require.Equal(t, 4, tree.Size())

	tree.DeleteChild(hierarchy.FileID("f1"))

	require.Equal(t, 1, tree.Size())
	require.Nil(t, tree.Child(hierarchy.FileID("f1")))
	require.False(t, tree.Has(hierarchy.TrackItem{File: "f1", Track: 0}))
	require.True(t, tree.Has(hierarchy.FileItem{File: "f2"}))

	// Deleting an absent child is a no-op
	tree.DeleteChild(hierarchy.FileID("gone"))
	require.Equal(t, 1, tree.Size())
}

func TestTreeMalformedAddressesAreNoOps(t *testing.T) {
	tree := NewTree()

	// A root-level child id that is not a file name cannot be created
	tree.Set(hierarchy.TrackItem{File: "", Track: 0}, true)
	require.Equal(t, 0, tree.Size())
	require.False(t, tree.Has(hierarchy.TrackItem{File: "", Track: 0}))
}

func TestTreeSelectedPreOrder(t *testing.T) {
	tree := NewTree()
	file := hierarchy.FileItem{File: "f1"}
	track := hierarchy.TrackItem{File: "f1", Track: 0}
	tree.Set(track, true)
	tree.Set(file, true)

	items := tree.Selected()
	require.Len(t, items, 2)
	// Pre-order puts the file before its track
	require.Equal(t, file, items[0])
	require.Equal(t, track, items[1])
}
