package logic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gpxgrip/internal/domain"
)

func TestMemoryFileStoreAddAndGet(t *testing.T) {
	store := NewMemoryFileStore()
	require.Nil(t, store.File("a"))

	store.AddFile(&domain.File{ID: "a", Name: "morning ride"})
	store.AddFile(&domain.File{ID: "b"})

	require.Equal(t, "morning ride", store.File("a").Name)
	require.Len(t, store.AllFiles(), 2)
	require.Equal(t, []string{"a", "b"}, store.Order())
}

func TestMemoryFileStoreReplaceKeepsOrder(t *testing.T) {
	store := NewMemoryFileStore()
	store.AddFile(&domain.File{ID: "a"})
	store.AddFile(&domain.File{ID: "b"})

	store.AddFile(&domain.File{ID: "a", Name: "updated"})

	require.Equal(t, []string{"a", "b"}, store.Order())
	require.Equal(t, "updated", store.File("a").Name)
}

func TestMemoryFileStoreRemove(t *testing.T) {
	store := NewMemoryFileStore()
	store.AddFile(&domain.File{ID: "a"})
	store.AddFile(&domain.File{ID: "b"})
	store.AddFile(&domain.File{ID: "c"})

	store.RemoveFile("b")

	require.Nil(t, store.File("b"))
	require.Equal(t, []string{"a", "c"}, store.Order())

	store.RemoveFile("missing") // no-op
	require.Equal(t, []string{"a", "c"}, store.Order())
}

func TestMemoryFileStoreSetOrder(t *testing.T) {
	store := NewMemoryFileStore()
	store.AddFile(&domain.File{ID: "a"})
	store.AddFile(&domain.File{ID: "b"})
	store.AddFile(&domain.File{ID: "c"})

	// Unknown ids are dropped, files missing from the new order keep a
	// stable position at the end.
	store.SetOrder([]string{"c", "ghost", "a"})
	require.Equal(t, []string{"c", "a", "b"}, store.Order())
}

func TestMemoryFileStoreMoveFile(t *testing.T) {
	store := NewMemoryFileStore()
	store.AddFile(&domain.File{ID: "a"})
	store.AddFile(&domain.File{ID: "b"})
	store.AddFile(&domain.File{ID: "c"})

	require.True(t, store.MoveFile("c", -1))
	require.Equal(t, []string{"a", "c", "b"}, store.Order())

	require.True(t, store.MoveFile("a", 5)) // clamped to the end
	require.Equal(t, []string{"c", "b", "a"}, store.Order())

	require.False(t, store.MoveFile("c", -1)) // already first
	require.False(t, store.MoveFile("ghost", 1))
	require.Equal(t, []string{"c", "b", "a"}, store.Order())
}

func TestMemoryFileStoreOrderIsACopy(t *testing.T) {
	store := NewMemoryFileStore()
	store.AddFile(&domain.File{ID: "a"})
	store.AddFile(&domain.File{ID: "b"})

	order := store.Order()
	order[0] = "mutated"
	require.Equal(t, []string{"a", "b"}, store.Order())
}

func TestMemoryFileStoreCounts(t *testing.T) {
	store := NewMemoryFileStore()
	store.AddFile(&domain.File{
		ID: "a",
		Tracks: []domain.Track{
			{Segments: []domain.Segment{{}, {}, {}}},
			{},
		},
		Waypoints: []domain.Waypoint{{}, {}},
	})

	require.Equal(t, 2, store.TrackCount("a"))
	require.Equal(t, 3, store.SegmentCount("a", 0))
	require.Equal(t, 0, store.SegmentCount("a", 1))
	require.Equal(t, 2, store.WaypointCount("a"))

	// Out-of-range and unknown addresses
	require.Equal(t, 0, store.SegmentCount("a", 7))
	require.Equal(t, 0, store.SegmentCount("a", -1))
	require.Equal(t, 0, store.TrackCount("missing"))
	require.Equal(t, 0, store.WaypointCount("missing"))
}
