package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gpxgrip/internal/domain"
	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/logic"
)

func rowsFixture() logic.FileStore {
	store := logic.NewMemoryFileStore()
	store.AddFile(&domain.File{
		ID:   "f1",
		Name: "Morning Ride",
		Tracks: []domain.Track{
			{Name: "Out", Segments: []domain.Segment{{}, {}}},
			{Segments: []domain.Segment{{}}},
		},
		Waypoints: []domain.Waypoint{{Name: "Cafe"}, {}},
	})
	store.AddFile(&domain.File{ID: "f2", Name: "Evening Walk"})
	return store
}

func labels(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.label
	}
	return out
}

func TestBuildRowsCollapsedShowsFilesOnly(t *testing.T) {
	rows := buildRows(rowsFixture(), map[hierarchy.Item]bool{}, "", true)

	require.Equal(t, []string{"Morning Ride", "Evening Walk"}, labels(rows))
	require.True(t, rows[0].expandable)
	require.False(t, rows[1].expandable) // empty file has nothing to expand
}

func TestBuildRowsExpandedFile(t *testing.T) {
	expanded := map[hierarchy.Item]bool{
		hierarchy.FileItem{File: "f1"}: true,
	}
	rows := buildRows(rowsFixture(), expanded, "", true)

	require.Equal(t, []string{
		"Morning Ride", "Out", "Track 2", "Waypoints (2)", "Evening Walk",
	}, labels(rows))
	require.Equal(t, 1, rows[1].depth)
	// Single-segment tracks do not expand further
	require.True(t, rows[1].expandable)
	require.False(t, rows[2].expandable)
}

func TestBuildRowsExpandedTrackAndWaypoints(t *testing.T) {
	expanded := map[hierarchy.Item]bool{
		hierarchy.FileItem{File: "f1"}:           true,
		hierarchy.TrackItem{File: "f1", Track: 0}: true,
		hierarchy.WaypointsItem{File: "f1"}:      true,
	}
	rows := buildRows(rowsFixture(), expanded, "", true)

	require.Equal(t, []string{
		"Morning Ride",
		"Out", "Segment 1", "Segment 2",
		"Track 2",
		"Waypoints (2)", "Cafe", "Waypoint 2",
		"Evening Walk",
	}, labels(rows))

	require.Equal(t, hierarchy.SegmentItem{File: "f1", Track: 0, Segment: 1}, rows[3].item)
	require.Equal(t, hierarchy.WaypointItem{File: "f1", Waypoint: 0}, rows[6].item)
	require.Equal(t, 2, rows[6].depth)
}

func TestBuildRowsHidesWaypoints(t *testing.T) {
	expanded := map[hierarchy.Item]bool{
		hierarchy.FileItem{File: "f1"}: true,
	}
	rows := buildRows(rowsFixture(), expanded, "", false)

	require.NotContains(t, labels(rows), "Waypoints (2)")
}

func TestBuildRowsFilterMatchesFileName(t *testing.T) {
	rows := buildRows(rowsFixture(), map[hierarchy.Item]bool{}, "eve", true)
	require.Equal(t, []string{"Evening Walk"}, labels(rows))

	rows = buildRows(rowsFixture(), map[hierarchy.Item]bool{}, "RIDE", true)
	require.Equal(t, []string{"Morning Ride"}, labels(rows))

	rows = buildRows(rowsFixture(), map[hierarchy.Item]bool{}, "zzz", true)
	require.Empty(t, rows)
}
