package ui

import (
	"fmt"
	"strings"

	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/logic"
)

// row is one visible line of the hierarchy browser.
type row struct {
	item       hierarchy.Item
	depth      int
	label      string
	expandable bool
}

// buildRows flattens the file hierarchy into the visible row list, honoring
// expansion state and the file filter.
func buildRows(store logic.FileStore, expanded map[hierarchy.Item]bool, filter string, showWaypoints bool) []row {
	rows := make([]row, 0, 16)
	filter = strings.ToLower(strings.TrimSpace(filter))

	for _, fileID := range store.Order() {
		file := store.File(fileID)
		if file == nil {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(file.Name), filter) {
			continue
		}

		fileItem := hierarchy.FileItem{File: fileID}
		rows = append(rows, row{
			item:       fileItem,
			depth:      0,
			label:      file.Name,
			expandable: len(file.Tracks) > 0 || len(file.Waypoints) > 0,
		})
		if !expanded[fileItem] {
			continue
		}

		for ti, trk := range file.Tracks {
			trackItem := hierarchy.TrackItem{File: fileID, Track: ti}
			label := trk.Name
			if label == "" {
				label = fmt.Sprintf("Track %d", ti+1)
			}
			rows = append(rows, row{
				item:       trackItem,
				depth:      1,
				label:      label,
				expandable: len(trk.Segments) > 1,
			})
			if !expanded[trackItem] {
				continue
			}
			for si := range trk.Segments {
				rows = append(rows, row{
					item:  hierarchy.SegmentItem{File: fileID, Track: ti, Segment: si},
					depth: 2,
					label: fmt.Sprintf("Segment %d", si+1),
				})
			}
		}

		if showWaypoints && len(file.Waypoints) > 0 {
			wptsItem := hierarchy.WaypointsItem{File: fileID}
			rows = append(rows, row{
				item:       wptsItem,
				depth:      1,
				label:      fmt.Sprintf("Waypoints (%d)", len(file.Waypoints)),
				expandable: true,
			})
			if expanded[wptsItem] {
				for wi, wpt := range file.Waypoints {
					label := wpt.Name
					if label == "" {
						label = fmt.Sprintf("Waypoint %d", wi+1)
					}
					rows = append(rows, row{
						item:  hierarchy.WaypointItem{File: fileID, Waypoint: wi},
						depth: 2,
						label: label,
					})
				}
			}
		}
	}

	return rows
}
