package hierarchy

import (
	"sort"
	"strings"
)

// branchLevels are the levels at which an address can branch, root first.
var branchLevels = []Level{LevelRoot, LevelFile, LevelTrack, LevelWaypoints}

// CompareID orders ids within one parent: positional ids (tracks, segments,
// waypoints) come before named ids (the waypoint group), positions by index,
// names lexicographically.
func CompareID(a, b ID) int {
	switch {
	case !a.IsName() && !b.IsName():
		return a.Index - b.Index
	case a.IsName() && b.IsName():
		return strings.Compare(a.Name, b.Name)
	case a.IsName():
		return 1
	default:
		return -1
	}
}

// Compare imposes a total order on addresses: by file rank first, then by
// structural nesting order within the file, with an ancestor sorting before
// its descendants. fileRank maps a file id to its position in the externally
// maintained file order; a nil fileRank falls back to lexicographic file ids.
func Compare(a, b Item, fileRank func(fileID string) int) int {
	if af, bf := a.FileID(), b.FileID(); af != bf {
		if fileRank != nil {
			if ar, br := fileRank(af), fileRank(bf); ar != br {
				return ar - br
			}
		}
		return strings.Compare(af, bf)
	}
	for _, level := range branchLevels {
		ida, oka := a.IDAtLevel(level)
		idb, okb := b.IDAtLevel(level)
		switch {
		case oka && okb:
			if c := CompareID(ida, idb); c != 0 {
				return c
			}
		case oka:
			return 1 // b is an ancestor of a
		case okb:
			return -1
		}
		// Neither address branches at this level; deeper levels may still
		// differ (waypoint paths skip the track and segment levels).
	}
	return int(a.Level()) - int(b.Level())
}

// SortItems sorts items in place by Compare, optionally reversed.
func SortItems(items []Item, fileRank func(fileID string) int, reverse bool) {
	sort.SliceStable(items, func(i, j int) bool {
		c := Compare(items[i], items[j], fileRank)
		if reverse {
			return c > 0
		}
		return c < 0
	})
}
