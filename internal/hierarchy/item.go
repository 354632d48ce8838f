// Package hierarchy defines addresses for nodes of the
// file → track → segment → waypoint document hierarchy.
package hierarchy

import (
	"errors"
	"fmt"
)

// Level is the rank of a node in the hierarchy. Lower values are closer
// to the root.
type Level int

const (
	LevelRoot Level = iota
	LevelFile
	LevelTrack
	LevelSegment
	LevelWaypoints
	LevelWaypoint
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelFile:
		return "file"
	case LevelTrack:
		return "track"
	case LevelSegment:
		return "segment"
	case LevelWaypoints:
		return "waypoints"
	case LevelWaypoint:
		return "waypoint"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// WaypointGroupKey is the child key a file node uses for its waypoint group.
// It shares the key space with track indices, so it must never collide with
// a numeric id.
const WaypointGroupKey = "waypoints"

// ErrInvalidAddress is returned when an address cannot be extended, either
// because the target level does not exist below the receiver or because the
// id kind does not match the child level.
var ErrInvalidAddress = errors.New("hierarchy: invalid address")

// ID identifies one child within its parent node. Name holds a file id or
// WaypointGroupKey; Index holds a track, segment or waypoint position.
// Exactly one of the two is meaningful. ID is comparable and used directly
// as a map key by the selection tree.
type ID struct {
	Name  string
	Index int
}

// FileID builds the id of a file child of the root.
func FileID(id string) ID { return ID{Name: id, Index: -1} }

// IndexID builds a positional id for a track, segment or waypoint child.
func IndexID(i int) ID { return ID{Index: i} }

// WaypointGroupID is the id of the waypoint group child of a file node.
func WaypointGroupID() ID { return ID{Name: WaypointGroupKey, Index: -1} }

// IsName reports whether the id carries a name rather than a position.
func (id ID) IsName() bool { return id.Name != "" }

// String returns the id in display form.
func (id ID) String() string {
	if id.IsName() {
		return id.Name
	}
	return fmt.Sprintf("%d", id.Index)
}

// Item addresses one node in the hierarchy. The concrete types form a
// closed set: RootItem, FileItem, TrackItem, SegmentItem, WaypointsItem
// and WaypointItem, each carrying exactly the identifier fields valid at
// its level. All of them are comparable values.
type Item interface {
	// Level is the rank of the addressed node.
	Level() Level
	// FileID returns the file component of the address, "" for the root.
	FileID() string
	// IDAtLevel returns the identifier used to branch from an ancestor at
	// the given level toward this item. ok is false when the level is not
	// on the item's path (at or below the item's own level, or a level the
	// path skips).
	IDAtLevel(level Level) (ID, bool)
	// Extend returns the address of the child identified by id, one level
	// deeper. It fails with ErrInvalidAddress below the deepest level or
	// when the id kind does not fit.
	Extend(id ID) (Item, error)
}

// RootItem addresses the root of the hierarchy.
type RootItem struct{}

func (RootItem) Level() Level               { return LevelRoot }
func (RootItem) FileID() string             { return "" }
func (RootItem) IDAtLevel(Level) (ID, bool) { return ID{}, false }

func (RootItem) Extend(id ID) (Item, error) {
	if !id.IsName() || id.Name == WaypointGroupKey {
		return nil, fmt.Errorf("%w: root children are files, got %q", ErrInvalidAddress, id)
	}
	return FileItem{File: id.Name}, nil
}

func (RootItem) String() string { return "/" }

// FileItem addresses one loaded file.
type FileItem struct {
	File string
}

func (f FileItem) Level() Level   { return LevelFile }
func (f FileItem) FileID() string { return f.File }

func (f FileItem) IDAtLevel(level Level) (ID, bool) {
	if level == LevelRoot {
		return FileID(f.File), true
	}
	return ID{}, false
}

func (f FileItem) Extend(id ID) (Item, error) {
	if id.Name == WaypointGroupKey {
		return WaypointsItem{File: f.File}, nil
	}
	if id.IsName() {
		return nil, fmt.Errorf("%w: file children are tracks or the waypoint group, got %q", ErrInvalidAddress, id)
	}
	return TrackItem{File: f.File, Track: id.Index}, nil
}

func (f FileItem) String() string { return f.File }

// TrackItem addresses one track of a file.
type TrackItem struct {
	File  string
	Track int
}

func (t TrackItem) Level() Level   { return LevelTrack }
func (t TrackItem) FileID() string { return t.File }

func (t TrackItem) IDAtLevel(level Level) (ID, bool) {
	switch level {
	case LevelRoot:
		return FileID(t.File), true
	case LevelFile:
		return IndexID(t.Track), true
	}
	return ID{}, false
}

func (t TrackItem) Extend(id ID) (Item, error) {
	if id.IsName() {
		return nil, fmt.Errorf("%w: track children are segments, got %q", ErrInvalidAddress, id)
	}
	return SegmentItem{File: t.File, Track: t.Track, Segment: id.Index}, nil
}

func (t TrackItem) String() string { return fmt.Sprintf("%s/%d", t.File, t.Track) }

// SegmentItem addresses one segment of a track.
type SegmentItem struct {
	File    string
	Track   int
	Segment int
}

func (s SegmentItem) Level() Level   { return LevelSegment }
func (s SegmentItem) FileID() string { return s.File }

func (s SegmentItem) IDAtLevel(level Level) (ID, bool) {
	switch level {
	case LevelRoot:
		return FileID(s.File), true
	case LevelFile:
		return IndexID(s.Track), true
	case LevelTrack:
		return IndexID(s.Segment), true
	}
	return ID{}, false
}

func (s SegmentItem) Extend(ID) (Item, error) {
	return nil, fmt.Errorf("%w: segments have no children", ErrInvalidAddress)
}

func (s SegmentItem) String() string {
	return fmt.Sprintf("%s/%d/%d", s.File, s.Track, s.Segment)
}

// WaypointsItem addresses the waypoint group of a file as a whole.
type WaypointsItem struct {
	File string
}

func (w WaypointsItem) Level() Level   { return LevelWaypoints }
func (w WaypointsItem) FileID() string { return w.File }

func (w WaypointsItem) IDAtLevel(level Level) (ID, bool) {
	switch level {
	case LevelRoot:
		return FileID(w.File), true
	case LevelFile:
		return WaypointGroupID(), true
	}
	return ID{}, false
}

func (w WaypointsItem) Extend(id ID) (Item, error) {
	if id.IsName() {
		return nil, fmt.Errorf("%w: waypoint group children are waypoints, got %q", ErrInvalidAddress, id)
	}
	return WaypointItem{File: w.File, Waypoint: id.Index}, nil
}

func (w WaypointsItem) String() string { return w.File + "/" + WaypointGroupKey }

// WaypointItem addresses one waypoint of a file.
type WaypointItem struct {
	File     string
	Waypoint int
}

func (w WaypointItem) Level() Level   { return LevelWaypoint }
func (w WaypointItem) FileID() string { return w.File }

func (w WaypointItem) IDAtLevel(level Level) (ID, bool) {
	switch level {
	case LevelRoot:
		return FileID(w.File), true
	case LevelFile:
		return WaypointGroupID(), true
	case LevelWaypoints:
		return IndexID(w.Waypoint), true
	}
	return ID{}, false
}

func (w WaypointItem) Extend(ID) (Item, error) {
	return nil, fmt.Errorf("%w: waypoints have no children", ErrInvalidAddress)
}

func (w WaypointItem) String() string {
	return fmt.Sprintf("%s/%s/%d", w.File, WaypointGroupKey, w.Waypoint)
}
