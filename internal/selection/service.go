package selection

import (
	"sync"

	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/logic"
)

// Service owns the process-wide selection tree. All mutations go through it
// so that subscribers are notified exactly once per logical operation.
type Service struct {
	mu    sync.Mutex
	tree  *Tree
	store logic.FileStore
	bus   eventbus.EventBus
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus, store logic.FileStore) *Service {
	s := &Service{
		tree:  NewTree(),
		store: store,
		bus:   bus,
	}

	// Prune selection state for files that leave the store
	bus.Subscribe(eventbus.EventFileRemoved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FileRemovedEvent); ok {
			s.RemoveFile(event.FileID)
		}
	})

	return s
}

// SelectItem clears the selection and selects exactly item.
func (s *Service) SelectItem(item hierarchy.Item) {
	s.mu.Lock()
	s.tree.Clear()
	s.tree.Set(item, true)
	s.mu.Unlock()
	s.notify()
}

// SelectFile is SelectItem for a file address.
func (s *Service) SelectFile(fileID string) {
	s.SelectItem(hierarchy.FileItem{File: fileID})
}

// AddSelectItem toggles item without clearing the rest of the selection.
func (s *Service) AddSelectItem(item hierarchy.Item) {
	s.mu.Lock()
	s.tree.Toggle(item)
	s.mu.Unlock()
	s.notify()
}

// AddSelectFile is AddSelectItem for a file address.
func (s *Service) AddSelectFile(fileID string) {
	s.AddSelectItem(hierarchy.FileItem{File: fileID})
}

// Clear deselects everything.
func (s *Service) Clear() {
	s.mu.Lock()
	s.tree.Clear()
	s.mu.Unlock()
	s.notify()
}

// SelectAll selects every sibling at the level of the current selection:
// all files, all tracks of the selected track's file, all segments of the
// selected segment's track, or all waypoints of the selected waypoint's
// file. With nothing selected it selects all files. When the selection
// spans several levels the shallowest one wins.
func (s *Service) SelectAll() {
	s.mu.Lock()
	anchor := s.shallowestLocked()
	s.tree.Clear()

	switch {
	case anchor == nil, anchor.Level() <= hierarchy.LevelFile:
		for _, id := range s.store.Order() {
			s.tree.Set(hierarchy.FileItem{File: id}, true)
		}
	case anchor.Level() == hierarchy.LevelTrack:
		fileID := anchor.FileID()
		for i := 0; i < s.store.TrackCount(fileID); i++ {
			s.tree.Set(hierarchy.TrackItem{File: fileID, Track: i}, true)
		}
	case anchor.Level() == hierarchy.LevelSegment:
		seg := anchor.(hierarchy.SegmentItem)
		for i := 0; i < s.store.SegmentCount(seg.File, seg.Track); i++ {
			s.tree.Set(hierarchy.SegmentItem{File: seg.File, Track: seg.Track, Segment: i}, true)
		}
	default: // waypoint group or single waypoint
		fileID := anchor.FileID()
		for i := 0; i < s.store.WaypointCount(fileID); i++ {
			s.tree.Set(hierarchy.WaypointItem{File: fileID, Waypoint: i}, true)
		}
	}
	s.mu.Unlock()
	s.notify()
}

// shallowestLocked returns the selected item closest to the root, ties
// broken by address order so the result does not depend on map iteration.
func (s *Service) shallowestLocked() hierarchy.Item {
	var anchor hierarchy.Item
	rank := s.fileRankLocked()
	s.tree.ForEach(func(item hierarchy.Item) {
		if anchor == nil ||
			item.Level() < anchor.Level() ||
			(item.Level() == anchor.Level() && hierarchy.Compare(item, anchor, rank) < 0) {
			anchor = item
		}
	})
	return anchor
}

// RemoveFile prunes all selection state for a deleted file.
func (s *Service) RemoveFile(fileID string) {
	s.mu.Lock()
	s.tree.DeleteChild(hierarchy.FileID(fileID))
	s.mu.Unlock()
	s.notify()
}

// Has reports whether the exact item is selected.
func (s *Service) Has(item hierarchy.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Has(item)
}

// HasAnyParent reports whether an ancestor of item (or item itself when
// self is true) is selected.
func (s *Service) HasAnyParent(item hierarchy.Item, self bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.HasAnyParent(item, self)
}

// HasAnyChildren reports whether a descendant of item (or item itself when
// self is true) is selected.
func (s *Service) HasAnyChildren(item hierarchy.Item, self bool, ignore ...hierarchy.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.HasAnyChildren(item, self, ignore...)
}

// Selected returns every selected address, unordered.
func (s *Service) Selected() []hierarchy.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Selected()
}

// Count returns the number of selected nodes.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Size()
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return s.Count() > 0
}

// ForEachFileSelection walks the file order and, for every file with a
// non-empty selection, invokes fn with the file's selected items sorted by
// address order (descending when reverse is true). level is the shallowest
// level present in the batch.
func (s *Service) ForEachFileSelection(fn func(fileID string, level hierarchy.Level, items []hierarchy.Item), reverse bool) {
	s.mu.Lock()
	perFile := make(map[string][]hierarchy.Item)
	s.tree.ForEach(func(item hierarchy.Item) {
		if item.Level() == hierarchy.LevelRoot {
			return
		}
		perFile[item.FileID()] = append(perFile[item.FileID()], item)
	})
	order := s.store.Order()
	rank := s.fileRankLocked()
	s.mu.Unlock()

	for _, fileID := range order {
		items := perFile[fileID]
		if len(items) == 0 {
			continue
		}
		level := items[0].Level()
		for _, item := range items[1:] {
			if item.Level() < level {
				level = item.Level()
			}
		}
		hierarchy.SortItems(items, rank, reverse)
		fn(fileID, level, items)
	}
}

// fileRankLocked builds a rank function over the current file order.
func (s *Service) fileRankLocked() func(string) int {
	order := s.store.Order()
	rank := make(map[string]int, len(order))
	for i, id := range order {
		rank[id] = i
	}
	return func(fileID string) int {
		if r, ok := rank[fileID]; ok {
			return r
		}
		return len(rank)
	}
}

func (s *Service) notify() {
	s.bus.Publish(eventbus.SelectionChangedEvent{Count: s.Count()})
}
