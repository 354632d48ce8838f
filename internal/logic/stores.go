package logic

import (
	"sync"

	"gpxgrip/internal/domain"
)

// MemoryFileStore is an in-memory implementation of FileStore
type MemoryFileStore struct {
	mu    sync.RWMutex
	files map[string]*domain.File
	order []string
}

// NewMemoryFileStore creates a new memory-based file store
func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{
		files: make(map[string]*domain.File),
	}
}

func (s *MemoryFileStore) File(id string) *domain.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files[id]
}

func (s *MemoryFileStore) AllFiles() map[string]*domain.File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[string]*domain.File, len(s.files))
	for k, v := range s.files {
		result[k] = v
	}
	return result
}

// AddFile adds or replaces a file. New files are appended to the order.
func (s *MemoryFileStore) AddFile(file *domain.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, known := s.files[file.ID]; !known {
		s.order = append(s.order, file.ID)
	}
	s.files[file.ID] = file
}

func (s *MemoryFileStore) RemoveFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, id)
	for i, fid := range s.order {
		if fid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Order returns a copy of the current file order.
func (s *MemoryFileStore) Order() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// SetOrder replaces the file order. Unknown ids are dropped, known files
// missing from ids keep their relative position at the end.
func (s *MemoryFileStore) SetOrder(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(ids))
	next := make([]string, 0, len(s.files))
	for _, id := range ids {
		if _, known := s.files[id]; known && !seen[id] {
			next = append(next, id)
			seen[id] = true
		}
	}
	for _, id := range s.order {
		if !seen[id] {
			next = append(next, id)
			seen[id] = true
		}
	}
	s.order = next
}

// MoveFile shifts a file by delta positions in the order, clamped to the
// ends. It reports whether the order actually changed.
func (s *MemoryFileStore) MoveFile(id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := -1
	for i, fid := range s.order {
		if fid == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(s.order)-1 {
		to = len(s.order) - 1
	}
	if to == from {
		return false
	}
	step := 1
	if to < from {
		step = -1
	}
	for i := from; i != to; i += step {
		s.order[i], s.order[i+step] = s.order[i+step], s.order[i]
	}
	return true
}

func (s *MemoryFileStore) TrackCount(fileID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := s.files[fileID]; f != nil {
		return len(f.Tracks)
	}
	return 0
}

func (s *MemoryFileStore) SegmentCount(fileID string, track int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := s.files[fileID]; f != nil && track >= 0 && track < len(f.Tracks) {
		return len(f.Tracks[track].Segments)
	}
	return 0
}

func (s *MemoryFileStore) WaypointCount(fileID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := s.files[fileID]; f != nil {
		return len(f.Waypoints)
	}
	return 0
}
