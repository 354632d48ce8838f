package logic

import "gpxgrip/internal/domain"

// FileStore provides access to loaded GPX documents and their display order.
// The order is the externally maintained file order list used by selection
// and statistics to group and sort per-file batches.
type FileStore interface {
	File(id string) *domain.File
	AllFiles() map[string]*domain.File
	AddFile(file *domain.File)
	RemoveFile(id string)

	Order() []string
	SetOrder(ids []string)
	MoveFile(id string, delta int) bool

	TrackCount(fileID string) int
	SegmentCount(fileID string, track int) int
	WaypointCount(fileID string) int
}
