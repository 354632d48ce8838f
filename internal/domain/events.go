package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFileDiscovered     EventType = "FileDiscovered"
	EventScanStarted        EventType = "ScanStarted"
	EventScanCompleted      EventType = "ScanCompleted"
	EventScanRequested      EventType = "ScanRequested"
	EventFileLoaded         EventType = "FileLoaded"
	EventFileRemoved        EventType = "FileRemoved"
	EventSelectionChanged   EventType = "SelectionChanged"
	EventStatisticsUpdated  EventType = "StatisticsUpdated"
	EventViewportChanged    EventType = "ViewportChanged"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventFileOrderChanged   EventType = "FileOrderChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FileDiscoveredEvent is emitted when a scan finds a GPX file on disk
type FileDiscoveredEvent struct {
	Path string
}

func (e FileDiscoveredEvent) Type() EventType { return EventFileDiscovered }

// ScanStartedEvent is emitted when a filesystem scan begins
type ScanStartedEvent struct {
	Roots []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when a filesystem scan completes
type ScanCompletedEvent struct {
	FilesFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Roots []string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// FileLoadedEvent is emitted when a GPX file has been decoded into the store
type FileLoadedEvent struct {
	File *File
}

func (e FileLoadedEvent) Type() EventType { return EventFileLoaded }

// FileRemovedEvent is emitted when a file is removed from the store
type FileRemovedEvent struct {
	FileID string
}

func (e FileRemovedEvent) Type() EventType { return EventFileRemoved }

// SelectionChangedEvent is emitted once per selection operation
type SelectionChangedEvent struct {
	Count int // selected nodes across the whole tree
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// StatisticsUpdatedEvent is emitted after the aggregator recomputes the
// figures for the current selection
type StatisticsUpdatedEvent struct {
	Totals  Statistics
	PerFile map[string]Statistics
}

func (e StatisticsUpdatedEvent) Type() EventType { return EventStatisticsUpdated }

// ViewportChangedEvent is emitted when the map viewport is refit
type ViewportChangedEvent struct {
	CenterLat float64
	CenterLon float64
	Zoom      float64
}

func (e ViewportChangedEvent) Type() EventType { return EventViewportChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	ScanDirs  []string
	FileOrder []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// FileOrderChangedEvent is emitted when the display order of files changes
type FileOrderChangedEvent struct {
	Order []string
}

func (e FileOrderChangedEvent) Type() EventType { return EventFileOrderChanged }
