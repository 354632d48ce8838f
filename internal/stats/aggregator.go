package stats

import (
	"sync"

	"gpxgrip/internal/domain"
	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/logic"
	"gpxgrip/internal/selection"
)

// Aggregator recomputes statistics for the current selection. Per-item
// figures are memoized; the cache for a file is dropped when the file is
// reloaded or removed.
type Aggregator struct {
	mu    sync.Mutex
	store logic.FileStore
	sel   *selection.Service
	bus   eventbus.EventBus

	cache   map[hierarchy.Item]domain.Statistics
	totals  domain.Statistics
	perFile map[string]domain.Statistics
}

// NewAggregator creates an aggregator wired to selection and file events.
func NewAggregator(bus eventbus.EventBus, store logic.FileStore, sel *selection.Service) *Aggregator {
	a := &Aggregator{
		store:   store,
		sel:     sel,
		bus:     bus,
		cache:   make(map[hierarchy.Item]domain.Statistics),
		perFile: make(map[string]domain.Statistics),
	}

	bus.Subscribe(eventbus.EventSelectionChanged, func(eventbus.DomainEvent) {
		a.Recompute()
	})
	bus.Subscribe(eventbus.EventFileLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FileLoadedEvent); ok {
			a.invalidateFile(event.File.ID)
			a.Recompute()
		}
	})
	bus.Subscribe(eventbus.EventFileRemoved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FileRemovedEvent); ok {
			a.invalidateFile(event.FileID)
		}
	})

	return a
}

// Recompute walks the ordered selection, merges per-item statistics and
// publishes a StatisticsUpdated event.
func (a *Aggregator) Recompute() domain.Statistics {
	a.mu.Lock()
	totals := domain.Statistics{}
	perFile := make(map[string]domain.Statistics)

	a.sel.ForEachFileSelection(func(fileID string, _ hierarchy.Level, items []hierarchy.Item) {
		fileTotals := domain.Statistics{}
		for _, item := range items {
			st, ok := a.itemStatsLocked(item)
			if !ok {
				continue
			}
			fileTotals = fileTotals.Merge(st)
		}
		perFile[fileID] = fileTotals
		totals = totals.Merge(fileTotals)
	}, false)

	a.totals = totals
	a.perFile = perFile
	a.mu.Unlock()

	a.bus.Publish(eventbus.StatisticsUpdatedEvent{Totals: totals, PerFile: perFile})
	return totals
}

// Current returns the figures from the last recompute.
func (a *Aggregator) Current() (domain.Statistics, map[string]domain.Statistics) {
	a.mu.Lock()
	defer a.mu.Unlock()
	perFile := make(map[string]domain.Statistics, len(a.perFile))
	for k, v := range a.perFile {
		perFile[k] = v
	}
	return a.totals, perFile
}

func (a *Aggregator) itemStatsLocked(item hierarchy.Item) (domain.Statistics, bool) {
	if st, ok := a.cache[item]; ok {
		return st, true
	}
	st, ok := ForItem(a.store, item)
	if ok {
		a.cache[item] = st
	}
	return st, ok
}

func (a *Aggregator) invalidateFile(fileID string) {
	a.mu.Lock()
	for item := range a.cache {
		if item.FileID() == fileID {
			delete(a.cache, item)
		}
	}
	a.mu.Unlock()
}
