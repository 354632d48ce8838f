package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"gpxgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventFileDiscovered    = domain.EventFileDiscovered
	EventScanStarted       = domain.EventScanStarted
	EventScanCompleted     = domain.EventScanCompleted
	EventScanRequested     = domain.EventScanRequested
	EventFileLoaded        = domain.EventFileLoaded
	EventFileRemoved       = domain.EventFileRemoved
	EventSelectionChanged  = domain.EventSelectionChanged
	EventStatisticsUpdated = domain.EventStatisticsUpdated
	EventViewportChanged   = domain.EventViewportChanged
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
	EventFileOrderChanged  = domain.EventFileOrderChanged
)

// Re-export domain event types
type FileDiscoveredEvent = domain.FileDiscoveredEvent
type ScanStartedEvent = domain.ScanStartedEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type ScanRequestedEvent = domain.ScanRequestedEvent
type FileLoadedEvent = domain.FileLoadedEvent
type FileRemovedEvent = domain.FileRemovedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type StatisticsUpdatedEvent = domain.StatisticsUpdatedEvent
type ViewportChangedEvent = domain.ViewportChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type FileOrderChangedEvent = domain.FileOrderChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type registration struct {
	handler EventHandler
}

// bus is the concrete implementation of EventBus. Dispatch is synchronous
// and in-order: a Publish returns after every subscriber has run, so each
// logical state mutation notifies its observers exactly once before the
// next mutation starts.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]*registration
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]*registration),
	}
}

// Publish delivers an event to all subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	regs := make([]*registration, len(b.handlers[event.Type()]))
	copy(regs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, reg := range regs {
		b.invoke(reg.handler, event)
	}
}

func (b *bus) invoke(handler EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	handler(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	reg := &registration{handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], reg)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		regs := b.handlers[eventType]
		for i, r := range regs {
			if r == reg {
				b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
	}
}
