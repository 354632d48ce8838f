package ui

import (
	"gpxgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// loadDoneMsg signals that a batch of file loads finished
type loadDoneMsg struct {
	err error
}
