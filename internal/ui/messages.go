package ui

import (
	"storyscout/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// detailPagerMsg contains the result of a detail pager command
type detailPagerMsg struct {
	storyID string
	err     error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
