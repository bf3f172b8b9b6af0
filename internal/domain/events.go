package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRefLoaded        EventType = "RefLoaded"
	EventRefFailed        EventType = "RefFailed"
	EventIndexBuilt       EventType = "IndexBuilt"
	EventStorySelected    EventType = "StorySelected"
	EventHistoryUpdated   EventType = "HistoryUpdated"
	EventRefreshRequested EventType = "RefreshRequested"
	EventRefDiscovered    EventType = "RefDiscovered"
	EventScanStarted      EventType = "ScanStarted"
	EventScanCompleted    EventType = "ScanCompleted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RefLoadedEvent is emitted when a reference index has been loaded
type RefLoadedEvent struct {
	RefID      string
	Index      *RefIndex
	EntryCount int
}

func (e RefLoadedEvent) Type() EventType { return EventRefLoaded }

// RefFailedEvent is emitted when a reference index could not be loaded
type RefFailedEvent struct {
	RefID string
	Err   error
}

func (e RefFailedEvent) Type() EventType { return EventRefFailed }

// IndexBuiltEvent is emitted when the combined dataset has been
// flattened into search items
type IndexBuiltEvent struct {
	ItemCount int
}

func (e IndexBuiltEvent) Type() EventType { return EventIndexBuilt }

// StorySelectedEvent is emitted when the user navigates to a story
type StorySelectedEvent struct {
	StoryID string
	RefID   string
}

func (e StorySelectedEvent) Type() EventType { return EventStorySelected }

// HistoryUpdatedEvent is emitted when the last-viewed history changes
type HistoryUpdatedEvent struct {
	Selections []Selection
}

func (e HistoryUpdatedEvent) Type() EventType { return EventHistoryUpdated }

// RefreshRequestedEvent is emitted to request a reload of all references
type RefreshRequestedEvent struct{}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// RefDiscoveredEvent is emitted when a directory scan finds a story
// index file
type RefDiscoveredEvent struct {
	RefID string
	Path  string
}

func (e RefDiscoveredEvent) Type() EventType { return EventRefDiscovered }

// ScanStartedEvent is emitted when an index discovery scan begins
type ScanStartedEvent struct {
	Paths []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when an index discovery scan finishes
type ScanCompletedEvent struct {
	RefsFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Refs map[string]string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
