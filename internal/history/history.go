package history

import (
	"sync"

	"storyscout/internal/domain"
	"storyscout/internal/eventbus"
)

// Store keeps the session's last-viewed stories, most recent first.
// Re-viewing a story moves it to the front. The list is bounded; the
// oldest records fall off the end. Nothing is persisted across
// sessions.
type Store struct {
	mu         sync.RWMutex
	bus        eventbus.EventBus
	selections []domain.Selection
	maxSize    int
}

// NewStore creates a new history store
func NewStore(bus eventbus.EventBus, maxSize int) *Store {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &Store{
		bus:     bus,
		maxSize: maxSize,
	}
}

// Add records a viewed story at the front of the history
func (s *Store) Add(sel domain.Selection) {
	s.mu.Lock()

	// Remove an existing record for the same story before re-adding
	for i, existing := range s.selections {
		if existing == sel {
			s.selections = append(s.selections[:i], s.selections[i+1:]...)
			break
		}
	}

	s.selections = append([]domain.Selection{sel}, s.selections...)
	if len(s.selections) > s.maxSize {
		s.selections = s.selections[:s.maxSize]
	}

	snapshot := s.snapshot()
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.HistoryUpdatedEvent{Selections: snapshot})
	}
}

// List returns the history, most recent first
func (s *Store) List() []domain.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// snapshot copies the selections; callers must hold the lock
func (s *Store) snapshot() []domain.Selection {
	result := make([]domain.Selection, len(s.selections))
	copy(result, s.selections)
	return result
}
