package refs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"storyscout/internal/domain"
	"storyscout/internal/eventbus"
)

// LoaderService loads reference story indexes from disk
type LoaderService interface {
	LoadAll(ctx context.Context) error
	Load(ctx context.Context, refID string) error
}

// loaderService is the concrete implementation
type loaderService struct {
	bus  eventbus.EventBus
	mu   sync.Mutex
	refs map[string]string // ref id -> index file path
}

// NewLoaderService creates a new loader for the configured references.
// It subscribes to refresh requests and reloads every reference when
// one arrives.
func NewLoaderService(bus eventbus.EventBus, refs map[string]string) LoaderService {
	if refs == nil {
		refs = make(map[string]string)
	}
	ls := &loaderService{
		bus:  bus,
		refs: refs,
	}

	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		if _, ok := e.(eventbus.RefreshRequestedEvent); ok {
			go ls.LoadAll(context.Background())
		}
	})

	// Discovered indexes join the configured set and load right away
	bus.Subscribe(eventbus.EventRefDiscovered, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RefDiscoveredEvent); ok {
			ls.mu.Lock()
			ls.refs[event.RefID] = event.Path
			ls.mu.Unlock()
			go ls.Load(context.Background(), event.RefID)
		}
	})

	return ls
}

// LoadAll loads every configured reference in a stable order
func (ls *loaderService) LoadAll(ctx context.Context) error {
	ls.mu.Lock()
	ids := make([]string, 0, len(ls.refs))
	for id := range ls.refs {
		ids = append(ids, id)
	}
	ls.mu.Unlock()
	sort.Strings(ids)

	var firstErr error
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := ls.Load(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Load loads a single reference index and publishes the outcome
func (ls *loaderService) Load(ctx context.Context, refID string) error {
	ls.mu.Lock()
	path, ok := ls.refs[refID]
	ls.mu.Unlock()
	if !ok {
		err := fmt.Errorf("unknown reference %q", refID)
		ls.bus.Publish(eventbus.RefFailedEvent{RefID: refID, Err: err})
		return err
	}

	index, err := LoadIndexFile(path)
	if err != nil {
		log.Printf("Failed to load reference %s from %s: %v", refID, path, err)
		ls.bus.Publish(eventbus.RefFailedEvent{RefID: refID, Err: err})
		return err
	}

	log.Printf("Loaded reference %s: %d entries", refID, len(index.Entries))
	ls.bus.Publish(eventbus.RefLoadedEvent{
		RefID:      refID,
		Index:      index,
		EntryCount: len(index.Entries),
	})
	return nil
}

// indexFile is the on-disk JSON shape of one reference index
type indexFile struct {
	V           int                                  `json:"v"`
	Title       string                               `json:"title"`
	Entries     map[string]indexFileEntry            `json:"entries"`
	Status      map[string]map[string]statusFileItem `json:"status"`
	GroupStatus map[string]string                    `json:"groupStatus"`
}

type indexFileEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Parent string `json:"parent"`
}

type statusFileItem struct {
	Value       string `json:"value"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LoadIndexFile parses a reference index JSON file into a RefIndex.
// The entry "title" carries the tree path (e.g. "UI/Button"); "name"
// is the leaf label.
func LoadIndexFile(path string) (*domain.RefIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}

	index := &domain.RefIndex{
		Title:       file.Title,
		Entries:     make(map[string]domain.IndexEntry, len(file.Entries)),
		StoryStatus: make(map[string]map[string]domain.StatusResult),
		GroupStatus: make(map[string]domain.StatusValue),
	}

	for id, entry := range file.Entries {
		if entry.ID == "" {
			entry.ID = id
		}
		index.Entries[entry.ID] = domain.IndexEntry{
			ID:     entry.ID,
			Name:   entry.Name,
			Path:   entry.Title,
			Type:   domain.ItemType(entry.Type),
			Parent: entry.Parent,
		}
	}

	for id, checks := range file.Status {
		resolved := make(map[string]domain.StatusResult, len(checks))
		for check, item := range checks {
			resolved[check] = domain.StatusResult{
				Value:       domain.StatusValue(item.Value),
				Title:       item.Title,
				Description: item.Description,
			}
		}
		index.StoryStatus[id] = resolved
	}

	for id, value := range file.GroupStatus {
		index.GroupStatus[id] = domain.StatusValue(value)
	}

	return index, nil
}
