package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"storyscout/internal/eventbus"
)

// DiscoveryService finds story index files in the filesystem
type DiscoveryService interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	return &discoveryService{
		bus: bus,
	}
}

// StartScan walks the given roots looking for story index files
func (ds *discoveryService) StartScan(ctx context.Context, roots []string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Paths: roots})

	refsFound := 0

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		defer func() {
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()

			ds.bus.Publish(eventbus.ScanCompletedEvent{RefsFound: refsFound})
		}()

		for _, root := range roots {
			select {
			case <-scanCtx.Done():
				return
			default:
				refsFound += ds.scanDirectory(scanCtx, root)
			}
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// scanDirectory recursively scans one root for index files
func (ds *discoveryService) scanDirectory(ctx context.Context, root string) int {
	refsFound := 0
	maxDepth := 5

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil // Continue walking
		}

		if d.IsDir() {
			relPath, _ := filepath.Rel(root, path)
			if strings.Count(relPath, string(filepath.Separator)) > maxDepth {
				return filepath.SkipDir
			}
			// Skip directories that never hold published indexes
			name := d.Name()
			if name == "node_modules" || name == "vendor" ||
				name == "target" || name == "__pycache__" ||
				(strings.HasPrefix(name, ".") && name != ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !isIndexFileName(d.Name()) {
			return nil
		}
		if !looksLikeStoryIndex(path) {
			return nil
		}

		ds.bus.Publish(eventbus.RefDiscoveredEvent{
			RefID: refIDForPath(root, path),
			Path:  path,
		})
		refsFound++
		return nil
	})

	if err != nil && err != context.Canceled {
		log.Printf("Error scanning directory %s: %v", root, err)
		ds.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to scan %s", root),
			Err:     err,
		})
	}

	return refsFound
}

// isIndexFileName matches the file names a published story index uses
func isIndexFileName(name string) bool {
	return name == "index.json" || name == "stories.json"
}

// looksLikeStoryIndex cheaply verifies the file carries an index
// payload before it is announced. Only the version and entries keys
// are checked; the loader does the full parse.
func looksLikeStoryIndex(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var probe struct {
		V       int                        `json:"v"`
		Entries map[string]json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.V > 0 && len(probe.Entries) > 0
}

// refIDForPath derives a stable reference id from the index location:
// the path from the scan root to the index's directory, or the root's
// own name for an index directly inside it.
func refIDForPath(root, path string) string {
	dir := filepath.Dir(path)
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return filepath.Base(dir)
	}
	return filepath.ToSlash(rel)
}
