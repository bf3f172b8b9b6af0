package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storyscout/internal/eventbus"
)

const validIndex = `{
	"v": 5,
	"title": "Design System",
	"entries": {
		"button": {"name": "Button", "title": "Inputs/Button", "type": "component"}
	}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

type eventRecorder struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (r *eventRecorder) record(e eventbus.DomainEvent) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) byType(typ eventbus.EventType) []eventbus.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range r.events {
		if e.Type() == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestScanFindsStoryIndexes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "design-system", "index.json"), validIndex)
	writeFile(t, filepath.Join(root, "apps", "marketing", "stories.json"), validIndex)
	// Not an index: wrong name, wrong payload, ignored directory
	writeFile(t, filepath.Join(root, "design-system", "data.json"), validIndex)
	writeFile(t, filepath.Join(root, "other", "index.json"), `{"name": "package"}`)
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.json"), validIndex)

	bus := eventbus.New()
	rec := &eventRecorder{}
	bus.Subscribe(eventbus.EventRefDiscovered, rec.record)
	bus.Subscribe(eventbus.EventScanCompleted, rec.record)

	svc := NewDiscoveryService(bus)
	require.NoError(t, svc.StartScan(context.Background(), []string{root}))

	require.Eventually(t, func() bool {
		return len(rec.byType(eventbus.EventScanCompleted)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	completed := rec.byType(eventbus.EventScanCompleted)[0].(eventbus.ScanCompletedEvent)
	require.Equal(t, 2, completed.RefsFound)

	discovered := rec.byType(eventbus.EventRefDiscovered)
	ids := make(map[string]string)
	for _, e := range discovered {
		event := e.(eventbus.RefDiscoveredEvent)
		ids[event.RefID] = event.Path
	}
	require.Len(t, ids, 2)
	require.Contains(t, ids, "design-system")
	require.Contains(t, ids, "apps/marketing")
}

func TestScanCanRunAgainAfterStop(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "design-system", "index.json"), validIndex)

	bus := eventbus.New()
	svc := NewDiscoveryService(bus)

	require.NoError(t, svc.StartScan(context.Background(), []string{root}))
	svc.StopScan()
	require.NoError(t, svc.StartScan(context.Background(), []string{root}))
	svc.StopScan()
}

func TestRefIDForPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "design-system", refIDForPath("/data", "/data/design-system/index.json"))
	require.Equal(t, "apps/marketing", refIDForPath("/data", "/data/apps/marketing/index.json"))
	require.Equal(t, "data", refIDForPath("/data", "/data/index.json"))
}
